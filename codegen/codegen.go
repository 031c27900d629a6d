// Package codegen writes the plugin registry file that links compiled
// plugins into the binary.
//
// Every directory under the plugin root that follows the discovery
// convention and carries a config.go declaring
//
//	func Config() (plugin.Config, error)
//
// is imported by the generated file and registered from its init function.
// An optional
//
//	func Routes(g *echo.Group, h plugin.Host)
//
// is registered alongside. Directories whose config.go does not parse or
// lacks the Config function are reported and left out.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/mod/modfile"

	"github.com/gjc14/webie/discovery"
	"github.com/gjc14/webie/plugin"
)

// FileName is the name of the generated file inside the plugin root.
const FileName = "registry_gen.go"

const (
	pluginImport = "github.com/gjc14/webie/plugin"
	echoImport   = "github.com/labstack/echo/v4"
)

// Options controls generation.
type Options struct {
	Root       string // plugin root directory
	ModulePath string // import path of Root
	Package    string // package name of the generated file, default base of Root
}

// Plugin is one compiled plugin found under the root.
type Plugin struct {
	ID        string
	Dir       string // root base name and ID, slash separated
	Import    string
	Alias     string
	HasRoutes bool
}

// Result is the outcome of Generate.
type Result struct {
	Package  string
	Plugins  []Plugin
	Problems []*plugin.LoadError
	Source   []byte
}

// ErrNoConfigFunc means config.go does not declare the Config function.
var ErrNoConfigFunc = errors.New("no func Config() (plugin.Config, error)")

// Generate scans opts.Root and renders the registry source. Per plugin
// problems land in Result.Problems; only an unreadable root or a template
// failure is returned as an error.
func Generate(opts Options) (*Result, error) {
	if opts.ModulePath == "" {
		return nil, fmt.Errorf("codegen: module path is required")
	}
	pkg := opts.Package
	if pkg == "" {
		pkg = filepath.Base(filepath.Clean(opts.Root))
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("codegen: invalid package name %q", pkg)
	}

	cands, err := discovery.Default.Configs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}

	res := &Result{Package: pkg}
	used := map[string]bool{"plugin": true}
	for _, c := range cands {
		p, err := inspect(c.File)
		if err != nil {
			stage := plugin.StageShape
			if !errors.Is(err, ErrNoConfigFunc) {
				stage = plugin.StageImport
			}
			res.Problems = append(res.Problems, &plugin.LoadError{
				Stage: stage, ID: c.ID, Origin: c.File, Err: err,
			})
			continue
		}
		p.ID = c.ID
		p.Dir = path.Join(filepath.Base(filepath.Clean(opts.Root)), c.ID)
		p.Import = path.Join(opts.ModulePath, c.ID)
		p.Alias = alias(c.ID)
		for n := 2; used[p.Alias]; n++ {
			p.Alias = fmt.Sprintf("%s%d", alias(c.ID), n)
		}
		used[p.Alias] = true
		res.Plugins = append(res.Plugins, p)
	}

	var buf bytes.Buffer
	if err := registryTmpl.Execute(&buf, res); err != nil {
		return nil, fmt.Errorf("codegen: render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: format: %w", err)
	}
	res.Source = src
	return res, nil
}

// Write runs Generate and writes the result to Root/registry_gen.go.
func Write(opts Options) (*Result, error) {
	res, err := Generate(opts)
	if err != nil {
		return nil, err
	}
	out := filepath.Join(opts.Root, FileName)
	if err := os.WriteFile(out, res.Source, 0o644); err != nil {
		return nil, fmt.Errorf("codegen: write %s: %w", out, err)
	}
	return res, nil
}

// ModulePath reads the module path declared by the go.mod at file.
func ModulePath(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("codegen: %w", err)
	}
	mod := modfile.ModulePath(data)
	if mod == "" {
		return "", fmt.Errorf("codegen: %s declares no module", file)
	}
	return mod, nil
}

// inspect parses a plugin's config.go and checks the exported shape.
func inspect(file string) (Plugin, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, nil, parser.SkipObjectResolution)
	if err != nil {
		return Plugin{}, err
	}
	if f.Name.Name == "main" {
		return Plugin{}, fmt.Errorf("package main cannot be imported")
	}
	pluginName := importName(f, pluginImport, "plugin")
	echoName := importName(f, echoImport, "echo")

	var p Plugin
	found := false
	for _, d := range f.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}
		switch fn.Name.Name {
		case "Config":
			found = pluginName != "" && isConfigFunc(fn.Type, pluginName)
		case "Routes":
			p.HasRoutes = pluginName != "" && echoName != "" && isRoutesFunc(fn.Type, pluginName, echoName)
		}
	}
	if !found {
		return Plugin{}, ErrNoConfigFunc
	}
	return p, nil
}

// importName returns the local name under which f imports path, or "".
func importName(f *ast.File, path, def string) string {
	for _, imp := range f.Imports {
		if strings.Trim(imp.Path.Value, `"`) != path {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				return ""
			}
			return imp.Name.Name
		}
		return def
	}
	return ""
}

func isConfigFunc(ft *ast.FuncType, pkg string) bool {
	if ft.TypeParams != nil || ft.Params.NumFields() != 0 || ft.Results.NumFields() != 2 {
		return false
	}
	res := ft.Results.List
	if len(res) != 2 || !isSelector(res[0].Type, pkg, "Config") {
		return false
	}
	id, ok := res[1].Type.(*ast.Ident)
	return ok && id.Name == "error"
}

func isRoutesFunc(ft *ast.FuncType, pkg, echo string) bool {
	if ft.TypeParams != nil || ft.Results.NumFields() != 0 || ft.Params.NumFields() != 2 {
		return false
	}
	var types []ast.Expr
	for _, field := range ft.Params.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			types = append(types, field.Type)
		}
	}
	star, ok := types[0].(*ast.StarExpr)
	return ok && isSelector(star.X, echo, "Group") && isSelector(types[1], pkg, "Host")
}

func isSelector(e ast.Expr, pkg, name string) bool {
	sel, ok := e.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	return ok && x.Name == pkg
}

// alias turns a directory name into an import alias.
func alias(id string) string {
	var b strings.Builder
	for i, r := range id {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

var registryTmpl = template.Must(template.New("registry").Parse(`// Code generated by webie plugins gen. DO NOT EDIT.

package {{.Package}}
{{if .Plugins}}
import (
	"github.com/gjc14/webie/plugin"
{{range .Plugins}}
	{{.Alias}} "{{.Import}}"
{{- end}}
)

func init() {
{{- range .Plugins}}
	plugin.Register(plugin.Registration{
		ID:     "{{.ID}}",
		Dir:    "{{.Dir}}",
		Config: {{.Alias}}.Config,
{{- if .HasRoutes}}
		Routes: {{.Alias}}.Routes,
{{- end}}
	})
{{- end}}
}
{{end -}}
`))
