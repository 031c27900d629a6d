package plugin

import (
	"errors"
	"fmt"
)

// Stage names the step at which a plugin failed to load.
type Stage string

const (
	StageImport   Stage = "import"   // config source unreadable or malformed
	StageShape    Stage = "shape"    // no callable factory
	StageInvoke   Stage = "invoke"   // factory returned an error or panicked
	StageValidate Stage = "validate" // result rejected by the schema
)

// ErrNotCallable is the shape error for a candidate without a factory.
var ErrNotCallable = errors.New("config factory is not callable")

// LoadError describes why one plugin was skipped.
type LoadError struct {
	Stage  Stage
	ID     string
	Origin string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("plugin %s (%s): %s: %v", e.ID, e.Origin, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ImportError is returned by factories whose config source could not be
// read or decoded. The loader reports it as StageImport.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }
