package main

import (
	"fmt"
	"path"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gjc14/webie"
	"github.com/gjc14/webie/codegen"
	"github.com/gjc14/webie/discovery"
	"github.com/gjc14/webie/icons"
	"github.com/gjc14/webie/plugin"
	"github.com/gjc14/webie/scaffold"
)

func newPluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect, link and scaffold plugins",
	}
	cmd.AddCommand(newPluginsListCmd(), newPluginsIconsCmd(), newPluginsGenCmd(), newPluginsNewCmd())
	return cmd
}

// pluginRoot returns the --root flag, falling back to the configured
// plugin directory.
func pluginRoot(cmd *cobra.Command) (string, error) {
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		return root, nil
	}
	dir, _ := cmd.Flags().GetString("dir")
	cfg, err := webie.LoadConfig(dir)
	if err != nil {
		return "", err
	}
	return cfg.PluginDir, nil
}

func newPluginsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Resolve every plugin and print its state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := pluginRoot(cmd)
			if err != nil {
				return err
			}
			loader := plugin.NewLoader(plugin.MustSchema(icons.Names()),
				[]plugin.Source{plugin.Default(), plugin.NewManifestSource(root)})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tKIND\tORIGIN\tDETAIL")
			for _, e := range loader.Resolve(cmd.Context()) {
				detail := e.Config.PluginName
				if e.Kind == plugin.Invalid {
					detail = fmt.Sprintf("%s: %v", e.Err.Stage, e.Err.Err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", discovery.Default.Name(e.ID), e.ID, e.Kind, e.Origin, detail)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("root", "", "plugin root (default from config)")
	return cmd
}

func newPluginsIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "Print the icon names admin routes may use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range plugin.MustSchema(icons.Names()).Icons() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newPluginsGenCmd() *cobra.Command {
	var goMod, pkg string
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write " + codegen.FileName + " linking compiled plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := pluginRoot(cmd)
			if err != nil {
				return err
			}
			mod, err := codegen.ModulePath(goMod)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(filepath.Dir(goMod), root)
			if err != nil {
				return err
			}
			res, err := codegen.Write(codegen.Options{
				Root:       root,
				ModulePath: path.Join(mod, filepath.ToSlash(rel)),
				Package:    pkg,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range res.Plugins {
				fmt.Fprintf(out, "linked %s\n", p.ID)
			}
			for _, p := range res.Problems {
				fmt.Fprintf(out, "skipped %v\n", p)
			}
			fmt.Fprintf(out, "wrote %s\n", filepath.Join(root, codegen.FileName))
			return nil
		},
	}
	cmd.Flags().String("root", "", "plugin root (default from config)")
	cmd.Flags().StringVar(&goMod, "modfile", "go.mod", "go.mod of the module holding the plugin root")
	cmd.Flags().StringVar(&pkg, "package", "", "package name of the generated file (default base of root)")
	return cmd
}

func newPluginsNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a compiled plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := pluginRoot(cmd)
			if err != nil {
				return err
			}
			data, err := scaffold.NewData(args[0])
			if err != nil {
				return err
			}
			files, err := scaffold.Plugin(root, data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range files {
				fmt.Fprintf(out, "  created %s\n", f)
			}
			fmt.Fprintln(out, "\nrun: webie plugins gen")
			return nil
		},
	}
	cmd.Flags().String("root", "", "plugin root (default from config)")
	return cmd
}
