// Command webie serves a webie site and manages its plugins.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gjc14/webie/logger"
	_ "github.com/gjc14/webie/plugins"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "webie",
		Short: "A blog CMS built with Go, Echo, and templ",
		Long: `webie serves a blog with an admin area that plugins extend.
Plugins live in <name>_plugin directories under the plugin root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("dir", ".", "site directory holding .env")
	root.AddCommand(newServeCmd(), newPluginsCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the webie version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "webie %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		l, logErr := logger.New(logger.Config{Level: "debug", Format: "console"})
		if logErr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}
