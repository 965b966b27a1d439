package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbc-construction/site/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	errors.AutoColor(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "kbcsite",
		Short: "Serve and publish the KBC Construction site",
		Long: `kbcsite serves the KBC Construction marketing page.

The page is rendered on the server. A small script reports which sections
have scrolled into view over a WebSocket, and the server answers with the
fade, stagger and counter animations for those sections.

Configuration is read from kbc.json and KBC_ environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./kbc.json)")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		renderCmd(&configPath),
		publishCmd(&configPath),
		checkCmd(&configPath),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
