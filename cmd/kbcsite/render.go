package main

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kbc-construction/site/internal/errors"
	"github.com/kbc-construction/site/pkg/publish"
)

func renderCmd(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the static site to a directory",
		Long: `Render the page, the client script and every referenced asset into a
directory laid out exactly as the bucket would be.

The static page has no live endpoint, so every section is shown as soon as
the script loads.

Examples:
  kbcsite render
  kbcsite render --out=build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := os.MkdirAll(out, 0o755); err != nil {
				return errors.New("KBC041").Wrap(err)
			}

			p := publish.New(publish.DirPutter{Root: out}, publish.Options{
				PublicDir:   e.cfg.PublicDir,
				MaxAttempts: 1,
				Logger:      e.logger,
			})
			report, err := p.Publish(cmd.Context(), e.content)
			if err != nil {
				return publishError(err, "KBC040")
			}

			success(cmd.OutOrStdout(), "Rendered %d files (%s) to %s",
				len(report.Objects), humanize.Bytes(uint64(report.TotalBytes())), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "dist", "Output directory")

	return cmd
}
