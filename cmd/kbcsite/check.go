package main

import (
	"github.com/spf13/cobra"

	"github.com/kbc-construction/site/pkg/publish"
)

func checkCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration, content and assets",
		Long: `Load kbc.json and the content file, validate both, and confirm every
image and video the page references exists in the public directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			if path := e.cfg.Path(); path != "" {
				success(out, "Config %s", path)
			} else {
				success(out, "Config defaults")
			}
			if e.cfg.Content.Path != "" {
				success(out, "Content %s", e.cfg.Content.Path)
			} else {
				success(out, "Content built-in")
			}

			p := publish.New(nil, publish.Options{PublicDir: e.cfg.PublicDir, Logger: e.logger})
			objects, err := p.Plan(e.content)
			if err != nil {
				return publishError(err, "KBC040")
			}
			success(out, "Assets %d found in %s", len(objects)-2, e.cfg.PublicDir)
			info(out, "Serving on %s", e.cfg.Address())
			return nil
		},
	}
}
