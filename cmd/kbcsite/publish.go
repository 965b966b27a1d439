package main

import (
	"github.com/spf13/cobra"

	"github.com/kbc-construction/site/internal/errors"
	"github.com/kbc-construction/site/pkg/publish"
)

func publishCmd(configPath *string) *cobra.Command {
	var (
		bucket      string
		prefix      string
		dryRun      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the static site to S3",
		Long: `Render the static page and upload it with the client script and every
referenced asset. Each object gets a content type and a cache lifetime for
its kind; the page itself is always revalidated.

Credentials come from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.

Examples:
  kbcsite publish --bucket=kbc-site
  kbcsite publish --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			if bucket == "" {
				bucket = e.cfg.Publish.Bucket
			}
			if bucket == "" {
				return errors.New("KBC033")
			}
			if !cmd.Flags().Changed("prefix") {
				prefix = e.cfg.Publish.Prefix
			}

			client := publish.NewS3Client(e.cfg.S3Config())
			if !dryRun {
				if _, err := client.Options().Credentials.Retrieve(cmd.Context()); err != nil {
					return publishError(err, "KBC032")
				}
			}

			p := publish.New(client, publish.Options{
				Bucket:      bucket,
				Prefix:      prefix,
				PublicDir:   e.cfg.PublicDir,
				DryRun:      dryRun,
				Concurrency: concurrency,
				Logger:      e.logger,
			})
			report, err := p.Publish(cmd.Context(), e.content)
			if err != nil {
				return publishError(err, "KBC031")
			}

			success(cmd.OutOrStdout(), "%s", report.Summary())
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Target bucket (default from kbc.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from kbc.json)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan the upload without writing")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Parallel uploads")

	return cmd
}
