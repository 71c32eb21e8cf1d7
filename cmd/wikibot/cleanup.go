// cmd/wikibot/cleanup.go
package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wikibot/internal/mediawiki"
)

func cleanupCmd() *cobra.Command {
	var (
		dryRun bool
		reason string
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete empty pages that nothing links to",
		Long: `Find zero-length pages, check each one's backlinks, and delete the
pages no other page references. Linked pages are left alone and
reported so they can be fixed by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			session, err := newSession(cfg, log, !dryRun)
			if err != nil {
				return err
			}
			if !dryRun {
				defer session.Logout(cmd.Context())
			}

			pages, err := session.ShortPages(cmd.Context())
			if err != nil {
				return err
			}
			if len(pages) == 0 {
				color.Green("No empty pages found.")
				return nil
			}
			log.Info().Int("pages", len(pages)).Msg("checking empty pages")

			// The short-page list can lag behind recent edits; re-read
			// the actual content before touching anything.
			ids := make([]int64, len(pages))
			for i, p := range pages {
				ids[i] = p.ID
			}
			contents, err := session.PageContents(cmd.Context(), ids)
			if err != nil {
				return err
			}

			var deleted, kept, failed int
			for i := range pages {
				page := &pages[i]
				if contents[page.ID] != "" {
					color.Yellow("kept    %s (no longer empty)", page.Title)
					kept++
					continue
				}
				if _, err := session.Backlinks(cmd.Context(), page); err != nil {
					return err
				}

				if page.BacklinkCount > 0 {
					color.Yellow("kept    %s (%d backlinks)", page.Title, page.BacklinkCount)
					kept++
					continue
				}

				if dryRun {
					color.Cyan("would delete %s", page.Title)
					deleted++
					continue
				}

				err := session.Delete(cmd.Context(), page, reason)
				switch {
				case err == nil:
					color.Green("deleted %s", page.Title)
					deleted++
				case errors.Is(err, mediawiki.ErrHasBacklinks):
					color.Yellow("kept    %s", page.Title)
					kept++
				default:
					var perm *mediawiki.PermissionError
					if errors.As(err, &perm) {
						color.Red("denied  %s: %v", page.Title, err)
						failed++
						continue
					}
					return err
				}
			}

			log.Info().
				Int("deleted", deleted).
				Int("kept", kept).
				Int("failed", failed).
				Msg("cleanup finished")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without deleting")
	cmd.Flags().StringVar(&reason, "reason", "Empty page with no incoming links", "deletion reason")

	return cmd
}
