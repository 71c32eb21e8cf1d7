// cmd/wikibot/export.go
package main

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wikibot/internal/codec"
	"wikibot/internal/export"
	"wikibot/internal/proto"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build the damage calculator data tables",
	}

	cmd.AddCommand(exportMonstersCmd())
	cmd.AddCommand(exportWeaponsCmd())

	return cmd
}

// codeField matches the identifier field of an entity template.
var codeField = regexp.MustCompile(`\|\s*Code\s*=\s*([a-zA-Z]+)`)

func exportMonstersCmd() *cobra.Command {
	var (
		category string
		outFile  string
	)

	cmd := &cobra.Command{
		Use:   "monsters",
		Short: "Export monster stats for every page of a category",
		Long: `Fetch the pages of a category, read each page's identifier code to
recover its vnum, and write the stat vectors the damage calculator
needs as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			data, err := loadGameData(cfg)
			if err != nil {
				return err
			}

			session, err := newSession(cfg, log, false)
			if err != nil {
				return err
			}

			pages, err := session.CategoryMembers(cmd.Context(), category, "")
			if err != nil {
				return err
			}

			ids := make([]int64, len(pages))
			for i, p := range pages {
				ids[i] = p.ID
			}
			contents, err := session.PageContents(cmd.Context(), ids)
			if err != nil {
				return err
			}

			var (
				vnums  []int
				titles []string
			)
			for _, p := range pages {
				m := codeField.FindStringSubmatch(contents[p.ID])
				if m == nil {
					log.Warn().Str("title", p.Title).Msg("page has no identifier code")
					continue
				}
				vnum, err := codec.Decode(m[1])
				if err != nil {
					log.Warn().Str("title", p.Title).Err(err).Msg("bad identifier code")
					continue
				}
				vnums = append(vnums, vnum)
				titles = append(titles, p.Title)
			}

			table, skipped, err := export.Monsters(data.mobs, vnums, titles)
			if err != nil {
				return err
			}
			for _, title := range skipped {
				log.Warn().Str("title", title).Msg("vnum no longer in mob table")
			}

			if outFile == "" {
				outFile = filepath.Join(cfg.ResultDir, "monster_data.json")
			}
			if err := export.WriteJSON(outFile, table); err != nil {
				return err
			}
			color.Green("Wrote %d monsters to %s.", len(table), outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "Monstres", "category to export")
	cmd.Flags().StringVar(&outFile, "out", "", "output file (default: <result_dir>/monster_data.json)")

	return cmd
}

func exportWeaponsCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "weapons",
		Short: "Export the weapon stat table",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := loadGameData(cfg)
			if err != nil {
				return err
			}

			// The weapon table is keyed by English names; join them in
			// on top of the localized ones.
			enNames, err := proto.LoadNames(filepath.Join(cfg.DataDir, "en", "item_names.txt"), "en")
			if err != nil {
				return err
			}
			data.items.AttachEnglishNames(enNames)

			table := export.Weapons(data.items)

			if outFile == "" {
				outFile = filepath.Join(cfg.ResultDir, "weapon_data.json")
			}
			if err := export.WriteJSON(outFile, table); err != nil {
				return err
			}
			fmt.Printf("Wrote %d weapons to %s.\n", len(table), outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "output file (default: <result_dir>/weapon_data.json)")

	return cmd
}
