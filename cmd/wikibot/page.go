// cmd/wikibot/page.go
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wikibot/internal/config"
	"wikibot/internal/mediawiki"
	"wikibot/internal/proto"
	"wikibot/internal/wikitext"
)

// gameData bundles the proto tables a page build needs.
type gameData struct {
	mobs  *proto.MobTable
	items *proto.ItemTable
	drops *proto.DropTable
}

// loadGameData reads the proto and name tables from the configured
// data directory. A missing drop export is not an error; pages are
// then built without a drop field.
func loadGameData(cfg *config.Config) (*gameData, error) {
	mobNames, err := proto.LoadNames(filepath.Join(cfg.DataDir, cfg.Lang, "mob_names.txt"), cfg.Lang)
	if err != nil {
		return nil, err
	}
	mobs, err := proto.LoadMobTable(filepath.Join(cfg.DataDir, "mob_proto.txt"), mobNames)
	if err != nil {
		return nil, err
	}

	itemNames, err := proto.LoadNames(filepath.Join(cfg.DataDir, cfg.Lang, "item_names.txt"), cfg.Lang)
	if err != nil {
		return nil, err
	}
	items, err := proto.LoadItemTable(filepath.Join(cfg.DataDir, "item_proto.txt"), itemNames)
	if err != nil {
		return nil, err
	}

	drops, err := proto.LoadDropTable(filepath.Join(cfg.DataDir, "drops.txt"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		drops = nil
	}

	return &gameData{mobs: mobs, items: items, drops: drops}, nil
}

// buildDocument synthesizes the page document for one vnum.
func (g *gameData) buildDocument(vnum int, location, zones string) (wikitext.Document, string, error) {
	mob, ok := g.mobs.Get(vnum)
	if !ok {
		return wikitext.Document{}, "", fmt.Errorf("vnum %d not in mob table", vnum)
	}
	if mob.Name == "" {
		return wikitext.Document{}, "", fmt.Errorf("vnum %d has no localized name", vnum)
	}

	kind, err := mob.Kind()
	if err != nil {
		return wikitext.Document{}, "", err
	}

	m := mob.Wiki()
	m.Location = location
	m.Zones = zones

	var drops []wikitext.DropGroup
	if g.drops != nil {
		drops = g.drops.Drops(vnum, g.items)
	}

	return wikitext.Build(kind, m, drops), mob.Name, nil
}

func pageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Build and publish entity pages",
	}

	cmd.AddCommand(pageShowCmd())
	cmd.AddCommand(pageCreateCmd())

	return cmd
}

func pageShowCmd() *cobra.Command {
	var (
		vnum     int
		location string
		zones    string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the generated wikitext for a vnum without editing the wiki",
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

			doc, _, err := data.buildDocument(vnum, location, zones)
			if err != nil {
				return err
			}
			fmt.Println(doc.String())
			return nil
		},
	}

	cmd.Flags().IntVar(&vnum, "vnum", 0, "entity vnum")
	cmd.Flags().StringVar(&location, "location", "", "location field value")
	cmd.Flags().StringVar(&zones, "zones", "", "zones field value")
	cmd.MarkFlagRequired("vnum")

	return cmd
}

func pageCreateCmd() *cobra.Command {
	var (
		vnum     int
		location string
		zones    string
		summary  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create or overwrite the wiki page for a vnum",
		Args:  cobra.NoArgs,
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
			doc, title, err := data.buildDocument(vnum, location, zones)
			if err != nil {
				return err
			}

			session, err := newSession(cfg, log, true)
			if err != nil {
				return err
			}
			defer session.Logout(cmd.Context())

			page := &mediawiki.Page{Title: title}
			if err := session.Edit(cmd.Context(), page, doc.String(), summary); err != nil {
				return err
			}
			color.Green("Saved %s.", title)
			return nil
		},
	}

	cmd.Flags().IntVar(&vnum, "vnum", 0, "entity vnum")
	cmd.Flags().StringVar(&location, "location", "", "location field value")
	cmd.Flags().StringVar(&zones, "zones", "", "zones field value")
	cmd.Flags().StringVar(&summary, "summary", "Automated page update", "edit summary")
	cmd.MarkFlagRequired("vnum")

	return cmd
}
