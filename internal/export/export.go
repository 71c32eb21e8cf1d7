// Package export builds the data tables consumed by the wiki's damage
// calculator pages.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"wikibot/internal/proto"
)

// Monsters builds the calculator monster table: one stat vector per
// page title. vnums and titles are parallel. A vnum absent from the
// proto table usually means a wiki page outliving a removed entity;
// its title is reported in skipped rather than failing the run.
func Monsters(table *proto.MobTable, vnums []int, titles []string) (out map[string][]any, skipped []string, err error) {
	if len(vnums) != len(titles) {
		return nil, nil, fmt.Errorf("got %d vnums for %d titles", len(vnums), len(titles))
	}

	out = make(map[string][]any, len(vnums))
	for i, vnum := range vnums {
		m, ok := table.Get(vnum)
		if !ok {
			skipped = append(skipped, titles[i])
			continue
		}
		out[titles[i]] = m.CalculatorRow()
	}
	return out, skipped, nil
}

// Weapon classes without a proto subtype of their own.
const (
	classSwordTwoHand = 7
	classFist         = 8
)

// Weapons builds the calculator weapon table keyed by English weapon
// name. Upgrade rows of one weapon are folded into a single entry: the
// base stats come from the lowest vnum, the per-upgrade bonus column
// is collected across all rows. A bare-hands sentinel entry is always
// present.
func Weapons(items *proto.ItemTable) map[string][]any {
	out := map[string][]any{
		"Fist": {"Poings", classFist, []any{0, 0, 0, 0}, []any{}},
	}

	for _, w := range items.Weapons() {
		if w.NameEN == "" {
			continue
		}
		entry, ok := out[w.NameEN]
		if !ok {
			class, _ := proto.WeaponClass(w.SubType)
			// Two-handed swords share the sword subtype; the warrior-only
			// flag tells them apart.
			if class == 0 && strings.Contains(w.AntiFlags, "ANTI_MUSA") {
				class = classSwordTwoHand
			}
			entry = []any{
				w.Name,
				class,
				[]any{w.Values[1], w.Values[2], w.Values[3], w.Values[4]},
				[]any{},
			}
		}
		entry[3] = append(entry[3].([]any), w.Values[5])
		out[w.NameEN] = entry
	}
	return out
}

// WriteJSON writes a table as indented JSON.
func WriteJSON(path string, table map[string][]any) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
