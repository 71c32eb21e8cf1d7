package proto

import (
	"sort"
	"strconv"

	"wikibot/internal/wikitext"
)

// DropTable maps a mob vnum to its ordered drop groups.
type DropTable struct {
	groups map[int][]dropGroup
}

type dropGroup struct {
	index int
	items []int
}

// LoadDropTable reads the drop export (MobVnum, Group, ItemVnum, one
// row per item). Groups are ordered by their group index, items by
// file order within a group.
func LoadDropTable(path string) (*DropTable, error) {
	t, err := openTSV(path, nil)
	if err != nil {
		return nil, err
	}

	groups := make(map[int][]dropGroup)
	for _, row := range t.rows {
		mob, err := strconv.Atoi(t.str(row, "MobVnum"))
		if err != nil {
			continue
		}
		idx := t.num(row, "Group")
		item := t.num(row, "ItemVnum")

		list := groups[mob]
		pos := -1
		for i := range list {
			if list[i].index == idx {
				pos = i
				break
			}
		}
		if pos < 0 {
			list = append(list, dropGroup{index: idx})
			pos = len(list) - 1
		}
		list[pos].items = append(list[pos].items, item)
		groups[mob] = list
	}

	for _, list := range groups {
		sort.SliceStable(list, func(i, j int) bool { return list[i].index < list[j].index })
	}
	return &DropTable{groups: groups}, nil
}

// Drops resolves the drop groups of a mob to item display names using
// the item table. Unknown item vnums are skipped.
func (d *DropTable) Drops(mobVnum int, items *ItemTable) []wikitext.DropGroup {
	list := d.groups[mobVnum]
	if len(list) == 0 {
		return nil
	}

	out := make([]wikitext.DropGroup, 0, len(list))
	for _, g := range list {
		var names []string
		for _, vnum := range g.items {
			if name := items.Name(vnum); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			out = append(out, wikitext.DropGroup{Items: names})
		}
	}
	return out
}
