package proto

import (
	"regexp"
	"sort"
	"strconv"
)

// Item is one row of the item proto table, joined with its localized
// names.
type Item struct {
	Vnum      int
	Type      string
	SubType   string
	AntiFlags string
	Values    [6]int
	Name      string
	NameEN    string
}

// ItemTable indexes item proto rows by vnum.
type ItemTable struct {
	rows map[int]Item
}

var upgradeSuffix = regexp.MustCompile(`\s?\+\d+`)

// LoadItemTable reads the item proto table. Rows whose vnum column is
// not numeric (section markers in the export) are skipped. Equipment
// names carry a per-upgrade " +N" suffix in the name table; it is
// stripped so every upgrade level of a piece shares one name.
func LoadItemTable(path string, names map[int]string) (*ItemTable, error) {
	t, err := openTSV(path, decoderFor("en"))
	if err != nil {
		return nil, err
	}

	rows := make(map[int]Item, len(t.rows))
	for _, row := range t.rows {
		vnum, err := strconv.Atoi(t.str(row, "Vnum"))
		if err != nil {
			continue
		}
		it := Item{
			Vnum:      vnum,
			Type:      t.str(row, "Type"),
			SubType:   t.str(row, "SubType"),
			AntiFlags: t.str(row, "AntiFlags"),
			Name:      names[vnum],
		}
		for i := range it.Values {
			it.Values[i] = t.num(row, "Value"+strconv.Itoa(i))
		}
		if isEquipment(it.Type) {
			it.Name = upgradeSuffix.ReplaceAllString(it.Name, "")
		}
		rows[vnum] = it
	}
	return &ItemTable{rows: rows}, nil
}

func isEquipment(itemType string) bool {
	switch itemType {
	case "ITEM_WEAPON", "ITEM_ARMOR", "ITEM_BELT":
		return true
	}
	return false
}

// AttachEnglishNames joins a second, English name table in; the
// weapon tables are keyed by English name.
func (t *ItemTable) AttachEnglishNames(names map[int]string) {
	for vnum, it := range t.rows {
		name := names[vnum]
		if isEquipment(it.Type) {
			name = upgradeSuffix.ReplaceAllString(name, "")
		}
		it.NameEN = name
		t.rows[vnum] = it
	}
}

// Get returns the row for a vnum.
func (t *ItemTable) Get(vnum int) (Item, bool) {
	it, ok := t.rows[vnum]
	return it, ok
}

// Name returns the localized name of a vnum, empty when unknown.
func (t *ItemTable) Name(vnum int) string {
	return t.rows[vnum].Name
}

// Player weapons live in the low vnum range plus one event range; a
// handful of unreleased series are excluded, ten upgrade rows each.
const maxWeaponVnum = 7509

var weaponEventRange = [2]int{21900, 21976}

var excludedWeaponSeries = []int{
	210, 220, 230, 260,
	1140, 1150, 1160,
	2190,
	3170, 3180, 3200,
	4030,
	5130, 5140, 5150,
	7170, 7180,
}

// Weapons returns the player weapon rows in ascending vnum order.
func (t *ItemTable) Weapons() []Item {
	excluded := make(map[int]bool, len(excludedWeaponSeries)*10)
	for _, start := range excludedWeaponSeries {
		for v := start; v < start+10; v++ {
			excluded[v] = true
		}
	}

	var weapons []Item
	for vnum, it := range t.rows {
		inRange := vnum <= maxWeaponVnum ||
			(vnum >= weaponEventRange[0] && vnum <= weaponEventRange[1])
		if !inRange || excluded[vnum] {
			continue
		}
		if _, ok := WeaponClass(it.SubType); !ok {
			continue
		}
		weapons = append(weapons, it)
	}
	sort.Slice(weapons, func(i, j int) bool { return weapons[i].Vnum < weapons[j].Vnum })
	return weapons
}
