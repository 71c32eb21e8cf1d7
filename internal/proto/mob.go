package proto

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"wikibot/internal/wikitext"
)

// Mob is one row of the mob proto table, joined with its localized
// name.
type Mob struct {
	Vnum       int
	Name       string
	Rank       string
	Type       string
	BattleType string
	AiFlags    string
	RaceFlags  string

	Level     int
	St        int
	Dx        int
	Ht        int
	Iq        int
	MinDamage int
	MaxDamage int
	Def       int

	Exp           int
	SungMaExp     int
	DropItemGroup int

	EnchantSlow      int
	EnchantPoison    int
	EnchantStun      int
	EnchantCritical  int
	EnchantPenetrate int

	ResistFist      int
	ResistSword     int
	ResistTwoHanded int
	ResistDagger    int
	ResistBell      int
	ResistFan       int
	ResistBow       int
	ResistClaw      int
	ResistFire      int
	ResistElect     int
	ResistMagic     int
	ResistWind      int
	ResistDark      int
	ResistIce       int
	ResistEarth     int

	AttElec  int
	AttFire  int
	AttIce   int
	AttWind  int
	AttEarth int
	AttDark  int

	DamMultiply float64
	DrainSp     int
}

// MobTable indexes mob proto rows by vnum.
type MobTable struct {
	rows map[int]Mob
}

// LoadMobTable reads the mob proto table. When names is non-nil the
// localized name of each vnum is joined in.
func LoadMobTable(path string, names map[int]string) (*MobTable, error) {
	t, err := openTSV(path, decoderFor("en"))
	if err != nil {
		return nil, err
	}

	rows := make(map[int]Mob, len(t.rows))
	for _, row := range t.rows {
		vnum, err := strconv.Atoi(t.str(row, "Vnum"))
		if err != nil {
			continue
		}
		m := Mob{
			Vnum:       vnum,
			Name:       names[vnum],
			Rank:       t.str(row, "Rank"),
			Type:       t.str(row, "Type"),
			BattleType: t.str(row, "BattleType"),
			AiFlags:    t.str(row, "AiFlags0"),
			RaceFlags:  t.str(row, "RaceFlags"),

			Level:     t.num(row, "Level"),
			St:        t.num(row, "St"),
			Dx:        t.num(row, "Dx"),
			Ht:        t.num(row, "Ht"),
			Iq:        t.num(row, "Iq"),
			MinDamage: t.num(row, "MinDamage"),
			MaxDamage: t.num(row, "MaxDamage"),
			Def:       t.num(row, "Def"),

			Exp:           t.num(row, "Exp"),
			SungMaExp:     t.num(row, "SungMaExp"),
			DropItemGroup: t.num(row, "DropItemGroup"),

			EnchantSlow:      t.num(row, "EnchantSlow"),
			EnchantPoison:    t.num(row, "EnchantPoison"),
			EnchantStun:      t.num(row, "EnchantStun"),
			EnchantCritical:  t.num(row, "EnchantCritical"),
			EnchantPenetrate: t.num(row, "EnchantPenetrate"),

			ResistFist:      t.num(row, "ResistFist"),
			ResistSword:     t.num(row, "ResistSword"),
			ResistTwoHanded: t.num(row, "ResistTwoHanded"),
			ResistDagger:    t.num(row, "ResistDagger"),
			ResistBell:      t.num(row, "ResistBell"),
			ResistFan:       t.num(row, "ResistFan"),
			ResistBow:       t.num(row, "ResistBow"),
			ResistClaw:      t.num(row, "ResistClaw"),
			ResistFire:      t.num(row, "ResistFire"),
			ResistElect:     t.num(row, "ResistElect"),
			ResistMagic:     t.num(row, "ResistMagic"),
			ResistWind:      t.num(row, "ResistWind"),
			ResistDark:      t.num(row, "ResistDark"),
			ResistIce:       t.num(row, "ResistIce"),
			ResistEarth:     t.num(row, "ResistEarth"),

			AttElec:  t.num(row, "AttElec"),
			AttFire:  t.num(row, "AttFire"),
			AttIce:   t.num(row, "AttIce"),
			AttWind:  t.num(row, "AttWind"),
			AttEarth: t.num(row, "AttEarth"),
			AttDark:  t.num(row, "AttDark"),

			DamMultiply: t.float(row, "DamMultiply"),
			DrainSp:     t.num(row, "DrainSp"),
		}
		rows[vnum] = m
	}
	return &MobTable{rows: rows}, nil
}

// Get returns the row for a vnum.
func (t *MobTable) Get(vnum int) (Mob, bool) {
	m, ok := t.rows[vnum]
	return m, ok
}

// Vnums returns every known vnum in ascending order.
func (t *MobTable) Vnums() []int {
	vnums := make([]int, 0, len(t.rows))
	for v := range t.rows {
		vnums = append(vnums, v)
	}
	sort.Ints(vnums)
	return vnums
}

// Kind reports which page template the row belongs to.
func (m Mob) Kind() (wikitext.Kind, error) {
	switch m.Type {
	case "MONSTER":
		return wikitext.KindMonster, nil
	case "STONE":
		return wikitext.KindStone, nil
	}
	return 0, fmt.Errorf("vnum %d: no page template for type %q", m.Vnum, m.Type)
}

// attColumns fixes the order elements are reported in.
var attColumns = []struct {
	name string
	get  func(Mob) int
}{
	{"AttElec", func(m Mob) int { return m.AttElec }},
	{"AttFire", func(m Mob) int { return m.AttFire }},
	{"AttIce", func(m Mob) int { return m.AttIce }},
	{"AttWind", func(m Mob) int { return m.AttWind }},
	{"AttEarth", func(m Mob) int { return m.AttEarth }},
	{"AttDark", func(m Mob) int { return m.AttDark }},
}

// Wiki remaps the proto row to the wiki vocabulary used by the page
// templates: rank digit, race letter, battle kind, element letters.
// Experience is the larger of the regular and Sung Ma values, and an
// unmapped race becomes "Aucun".
func (m Mob) Wiki() wikitext.Monster {
	race, ok := mappings.Wiki.Race[m.RaceFlags]
	if !ok {
		race = "Aucun"
	}

	var elements []string
	for _, att := range attColumns {
		if att.get(m) != 0 {
			elements = append(elements, mappings.Wiki.Element[att.name])
		}
	}

	return wikitext.Monster{
		Vnum:         m.Vnum,
		Name:         m.Name,
		Level:        m.Level,
		Rank:         mappings.Wiki.Rank[m.Rank],
		Race:         race,
		Exp:          max(m.Exp, m.SungMaExp),
		Damage:       mappings.Wiki.Battle[m.BattleType],
		Aggressive:   strings.Contains(m.AiFlags, "AGGR"),
		Poison:       m.EnchantPoison != 0,
		Slow:         m.EnchantSlow != 0,
		Stun:         m.EnchantStun != 0,
		Repel:        !strings.Contains(m.AiFlags, "NOPUSH"),
		Elements:     elements,
		SpiritPoints: m.DrainSp,
	}
}

// CalculatorRow returns the stat vector the damage calculator tables
// carry per monster. The column order is part of the calculator's
// format.
func (m Mob) CalculatorRow() []any {
	race, ok := mappings.Calculator.Race[m.RaceFlags]
	if !ok {
		race = -1
	}
	return []any{
		mappings.Calculator.Rank[m.Rank],
		mappings.Calculator.Type[m.Type],
		m.Level,
		race,
		m.St, m.Dx, m.Ht, m.Iq,
		m.MinDamage, m.MaxDamage, m.Def,
		m.EnchantCritical, m.EnchantPenetrate,
		m.ResistFist, m.ResistSword, m.ResistTwoHanded, m.ResistDagger,
		m.ResistBell, m.ResistFan, m.ResistBow, m.ResistClaw,
		m.ResistFire, m.ResistElect, m.ResistMagic, m.ResistWind,
		m.AttElec, m.AttFire, m.AttIce, m.AttWind, m.AttEarth, m.AttDark,
		m.ResistDark, m.ResistIce, m.ResistEarth,
		m.DamMultiply,
	}
}
