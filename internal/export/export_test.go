package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikibot/internal/proto"
)

const mobHeader = "Vnum\tRank\tType\tBattleType\tLevel\tAiFlags0\tRaceFlags\t" +
	"St\tDx\tHt\tIq\tMinDamage\tMaxDamage\tExp\tSungMaExp\tDef\tDropItemGroup\t" +
	"EnchantSlow\tEnchantPoison\tEnchantStun\tEnchantCritical\tEnchantPenetrate\t" +
	"ResistFist\tResistSword\tResistTwoHanded\tResistDagger\tResistBell\tResistFan\t" +
	"ResistBow\tResistClaw\tResistFire\tResistElect\tResistMagic\tResistWind\t" +
	"ResistDark\tResistIce\tResistEarth\t" +
	"AttElec\tAttFire\tAttIce\tAttWind\tAttEarth\tAttDark\tDamMultiply\tDrainSp"

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testMobTable(t *testing.T) *proto.MobTable {
	t.Helper()
	cols := strings.Split(mobHeader, "\t")
	row := make([]string, len(cols))
	for i := range row {
		row[i] = "0"
	}
	set := func(name, v string) {
		for i, c := range cols {
			if c == name {
				row[i] = v
			}
		}
	}
	set("Vnum", "101")
	set("Rank", "KNIGHT")
	set("Type", "MONSTER")
	set("BattleType", "MELEE")
	set("Level", "23")
	set("RaceFlags", "ANIMAL")

	path := writeFixture(t, "mob_proto.txt", mobHeader+"\n"+strings.Join(row, "\t")+"\n")
	table, err := proto.LoadMobTable(path, nil)
	require.NoError(t, err)
	return table
}

func TestMonsters(t *testing.T) {
	table := testMobTable(t)

	out, skipped, err := Monsters(table, []int{101}, []string{"Loup noir"})
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Contains(t, out, "Loup noir")

	row := out["Loup noir"]
	require.Len(t, row, 35)
	assert.Equal(t, 3, row[0])  // knight rank
	assert.Equal(t, 0, row[1])  // monster type
	assert.Equal(t, 23, row[2]) // level
	assert.Equal(t, 0, row[3])  // animal race
}

func TestMonstersLengthMismatch(t *testing.T) {
	table := testMobTable(t)

	_, _, err := Monsters(table, []int{101}, []string{"A", "B"})
	assert.Error(t, err)
}

func TestMonstersSkipsUnknownVnum(t *testing.T) {
	table := testMobTable(t)

	// A stale wiki page pointing at a removed vnum must not kill the
	// rest of the export.
	out, skipped, err := Monsters(table, []int{999, 101}, []string{"Ghost", "Loup noir"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ghost"}, skipped)
	require.Contains(t, out, "Loup noir")
	assert.NotContains(t, out, "Ghost")
}

const itemHeader = "Vnum\tType\tSubType\tAntiFlags\tValue0\tValue1\tValue2\tValue3\tValue4\tValue5"

func testItemTable(t *testing.T) *proto.ItemTable {
	t.Helper()
	raw := itemHeader + "\n" +
		"10\tITEM_WEAPON\tWEAPON_SWORD\tANTI_MUSA\t0\t11\t12\t13\t14\t5\n" +
		"11\tITEM_WEAPON\tWEAPON_SWORD\tANTI_MUSA\t0\t11\t12\t13\t14\t7\n" +
		"1000\tITEM_WEAPON\tWEAPON_FAN\tNONE\t0\t21\t22\t23\t24\t3\n"
	path := writeFixture(t, "item_proto.txt", raw)

	items, err := proto.LoadItemTable(path, map[int]string{
		10: "Épée +0", 11: "Épée +1", 1000: "Éventail +0",
	})
	require.NoError(t, err)
	items.AttachEnglishNames(map[int]string{
		10: "Sword +0", 11: "Sword +1", 1000: "Fan +0",
	})
	return items
}

func TestWeapons(t *testing.T) {
	out := Weapons(testItemTable(t))

	require.Contains(t, out, "Fist")
	assert.Equal(t, []any{"Poings", 8, []any{0, 0, 0, 0}, []any{}}, out["Fist"])

	require.Contains(t, out, "Sword")
	sword := out["Sword"]
	assert.Equal(t, "Épée", sword[0])
	// Warrior-only sword is reported as the two-handed class.
	assert.Equal(t, 7, sword[1])
	assert.Equal(t, []any{11, 12, 13, 14}, sword[2])
	assert.Equal(t, []any{5, 7}, sword[3])

	require.Contains(t, out, "Fan")
	assert.Equal(t, 6, out["Fan"][1])
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weapons.json")
	require.NoError(t, WriteJSON(path, map[string][]any{"Fist": {"Poings", 8}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string][]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Poings", decoded["Fist"][0])
}
