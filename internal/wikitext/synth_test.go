package wikitext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questHammer() (Monster, []DropGroup) {
	m := Monster{
		Vnum:       5163,
		Name:       "Marteau (quête)",
		Level:      40,
		Rank:       "2",
		Race:       "M",
		Exp:        1200,
		Damage:     "Melee",
		Aggressive: true,
		Elements:   []string{"Feu", "T"},
	}
	drops := []DropGroup{{Items: []string{"Épée +7"}}}
	return m, drops
}

func TestBuildMonsterFieldOrder(t *testing.T) {
	m, drops := questHammer()
	d := Build(KindMonster, m, drops)

	assert.Equal(t, "Monstres", d.Name)
	assert.Equal(t, []string{
		KeyName, KeyCode, KeyImage, KeyLevel, KeyRank, KeyType, KeyExp,
		KeyElement, KeyElement2, KeyDamage, KeyAggressive,
		KeyPoison, KeySlow, KeyStun, KeyRepel,
		KeyLocation, KeyZones, KeyDrop, KeyInfo,
	}, d.Keys())
}

func TestBuildMonsterValues(t *testing.T) {
	m, drops := questHammer()
	d := Build(KindMonster, m, drops)

	name, ok := d.Get(KeyName)
	require.True(t, ok)
	assert.Equal(t, Text("Marteau"), name, "real name is the prefix before the disambiguator")

	code, ok := d.Get(KeyCode)
	require.True(t, ok)
	assert.Equal(t, Text("pVb"), code)

	image, ok := d.Get(KeyImage)
	require.True(t, ok)
	assert.Equal(t, Text("Marteauquete"), image)

	el, _ := d.Get(KeyElement)
	assert.Equal(t, Text("Feu"), el)
	el2, _ := d.Get(KeyElement2)
	assert.Equal(t, Text("T"), el2)

	_, hasSP := d.Get(KeySP)
	assert.False(t, hasSP, "zero spirit-point drain must omit the field, not emit a placeholder")
}

func TestBuildMonsterDropSerialization(t *testing.T) {
	m, drops := questHammer()
	d := Build(KindMonster, m, drops)

	out := d.String()
	assert.Contains(t, out, "|Drop = {{Drop|{{L|Epee|Épée}} +7}}",
		"suffix reattached after the sub-template markup, not inside it")
}

func TestBuildMonsterWithoutDisambiguator(t *testing.T) {
	m, _ := questHammer()
	m.Name = "Loup"
	d := Build(KindMonster, m, nil)

	_, hasName := d.Get(KeyName)
	assert.False(t, hasName)
	assert.Equal(t, KeyCode, d.Keys()[0])

	_, hasDrop := d.Get(KeyDrop)
	assert.False(t, hasDrop, "no drop table entry, no drop field")
}

func TestBuildMonsterSingleElement(t *testing.T) {
	m, _ := questHammer()
	m.Elements = []string{"G"}
	d := Build(KindMonster, m, nil)

	keys := d.Keys()
	for _, k := range keys {
		assert.NotEqual(t, KeyElement2, k)
	}

	// Élément still sits immediately before Dégâts.
	elIdx := indexOfKey(t, keys, KeyElement)
	assert.Equal(t, KeyDamage, keys[elIdx+1])
}

func TestBuildMonsterNoElement(t *testing.T) {
	m, _ := questHammer()
	m.Elements = nil
	d := Build(KindMonster, m, nil)

	el, ok := d.Get(KeyElement)
	require.True(t, ok)
	assert.Equal(t, Text("Aucun"), el)
}

func TestBuildMonsterSpiritPoints(t *testing.T) {
	m, _ := questHammer()
	m.SpiritPoints = 60
	d := Build(KindMonster, m, nil)

	sp, ok := d.Get(KeySP)
	require.True(t, ok)
	assert.Equal(t, Text("60"), sp)

	keys := d.Keys()
	damIdx := indexOfKey(t, keys, KeyDamage)
	assert.Equal(t, KeySP, keys[damIdx+1], "PM follows the damage field")
}

func TestBuildStoneSkipsCombatFlags(t *testing.T) {
	m, drops := questHammer()
	d := Build(KindStone, m, drops)

	assert.Equal(t, "Metin", d.Name)
	for _, k := range d.Keys() {
		assert.NotEqual(t, KeyAggressive, k)
		assert.NotEqual(t, KeyPoison, k)
	}
	_, hasDrop := d.Get(KeyDrop)
	assert.True(t, hasDrop)
}

func TestBuildIsDeterministic(t *testing.T) {
	m, drops := questHammer()
	first := Build(KindMonster, m, drops).String()
	second := Build(KindMonster, m, drops).String()
	assert.Equal(t, first, second)
}

func TestBuildMultipleDropGroups(t *testing.T) {
	m, _ := questHammer()
	drops := []DropGroup{
		{Items: []string{"Épée +7", "Ours"}},
		{Items: []string{"Pain"}},
	}
	d := Build(KindMonster, m, drops)

	out := d.String()
	assert.True(t, strings.Contains(out,
		"{{Drop|{{L|Epee|Épée}} +7|{{L|Ours}}}} {{Drop|{{L|Pain}}}}"), out)
}

func indexOfKey(t *testing.T, keys []string, key string) int {
	t.Helper()
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	t.Fatalf("key %q not found in %v", key, keys)
	return -1
}
