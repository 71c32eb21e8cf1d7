package wikitext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitUpgradeSuffix(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		suffix string
	}{
		{"Épée +7", "Épée", " +7"},
		{"Épée+9", "Épée", "+9"},
		{"Armure du dragon +10", "Armure du dragon", " +10"},
		{"Loup", "Loup", ""},
		{"Pierre +", "Pierre +", ""},
	}
	for _, tt := range tests {
		base, suffix := SplitUpgradeSuffix(tt.name)
		assert.Equal(t, tt.base, base, tt.name)
		assert.Equal(t, tt.suffix, suffix, tt.name)
	}
}

func TestImageToken(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Épée +7", "Epee"},
		{"Marteau (quête)", "Marteauquete"},
		{"Loup", "Loup"},
		{"Général Yang", "Generalyang"},
		{"Cœur d'Azrael", "Curdazrael"},
		{"ÉLÉMENTAIRE", "Elementaire"},
		{"", ""},
		{"+++", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ImageToken(tt.name), tt.name)
	}
}

func TestItemLinkWithAccentedName(t *testing.T) {
	sub := ItemLink("Épée +7")

	var b strings.Builder
	Subs{sub}.appendTo(&b)
	assert.Equal(t, "{{L|Epee|Épée}} +7", b.String())
}

func TestItemLinkPlainName(t *testing.T) {
	sub := ItemLink("Ours")

	var b strings.Builder
	Subs{sub}.appendTo(&b)
	assert.Equal(t, "{{L|Ours}}", b.String())
}
