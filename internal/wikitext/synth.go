package wikitext

import (
	"strconv"
	"strings"

	"wikibot/internal/codec"
)

// Kind selects which entity template a document is built for.
type Kind int

const (
	KindMonster Kind = iota
	KindStone
)

func (k Kind) templateName() string {
	if k == KindStone {
		return "Metin"
	}
	return "Monstres"
}

// Field keys of the entity templates. The rendering templates on the
// wiki match on these exact names, order included.
const (
	KeyName       = "Nom"
	KeyCode       = "Code"
	KeyImage      = "Image"
	KeyLevel      = "Niveau"
	KeyRank       = "Rang"
	KeyType       = "Type"
	KeyExp        = "Exp"
	KeyElement    = "Élément"
	KeyElement2   = "Élément2"
	KeyDamage     = "Dégâts"
	KeyAggressive = "Agressif"
	KeyPoison     = "Poison"
	KeySlow       = "Ralentissement"
	KeyStun       = "Étourdissement"
	KeyRepel      = "Repousser"
	KeySP         = "PM"
	KeyLocation   = "Localisation"
	KeyZones      = "Zones"
	KeyDrop       = "Drop"
	KeyInfo       = "Infos"
)

const (
	yes       = "O"
	no        = "N"
	noElement = "Aucun"
)

// Monster is one entity row, already remapped to wiki vocabulary
// (rank digit, race letter, element letters, damage kind).
type Monster struct {
	Vnum         int
	Name         string
	Level        int
	Rank         string
	Race         string
	Exp          int
	Damage       string
	Aggressive   bool
	Poison       bool
	Slow         bool
	Stun         bool
	Repel        bool
	Elements     []string
	SpiritPoints int
	Location     string
	Zones        string
}

// DropGroup is one alternative set of items the entity may drop.
type DropGroup struct {
	Items []string
}

// Build synthesizes the full page document for one entity. The result
// depends only on its inputs; building twice from the same inputs
// yields identical output.
func Build(kind Kind, m Monster, drops []DropGroup) Document {
	d := Document{Name: kind.templateName()}

	d.Append(KeyCode, Text(codec.Encode(m.Vnum)))
	d.Append(KeyImage, Text(ImageToken(m.Name)))
	d.Append(KeyLevel, Text(strconv.Itoa(m.Level)))
	d.Append(KeyRank, Text(m.Rank))
	d.Append(KeyType, Text(m.Race))
	d.Append(KeyExp, Text(strconv.Itoa(m.Exp)))
	d.Append(KeyDamage, Text(m.Damage))
	if kind == KindMonster {
		d.Append(KeyAggressive, yn(m.Aggressive))
		d.Append(KeyPoison, yn(m.Poison))
		d.Append(KeySlow, yn(m.Slow))
		d.Append(KeyStun, yn(m.Stun))
		d.Append(KeyRepel, yn(m.Repel))
	}
	d.Append(KeyLocation, Text(m.Location))
	d.Append(KeyZones, Text(m.Zones))
	if len(drops) > 0 {
		d.Append(KeyDrop, dropValue(drops))
	}
	d.Append(KeyInfo, Text(""))

	// The element fields sit immediately before the damage field, the
	// second one only when the entity has a second affiliation.
	element := noElement
	if len(m.Elements) > 0 {
		element = m.Elements[0]
	}
	d.InsertBefore(KeyDamage, KeyElement, Text(element))
	if len(m.Elements) > 1 {
		d.InsertBefore(KeyDamage, KeyElement2, Text(m.Elements[1]))
	}

	// Spirit-point drain is sparse: omitted entirely when zero.
	if m.SpiritPoints != 0 {
		d.InsertAfter(KeyDamage, KeySP, Text(strconv.Itoa(m.SpiritPoints)))
	}

	// A parenthesized disambiguator in the display name moves the real
	// name into its own leading field.
	if real, ok := realName(m.Name); ok {
		d.InsertFront(KeyName, Text(real))
	}

	return d
}

// dropValue renders the drop groups as nested Drop sub-templates, each
// item as an L link sub-template.
func dropValue(drops []DropGroup) Subs {
	groups := make(Subs, 0, len(drops))
	for _, group := range drops {
		gd := Document{Name: "Drop"}
		for _, item := range group.Items {
			gd.Append("", Subs{ItemLink(item)})
		}
		groups = append(groups, Sub{Doc: gd})
	}
	return groups
}

// realName extracts the prefix of a disambiguated display name such as
// "Marteau (quête)".
func realName(name string) (string, bool) {
	if i := strings.Index(name, " ("); i >= 0 {
		return name[:i], true
	}
	return "", false
}

func yn(v bool) Text {
	if v {
		return yes
	}
	return no
}
