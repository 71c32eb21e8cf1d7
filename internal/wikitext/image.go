package wikitext

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// upgradePattern matches the trailing enhancement marker on item names
// ("Épée +7").
var upgradePattern = regexp.MustCompile(`\s?\+\d+$`)

// foldAccents decomposes and removes combining marks, so "Épée"
// becomes "Epee".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SplitUpgradeSuffix splits a display name into its base name and the
// literal upgrade suffix, which is empty when the name has none.
func SplitUpgradeSuffix(name string) (base, suffix string) {
	loc := upgradePattern.FindStringIndex(name)
	if loc == nil {
		return name, ""
	}
	return name[:loc[0]], name[loc[0]:]
}

// ImageToken derives the image-reference token from a localized
// display name: the upgrade suffix is stripped, accents are folded,
// everything but letters and digits is dropped, and the result is
// lowercased with the first rune capitalized.
func ImageToken(name string) string {
	base, _ := SplitUpgradeSuffix(name)

	folded, _, err := transform.String(foldAccents, base)
	if err != nil {
		folded = base
	}

	var b strings.Builder
	for _, r := range folded {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	token := b.String()
	if token == "" {
		return ""
	}
	return strings.ToUpper(token[:1]) + token[1:]
}

// ItemLink builds the "L" item-link sub-template for a display name.
// When the image token differs from the raw name, both are carried;
// the upgrade suffix is reattached after the template markup, never
// inside it.
func ItemLink(name string) Sub {
	base, suffix := SplitUpgradeSuffix(name)
	token := ImageToken(name)

	doc := Document{Name: "L"}
	if token == base {
		doc.Append("", Text(base))
	} else {
		doc.Append("", Text(token))
		doc.Append("", Text(base))
	}
	return Sub{Doc: doc, Suffix: suffix}
}
