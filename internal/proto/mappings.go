package proto

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed mappings.yaml
var mappingsRaw []byte

type wikiMappings struct {
	Rank    map[string]string `yaml:"rank"`
	Battle  map[string]string `yaml:"battle"`
	Race    map[string]string `yaml:"race"`
	Element map[string]string `yaml:"element"`
}

type calculatorMappings struct {
	Rank map[string]int `yaml:"rank"`
	Type map[string]int `yaml:"type"`
	Race map[string]int `yaml:"race"`
}

type mappingTables struct {
	Wiki       wikiMappings       `yaml:"wiki"`
	Calculator calculatorMappings `yaml:"calculator"`
	Weapon     map[string]int     `yaml:"weapon"`
}

var mappings = loadMappings()

func loadMappings() mappingTables {
	var m mappingTables
	if err := yaml.Unmarshal(mappingsRaw, &m); err != nil {
		panic("proto: invalid embedded mappings: " + err.Error())
	}
	return m
}

// WeaponClass returns the numeric weapon class of an item subtype and
// whether the subtype is a weapon at all.
func WeaponClass(subType string) (int, bool) {
	n, ok := mappings.Weapon[subType]
	return n, ok
}
