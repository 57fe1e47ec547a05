package objects

import "github.com/ssargent/cohbin/pkg/shape"

// BoostSet is a named set of enhancements that grants bonuses when slotted
// together
type BoostSet struct {
	Name             string               `json:"name" yaml:"name"`
	DisplayName      string               `json:"display_name" yaml:"display_name"`
	GroupName        string               `json:"group_name" yaml:"group_name"`
	ConversionGroups []string             `json:"conversion_groups" yaml:"conversion_groups"`
	Powers           []shape.InlineString `json:"powers" yaml:"powers"`
	BoostLists       []BoostList          `json:"boost_lists" yaml:"boost_lists"`
	Bonuses          []BoostSetBonus      `json:"bonuses" yaml:"bonuses"`
	MinLevel         uint32               `json:"min_level" yaml:"min_level"`
	MaxLevel         uint32               `json:"max_level" yaml:"max_level"`
	StoreProduct     string               `json:"store_product" yaml:"store_product"`
}

// BoostList names the enhancements in one slot of a set
type BoostList struct {
	Boosts []shape.InlineString `json:"boosts" yaml:"boosts"`
}

// BoostSetBonus is granted once enough of a set is slotted
type BoostSetBonus struct {
	DisplayText string               `json:"display_text" yaml:"display_text"`
	MinBoosts   uint32               `json:"min_boosts" yaml:"min_boosts"`
	MaxBoosts   uint32               `json:"max_boosts" yaml:"max_boosts"`
	Requires    []string             `json:"requires" yaml:"requires"`
	AutoPowers  []shape.InlineString `json:"auto_powers" yaml:"auto_powers"`
	BonusPower  string               `json:"bonus_power" yaml:"bonus_power" bin:",inline"`
}

// ResolveStrings replaces display-string keys with their text
func (b *BoostSet) ResolveStrings(r Resolver) error {
	return resolveAll(r, field{"display_name", &b.DisplayName})
}
