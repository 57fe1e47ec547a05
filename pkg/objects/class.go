package objects

// Class is a playable archetype or a villain class
type Class struct {
	Name                string   `json:"name" yaml:"name"`
	DisplayName         string   `json:"display_name" yaml:"display_name"`
	DisplayHelp         string   `json:"display_help" yaml:"display_help"`
	AllowedOrigins      []string `json:"allowed_origins" yaml:"allowed_origins"`
	SpecialRestrictions []string `json:"special_restrictions" yaml:"special_restrictions"`
	StoreRequires       string   `json:"store_requires" yaml:"store_requires"`
	LockedTooltip       string   `json:"locked_tooltip" yaml:"locked_tooltip"`
	ProductCode         string   `json:"product_code" yaml:"product_code"`
	ReductionClass      string   `json:"reduction_class" yaml:"reduction_class"`
	ReduceAsArchvillain bool     `json:"reduce_as_archvillain" yaml:"reduce_as_archvillain"`
	LevelUpRespecs      []uint32 `json:"level_up_respecs" yaml:"level_up_respecs"`
	DisplayShortHelp    string   `json:"display_short_help" yaml:"display_short_help"`
	Icon                string   `json:"icon" yaml:"icon"`
	PrimaryCategory     string   `json:"primary_category" yaml:"primary_category"`
	SecondaryCategory   string   `json:"secondary_category" yaml:"secondary_category"`
	PowerPoolCategory   string   `json:"power_pool_category" yaml:"power_pool_category"`
	EpicPoolCategory    string   `json:"epic_pool_category" yaml:"epic_pool_category"`

	AttribMin         []CharacterAttributes `json:"attrib_min" yaml:"attrib_min"`
	AttribBase        []CharacterAttributes `json:"attrib_base" yaml:"attrib_base"`
	StrengthMin       []CharacterAttributes `json:"strength_min" yaml:"strength_min"`
	ResistanceMin     []CharacterAttributes `json:"resistance_min" yaml:"resistance_min"`
	AttribDiminStrIn  []CharacterAttributes `json:"attrib_dimin_str_in" yaml:"attrib_dimin_str_in"`
	AttribDiminStrOut []CharacterAttributes `json:"attrib_dimin_str_out" yaml:"attrib_dimin_str_out"`
	AttribDiminCurIn  []CharacterAttributes `json:"attrib_dimin_cur_in" yaml:"attrib_dimin_cur_in"`
	AttribDiminCurOut []CharacterAttributes `json:"attrib_dimin_cur_out" yaml:"attrib_dimin_cur_out"`
	AttribDiminResIn  []CharacterAttributes `json:"attrib_dimin_res_in" yaml:"attrib_dimin_res_in"`
	AttribDiminResOut []CharacterAttributes `json:"attrib_dimin_res_out" yaml:"attrib_dimin_res_out"`

	AttribMaxTable     []CharacterAttributesTable `json:"attrib_max_table" yaml:"attrib_max_table"`
	AttribMaxMaxTable  []CharacterAttributesTable `json:"attrib_max_max_table" yaml:"attrib_max_max_table"`
	StrengthMaxTable   []CharacterAttributesTable `json:"strength_max_table" yaml:"strength_max_table"`
	ResistanceMaxTable []CharacterAttributesTable `json:"resistance_max_table" yaml:"resistance_max_table"`
	ModTable           []NamedTable               `json:"mod_table" yaml:"mod_table"`

	ConnectHPAndStatus bool `json:"connect_hp_and_status" yaml:"connect_hp_and_status"`
}

// Class records carry fields past ConnectHPAndStatus whose layout is not known.
func (Class) PartialShape() {}

// ResolveStrings replaces display-string keys with their text
func (c *Class) ResolveStrings(r Resolver) error {
	return resolveAll(r,
		field{"display_name", &c.DisplayName},
		field{"display_help", &c.DisplayHelp},
		field{"display_short_help", &c.DisplayShortHelp},
		field{"locked_tooltip", &c.LockedTooltip},
	)
}
