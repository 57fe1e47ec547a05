package objects

// Powerset is an ordered group of powers a character picks from
type Powerset struct {
	SourceFile               string   `json:"source_file" yaml:"source_file"`
	FullName                 string   `json:"full_name" yaml:"full_name"`
	Name                     string   `json:"name" yaml:"name"`
	System                   uint32   `json:"system" yaml:"system"`
	Shared                   uint8    `json:"shared" yaml:"shared"`
	DisplayName              string   `json:"display_name" yaml:"display_name"`
	DisplayHelp              string   `json:"display_help" yaml:"display_help"`
	DisplayShortHelp         string   `json:"display_short_help" yaml:"display_short_help"`
	IconName                 string   `json:"icon_name" yaml:"icon_name"`
	CostumeKeys              []string `json:"costume_keys" yaml:"costume_keys"`
	CostumeParts             []string `json:"costume_parts" yaml:"costume_parts"`
	SetAccountRequires       string   `json:"set_account_requires" yaml:"set_account_requires"`
	SetAccountTooltip        string   `json:"set_account_tooltip" yaml:"set_account_tooltip"`
	SetAccountProduct        string   `json:"set_account_product" yaml:"set_account_product"`
	SetBuyRequires           []string `json:"set_buy_requires" yaml:"set_buy_requires"`
	SetBuyRequiresFailedText string   `json:"set_buy_requires_failed_text" yaml:"set_buy_requires_failed_text"`
	ShowInInventory          uint32   `json:"show_in_inventory" yaml:"show_in_inventory"`
	ShowInManage             bool     `json:"show_in_manage" yaml:"show_in_manage"`
	ShowInInfo               bool     `json:"show_in_info" yaml:"show_in_info"`
	SpecializeAt             uint32   `json:"specialize_at" yaml:"specialize_at"`
	SpecializeRequires       []string `json:"specialize_requires" yaml:"specialize_requires"`
	Powers                   []string `json:"powers" yaml:"powers"`
	Available                []uint32 `json:"available" yaml:"available"`
	AIMaxLevel               []uint32 `json:"ai_max_level" yaml:"ai_max_level"`
	AIMinRankCon             []uint32 `json:"ai_min_rank_con" yaml:"ai_min_rank_con"`
	AIMaxRankCon             []uint32 `json:"ai_max_rank_con" yaml:"ai_max_rank_con"`
	MinDifficulty            []uint32 `json:"min_difficulty" yaml:"min_difficulty"`
	MaxDifficulty            []uint32 `json:"max_difficulty" yaml:"max_difficulty"`
	ForceLevelBought         uint32   `json:"force_level_bought" yaml:"force_level_bought"`
}

// ResolveStrings replaces display-string keys with their text
func (p *Powerset) ResolveStrings(r Resolver) error {
	return resolveAll(r,
		field{"display_name", &p.DisplayName},
		field{"display_help", &p.DisplayHelp},
		field{"display_short_help", &p.DisplayShortHelp},
	)
}
