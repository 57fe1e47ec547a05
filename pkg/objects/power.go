package objects

import "strconv"

// RGBA is a tint color. Each channel occupies a full word on the wire.
type RGBA [4]uint8

// AttackType tags what kind of attack a power is, for defense purposes
type AttackType uint32

// Attack types
const (
	AttackRanged         AttackType = 104
	AttackMelee          AttackType = 108
	AttackAOE            AttackType = 112
	AttackSmashing       AttackType = 116
	AttackLethal         AttackType = 120
	AttackFire           AttackType = 124
	AttackCold           AttackType = 128
	AttackEnergy         AttackType = 132
	AttackNegativeEnergy AttackType = 136
	AttackPsionic        AttackType = 140
	AttackToxic          AttackType = 144
)

var attackTypeNames = map[AttackType]string{
	AttackRanged:         "Ranged",
	AttackMelee:          "Melee",
	AttackAOE:            "AOE",
	AttackSmashing:       "Smashing",
	AttackLethal:         "Lethal",
	AttackFire:           "Fire",
	AttackCold:           "Cold",
	AttackEnergy:         "Energy",
	AttackNegativeEnergy: "NegativeEnergy",
	AttackPsionic:        "Psionic",
	AttackToxic:          "Toxic",
}

func (a AttackType) String() string {
	if name, ok := attackTypeNames[a]; ok {
		return name
	}
	return "Unknown(" + strconv.FormatUint(uint64(a), 10) + ")"
}

// MarshalText renders known attack types by name
func (a AttackType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// PowerCategory groups powersets, e.g. a class's primary sets
type PowerCategory struct {
	SourceFile       string   `json:"source_file" yaml:"source_file"`
	Name             string   `json:"name" yaml:"name"`
	DisplayName      string   `json:"display_name" yaml:"display_name"`
	DisplayHelp      string   `json:"display_help" yaml:"display_help"`
	DisplayShortHelp string   `json:"display_short_help" yaml:"display_short_help"`
	Powersets        []string `json:"powersets" yaml:"powersets"`
}

// ResolveStrings replaces display-string keys with their text
func (c *PowerCategory) ResolveStrings(r Resolver) error {
	return resolveAll(r,
		field{"display_name", &c.DisplayName},
		field{"display_help", &c.DisplayHelp},
		field{"display_short_help", &c.DisplayShortHelp},
	)
}

// PowerRedirect swaps a power for another when its requirements are met
type PowerRedirect struct {
	Power      string   `json:"power" yaml:"power"`
	Requires   []string `json:"requires" yaml:"requires"`
	ShowInInfo bool     `json:"show_in_info" yaml:"show_in_info"`
}

// Var is a named per-power variable
type Var struct {
	Index uint32  `json:"index" yaml:"index"`
	Name  string  `json:"name" yaml:"name"`
	Min   float32 `json:"min" yaml:"min"`
	Max   float32 `json:"max" yaml:"max"`
}

// Effects is a group of attribute modifiers applied together. Groups nest.
type Effects struct {
	Tag            []string    `json:"tag" yaml:"tag"`
	Chance         float32     `json:"chance" yaml:"chance"`
	ProcsPerMinute float32     `json:"procs_per_minute" yaml:"procs_per_minute"`
	Delay          float32     `json:"delay" yaml:"delay"`
	RadiusInner    float32     `json:"radius_inner" yaml:"radius_inner"`
	RadiusOuter    float32     `json:"radius_outer" yaml:"radius_outer"`
	Requires       []string    `json:"requires" yaml:"requires"`
	Flags          uint32      `json:"flags" yaml:"flags"`
	EvalFlags      uint32      `json:"eval_flags" yaml:"eval_flags"`
	AttribMod      []AttribMod `json:"attrib_mod" yaml:"attrib_mod"`
	Effect         []Effects   `json:"effect" yaml:"effect"`
}

// FX names the animation bits and effect files a power or custom theme plays
type FX struct {
	AttackBits        []uint32  `json:"attack_bits" yaml:"attack_bits"`
	BlockBits         []uint32  `json:"block_bits" yaml:"block_bits"`
	WindUpBits        []uint32  `json:"wind_up_bits" yaml:"wind_up_bits"`
	HitBits           []uint32  `json:"hit_bits" yaml:"hit_bits"`
	DeathBits         []uint32  `json:"death_bits" yaml:"death_bits"`
	ActivationBits    []uint32  `json:"activation_bits" yaml:"activation_bits"`
	DeactivationBits  []uint32  `json:"deactivation_bits" yaml:"deactivation_bits"`
	InitialAttackBits []uint32  `json:"initial_attack_bits" yaml:"initial_attack_bits"`
	ContinuingBits    []uint32  `json:"continuing_bits" yaml:"continuing_bits"`
	ConditionalBits   []uint32  `json:"conditional_bits" yaml:"conditional_bits"`
	ActivationFX      string    `json:"activation_fx" yaml:"activation_fx"`
	DeactivationFX    string    `json:"deactivation_fx" yaml:"deactivation_fx"`
	AttackFX          string    `json:"attack_fx" yaml:"attack_fx"`
	SecondaryAttackFX string    `json:"secondary_attack_fx" yaml:"secondary_attack_fx"`
	HitFX             string    `json:"hit_fx" yaml:"hit_fx"`
	WindUpFX          string    `json:"wind_up_fx" yaml:"wind_up_fx"`
	BlockFX           string    `json:"block_fx" yaml:"block_fx"`
	DeathFX           string    `json:"death_fx" yaml:"death_fx"`
	InitialAttackFX   string    `json:"initial_attack_fx" yaml:"initial_attack_fx"`
	ContinuingFX      [5]string `json:"continuing_fx" yaml:"continuing_fx"`
	ConditionalFX     [5]string `json:"conditional_fx" yaml:"conditional_fx"`
	ModeBits          []uint32  `json:"mode_bits" yaml:"mode_bits"`

	FramesBeforeHit           uint32  `json:"frames_before_hit" yaml:"frames_before_hit"`
	FramesBeforeSecondaryHit  uint32  `json:"frames_before_secondary_hit" yaml:"frames_before_secondary_hit"`
	DelayedHit                bool    `json:"delayed_hit" yaml:"delayed_hit"`
	AttackFrames              uint32  `json:"attack_frames" yaml:"attack_frames"`
	InitialFramesBeforeHit    uint32  `json:"initial_frames_before_hit" yaml:"initial_frames_before_hit"`
	InitialAttackFXFrameDelay uint32  `json:"initial_attack_fx_frame_delay" yaml:"initial_attack_fx_frame_delay"`
	ProjectileSpeed           float32 `json:"projectile_speed" yaml:"projectile_speed"`
	SecondaryProjectileSpeed  float32 `json:"secondary_projectile_speed" yaml:"secondary_projectile_speed"`
	InitialFramesBeforeBlock  uint32  `json:"initial_frames_before_block" yaml:"initial_frames_before_block"`
	IgnoreAttackTimeErrors    string  `json:"ignore_attack_time_errors" yaml:"ignore_attack_time_errors"`
	FramesBeforeBlock         uint32  `json:"frames_before_block" yaml:"frames_before_block"`
	FXImportant               bool    `json:"fx_important" yaml:"fx_important"`
	PrimaryTint               RGBA    `json:"primary_tint" yaml:"primary_tint"`
	SecondaryTint             RGBA    `json:"secondary_tint" yaml:"secondary_tint"`
}

// FX is laid out inline wherever it appears.
func (FX) TupleShape() {}

// CustomFx is an alternate visual theme for a power
type CustomFx struct {
	Token       string   `json:"token" yaml:"token"`
	AltTheme    []string `json:"alt_theme" yaml:"alt_theme"`
	SourceFile  string   `json:"source_file" yaml:"source_file"`
	Category    string   `json:"category" yaml:"category"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	FX          FX       `json:"fx" yaml:"fx"`
	Palette     string   `json:"palette" yaml:"palette"`
}

// Power is a single ability: its targeting, timing, requirements, effects and
// visuals
type Power struct {
	FullName                      string          `json:"full_name" yaml:"full_name"`
	CRCFullName                   uint32          `json:"crc_full_name" yaml:"crc_full_name"`
	SourceFile                    string          `json:"source_file" yaml:"source_file"`
	Name                          string          `json:"name" yaml:"name"`
	SourceName                    string          `json:"source_name" yaml:"source_name"`
	System                        uint32          `json:"system" yaml:"system"`
	AutoIssue                     bool            `json:"auto_issue" yaml:"auto_issue"`
	AutoIssueSaveLevel            bool            `json:"auto_issue_save_level" yaml:"auto_issue_save_level"`
	Free                          bool            `json:"free" yaml:"free"`
	DisplayName                   string          `json:"display_name" yaml:"display_name"`
	DisplayHelp                   string          `json:"display_help" yaml:"display_help"`
	DisplayShortHelp              string          `json:"display_short_help" yaml:"display_short_help"`
	DisplayTargetHelp             string          `json:"display_target_help" yaml:"display_target_help"`
	DisplayTargetShortHelp        string          `json:"display_target_short_help" yaml:"display_target_short_help"`
	DisplayAttackerAttack         string          `json:"display_attacker_attack" yaml:"display_attacker_attack"`
	DisplayAttackerAttackFloater  string          `json:"display_attacker_attack_floater" yaml:"display_attacker_attack_floater"`
	DisplayAttackerHit            string          `json:"display_attacker_hit" yaml:"display_attacker_hit"`
	DisplayVictimHit              string          `json:"display_victim_hit" yaml:"display_victim_hit"`
	DisplayConfirm                string          `json:"display_confirm" yaml:"display_confirm"`
	FloatRewarded                 string          `json:"float_rewarded" yaml:"float_rewarded"`
	DisplayPowerDefenseFloat      string          `json:"display_power_defense_float" yaml:"display_power_defense_float"`
	IconName                      string          `json:"icon_name" yaml:"icon_name"`
	Type                          uint32          `json:"type" yaml:"type"`
	NumAllowed                    uint32          `json:"num_allowed" yaml:"num_allowed"`
	AttackTypes                   []AttackType    `json:"attack_types" yaml:"attack_types"`
	BuyRequires                   []string        `json:"buy_requires" yaml:"buy_requires"`
	ActivateRequires              []string        `json:"activate_requires" yaml:"activate_requires"`
	SlotRequires                  []string        `json:"slot_requires" yaml:"slot_requires"`
	TargetRequires                []string        `json:"target_requires" yaml:"target_requires"`
	RewardRequires                []string        `json:"reward_requires" yaml:"reward_requires"`
	AuctionRequires               []string        `json:"auction_requires" yaml:"auction_requires"`
	RewardFallback                string          `json:"reward_fallback" yaml:"reward_fallback"`
	Accuracy                      float32         `json:"accuracy" yaml:"accuracy"`
	NearGround                    bool            `json:"near_ground" yaml:"near_ground"`
	TargetNearGround              bool            `json:"target_near_ground" yaml:"target_near_ground"`
	CastableAfterDeath            uint32          `json:"castable_after_death" yaml:"castable_after_death"`
	CastThroughHold               bool            `json:"cast_through_hold" yaml:"cast_through_hold"`
	CastThroughSleep              bool            `json:"cast_through_sleep" yaml:"cast_through_sleep"`
	CastThroughStun               bool            `json:"cast_through_stun" yaml:"cast_through_stun"`
	CastThroughTerrorize          bool            `json:"cast_through_terrorize" yaml:"cast_through_terrorize"`
	ToggleIgnoreHold              bool            `json:"toggle_ignore_hold" yaml:"toggle_ignore_hold"`
	ToggleIgnoreSleep             bool            `json:"toggle_ignore_sleep" yaml:"toggle_ignore_sleep"`
	ToggleIgnoreStun              bool            `json:"toggle_ignore_stun" yaml:"toggle_ignore_stun"`
	IgnoreLevelBought             bool            `json:"ignore_level_bought" yaml:"ignore_level_bought"`
	ShootThroughUntouchable       bool            `json:"shoot_through_untouchable" yaml:"shoot_through_untouchable"`
	InterruptLikeSleep            bool            `json:"interrupt_like_sleep" yaml:"interrupt_like_sleep"`
	AIReport                      uint32          `json:"ai_report" yaml:"ai_report"`
	EffectArea                    uint32          `json:"effect_area" yaml:"effect_area"`
	MaxTargetsHit                 uint32          `json:"max_targets_hit" yaml:"max_targets_hit"`
	Unused                        uint32          `json:"-" yaml:"-"` // Always zero
	Radius                        float32         `json:"radius" yaml:"radius"`
	Arc                           float32         `json:"arc" yaml:"arc"`
	ChainDelay                    float32         `json:"chain_delay" yaml:"chain_delay"`
	ChainEff                      []string        `json:"chain_eff" yaml:"chain_eff"`
	ChainFork                     []uint32        `json:"chain_fork" yaml:"chain_fork"`
	BoxOffset                     [3]float32      `json:"box_offset" yaml:"box_offset"`
	BoxSize                       [3]float32      `json:"box_size" yaml:"box_size"`
	Range                         float32         `json:"range" yaml:"range"`
	RangeSecondary                float32         `json:"range_secondary" yaml:"range_secondary"`
	TimeToActivate                float32         `json:"time_to_activate" yaml:"time_to_activate"`
	RechargeTime                  float32         `json:"recharge_time" yaml:"recharge_time"`
	ActivatePeriod                float32         `json:"activate_period" yaml:"activate_period"`
	EnduranceCost                 float32         `json:"endurance_cost" yaml:"endurance_cost"`
	IdeaCost                      float32         `json:"idea_cost" yaml:"idea_cost"`
	TimeToConfirm                 uint32          `json:"time_to_confirm" yaml:"time_to_confirm"`
	SelfConfirm                   uint32          `json:"self_confirm" yaml:"self_confirm"`
	ConfirmRequires               []string        `json:"confirm_requires" yaml:"confirm_requires"`
	DestroyOnLimit                bool            `json:"destroy_on_limit" yaml:"destroy_on_limit"`
	StackingUsage                 bool            `json:"stacking_usage" yaml:"stacking_usage"`
	NumCharges                    uint32          `json:"num_charges" yaml:"num_charges"`
	MaxNumCharges                 uint32          `json:"max_num_charges" yaml:"max_num_charges"`
	UsageTime                     float32         `json:"usage_time" yaml:"usage_time"`
	MaxUsageTime                  float32         `json:"max_usage_time" yaml:"max_usage_time"`
	Lifetime                      float32         `json:"lifetime" yaml:"lifetime"`
	MaxLifetime                   float32         `json:"max_lifetime" yaml:"max_lifetime"`
	LifetimeInGame                float32         `json:"lifetime_in_game" yaml:"lifetime_in_game"`
	MaxLifetimeInGame             float32         `json:"max_lifetime_in_game" yaml:"max_lifetime_in_game"`
	InterruptTime                 float32         `json:"interrupt_time" yaml:"interrupt_time"`
	TargetVisibility              uint32          `json:"target_visibility" yaml:"target_visibility"`
	Target                        uint32          `json:"target" yaml:"target"`
	TargetSecondary               uint32          `json:"target_secondary" yaml:"target_secondary"`
	EntsAutoHit                   []uint32        `json:"ents_auto_hit" yaml:"ents_auto_hit"`
	EntsAffected                  []uint32        `json:"ents_affected" yaml:"ents_affected"`
	TargetsThroughVisionPhase     bool            `json:"targets_through_vision_phase" yaml:"targets_through_vision_phase"`
	BoostsAllowed                 []uint32        `json:"boosts_allowed" yaml:"boosts_allowed"`
	GroupMembership               []uint32        `json:"group_membership" yaml:"group_membership"`
	ModesRequired                 []uint32        `json:"modes_required" yaml:"modes_required"`
	ModesDisallowed               []uint32        `json:"modes_disallowed" yaml:"modes_disallowed"`
	AIGroups                      []string        `json:"ai_groups" yaml:"ai_groups"`
	Redirect                      []PowerRedirect `json:"redirect" yaml:"redirect"`
	Effects                       []Effects       `json:"effects" yaml:"effects"`
	IgnoreStrength                bool            `json:"ignore_strength" yaml:"ignore_strength"`
	ShowBuffIcon                  bool            `json:"show_buff_icon" yaml:"show_buff_icon"`
	ShowInInventory               uint32          `json:"show_in_inventory" yaml:"show_in_inventory"`
	ShowInManage                  bool            `json:"show_in_manage" yaml:"show_in_manage"`
	ShowInInfo                    bool            `json:"show_in_info" yaml:"show_in_info"`
	Deletable                     bool            `json:"deletable" yaml:"deletable"`
	Tradeable                     bool            `json:"tradeable" yaml:"tradeable"`
	MaxBoosts                     uint32          `json:"max_boosts" yaml:"max_boosts"`
	DoNotSave                     bool            `json:"do_not_save" yaml:"do_not_save"`
	BoostIgnoreEffectiveness      bool            `json:"boost_ignore_effectiveness" yaml:"boost_ignore_effectiveness"`
	BoostAlwaysCountForSet        bool            `json:"boost_always_count_for_set" yaml:"boost_always_count_for_set"`
	BoostTradeable                bool            `json:"boost_tradeable" yaml:"boost_tradeable"`
	BoostCombinable               bool            `json:"boost_combinable" yaml:"boost_combinable"`
	BoostAccountBound             bool            `json:"boost_account_bound" yaml:"boost_account_bound"`
	BoostBoostable                bool            `json:"boost_boostable" yaml:"boost_boostable"`
	BoostUsePlayerLevel           bool            `json:"boost_use_player_level" yaml:"boost_use_player_level"`
	BoostCatalystConversion       string          `json:"boost_catalyst_conversion" yaml:"boost_catalyst_conversion"`
	StoreProduct                  string          `json:"store_product" yaml:"store_product"`
	BoostLicenseLevel             uint32          `json:"boost_license_level" yaml:"boost_license_level"`
	MinSlotLevel                  int32           `json:"min_slot_level" yaml:"min_slot_level"`
	MaxSlotLevel                  uint32          `json:"max_slot_level" yaml:"max_slot_level"`
	MaxBoostLevel                 uint32          `json:"max_boost_level" yaml:"max_boost_level"`
	Var                           []Var           `json:"var" yaml:"var"`
	ToggleDroppable               uint32          `json:"toggle_droppable" yaml:"toggle_droppable"`
	ProcAllowed                   uint32          `json:"proc_allowed" yaml:"proc_allowed"`
	StrengthsDisallowed           []uint32        `json:"strengths_disallowed" yaml:"strengths_disallowed"`
	ProcMainTargetOnly            bool            `json:"proc_main_target_only" yaml:"proc_main_target_only"`
	AnimMainTargetOnly            bool            `json:"anim_main_target_only" yaml:"anim_main_target_only"`
	HighlightEval                 []string        `json:"highlight_eval" yaml:"highlight_eval"`
	HighlightIcon                 string          `json:"highlight_icon" yaml:"highlight_icon"`
	HighlightRing                 RGBA            `json:"highlight_ring" yaml:"highlight_ring"`
	TravelSuppression             float32         `json:"travel_suppression" yaml:"travel_suppression"`
	PreferenceMultiplier          float32         `json:"preference_multiplier" yaml:"preference_multiplier"`
	DontSetStance                 bool            `json:"dont_set_stance" yaml:"dont_set_stance"`
	PointValue                    float32         `json:"point_value" yaml:"point_value"`
	PointMultiplier               float32         `json:"point_multiplier" yaml:"point_multiplier"`
	ChainIntoPower                string          `json:"chain_into_power" yaml:"chain_into_power"`
	InstanceLocked                bool            `json:"instance_locked" yaml:"instance_locked"`
	IsEnvironmentHit              bool            `json:"is_environment_hit" yaml:"is_environment_hit"`
	ShuffleTargets                bool            `json:"shuffle_targets" yaml:"shuffle_targets"`
	ForceLevelBought              int32           `json:"force_level_bought" yaml:"force_level_bought"`
	RefreshesOnActivePlayerChange bool            `json:"refreshes_on_active_player_change" yaml:"refreshes_on_active_player_change"`
	Cancelable                    bool            `json:"cancelable" yaml:"cancelable"`
	IgnoreToggleMaxDistance       bool            `json:"ignore_toggle_max_distance" yaml:"ignore_toggle_max_distance"`
	ServerTrayPriority            uint32          `json:"server_tray_priority" yaml:"server_tray_priority"`
	ServerTrayRequires            []string        `json:"server_tray_requires" yaml:"server_tray_requires"`
	AbusiveBuff                   bool            `json:"abusive_buff" yaml:"abusive_buff"`
	PositionCenter                uint32          `json:"position_center" yaml:"position_center"`
	PositionDistance              float32         `json:"position_distance" yaml:"position_distance"`
	PositionHeight                float32         `json:"position_height" yaml:"position_height"`
	PositionYaw                   float32         `json:"position_yaw" yaml:"position_yaw"`
	FaceTarget                    bool            `json:"face_target" yaml:"face_target"`
	AttribCache                   []uint32        `json:"attrib_cache" yaml:"attrib_cache"`
	VisualFX                      string          `json:"visual_fx" yaml:"visual_fx"`
	FX                            FX              `json:"fx" yaml:"fx"`
	CustomFx                      []CustomFx      `json:"custom_fx" yaml:"custom_fx"`
}

// ResolveStrings replaces display-string keys with their text
func (p *Power) ResolveStrings(r Resolver) error {
	return resolveAll(r,
		field{"display_name", &p.DisplayName},
		field{"display_help", &p.DisplayHelp},
		field{"display_short_help", &p.DisplayShortHelp},
	)
}
