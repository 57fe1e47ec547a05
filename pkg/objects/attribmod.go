package objects

import "github.com/ssargent/cohbin/pkg/shape"

// AttribMod changes one or more attributes of its target
type AttribMod struct {
	Attrib          []uint32            `json:"attrib" yaml:"attrib"`
	Aspect          uint32              `json:"aspect" yaml:"aspect"`
	ApplicationType uint32              `json:"application_type" yaml:"application_type"`
	Type            uint32              `json:"type" yaml:"type"`
	Target          uint32              `json:"target" yaml:"target"`
	TargetInfo      []TargetInfo        `json:"target_info" yaml:"target_info"`
	Table           string              `json:"table" yaml:"table"`
	Scale           float32             `json:"scale" yaml:"scale"`
	Duration        float32             `json:"duration" yaml:"duration"`
	Magnitude       float32             `json:"magnitude" yaml:"magnitude"`
	DurationExpr    []string            `json:"duration_expr" yaml:"duration_expr"`
	MagnitudeExpr   []string            `json:"magnitude_expr" yaml:"magnitude_expr"`
	Delay           float32             `json:"delay" yaml:"delay"`
	Period          float32             `json:"period" yaml:"period"`
	TickChance      float32             `json:"tick_chance" yaml:"tick_chance"`
	DelayedRequires []string            `json:"delayed_requires" yaml:"delayed_requires"`
	CasterStackType uint32              `json:"caster_stack_type" yaml:"caster_stack_type"`
	StackType       uint32              `json:"stack_type" yaml:"stack_type"`
	StackLimit      uint32              `json:"stack_limit" yaml:"stack_limit"`
	StackKey        uint32              `json:"stack_key" yaml:"stack_key"`
	CancelEvents    []uint32            `json:"cancel_events" yaml:"cancel_events"`
	Suppress        []Suppress          `json:"suppress" yaml:"suppress"`
	BoostModAllowed uint32              `json:"boost_mod_allowed" yaml:"boost_mod_allowed"`
	Flags           AttribModFlags      `json:"flags" yaml:"flags"`
	Messages        []AttribModMessages `json:"messages" yaml:"messages"`
	FX              []AttribModFX       `json:"fx" yaml:"fx"`
	Param           AttribModParam      `json:"param" yaml:"param"`
}

// AttribModFlags is a pair of flag words
type AttribModFlags [2]uint32

// TargetInfo selects targets by marker
type TargetInfo struct {
	Marker []string `json:"marker" yaml:"marker"`
	Count  []uint32 `json:"count" yaml:"count"`
}

// Suppress turns a modifier off for a time after an event
type Suppress struct {
	Event   uint32 `json:"event" yaml:"event"`
	Seconds uint32 `json:"seconds" yaml:"seconds"`
	Always  bool   `json:"always" yaml:"always"`
}

// AttribModMessages are floaters and combat log lines
type AttribModMessages struct {
	DisplayAttackerHit        string `json:"display_attacker_hit" yaml:"display_attacker_hit"`
	DisplayVictimHit          string `json:"display_victim_hit" yaml:"display_victim_hit"`
	DisplayFloat              string `json:"display_float" yaml:"display_float"`
	DisplayAttribDefenseFloat string `json:"display_attrib_defense_float" yaml:"display_attrib_defense_float"`
}

// AttribModFX are effects played while the modifier is active
type AttribModFX struct {
	ContinuingBits  []uint32 `json:"continuing_bits" yaml:"continuing_bits"`
	ContinuingFX    string   `json:"continuing_fx" yaml:"continuing_fx"`
	ConditionalBits []uint32 `json:"conditional_bits" yaml:"conditional_bits"`
	ConditionalFX   string   `json:"conditional_fx" yaml:"conditional_fx"`
}

// AttribModParam carries type-specific parameters of a modifier. Value holds
// one of the Param* structs below, or nil for None.
type AttribModParam struct {
	shape.Union
}

// Variants lists the parameter kinds in wire ordinal order
func (AttribModParam) Variants() []shape.Alt {
	return []shape.Alt{
		shape.Unit("None"),
		shape.Payload[ParamCostume]("Costume"),
		shape.Payload[ParamReward]("Reward"),
		shape.Payload[ParamEntCreate]("EntCreate"),
		shape.Payload[ParamPower]("Power"),
		shape.Payload[ParamPhase]("Phase"),
		shape.Payload[ParamTeleport]("Teleport"),
		shape.Payload[ParamBehavior]("Behavior"),
		shape.Payload[ParamSZEValue]("SZEValue"),
		shape.Payload[ParamToken]("Token"),
		shape.Payload[ParamEffectFilter]("EffectFilter"),
	}
}

type ParamCostume struct {
	Costume  string `json:"costume" yaml:"costume"`
	Priority uint32 `json:"priority" yaml:"priority"`
}

type ParamReward struct {
	Reward []string `json:"reward" yaml:"reward"`
}

type ParamEntCreate struct {
	EntityDef     string   `json:"entity_def" yaml:"entity_def"`
	Class         string   `json:"class" yaml:"class"`
	Costume       string   `json:"costume" yaml:"costume"`
	DisplayName   string   `json:"display_name" yaml:"display_name"`
	PriorityList  string   `json:"priority_list" yaml:"priority_list"`
	AIConfig      string   `json:"ai_config" yaml:"ai_config"`
	PowerCategory []string `json:"power_category" yaml:"power_category"`
	Powerset      []string `json:"powerset" yaml:"powerset"`
	Power         []string `json:"power" yaml:"power"`
	Unknown1      uint32   `json:"unknown1" yaml:"unknown1"`
}

type ParamPower struct {
	PowerCategory []string `json:"power_category" yaml:"power_category"`
	Powerset      []string `json:"powerset" yaml:"powerset"`
	Power         []string `json:"power" yaml:"power"`
	Count         uint32   `json:"count" yaml:"count"`
}

type ParamPhase struct {
	Unknown1 []uint32 `json:"unknown1" yaml:"unknown1"`
	Unknown2 []uint32 `json:"unknown2" yaml:"unknown2"`
	Unknown3 uint32   `json:"unknown3" yaml:"unknown3"`
}

type ParamTeleport struct {
	Destination string `json:"destination" yaml:"destination"`
}

type ParamBehavior struct {
	Behavior []string `json:"behavior" yaml:"behavior"`
}

type ParamSZEValue struct {
	ScriptID    []string `json:"script_id" yaml:"script_id"`
	ScriptValue []string `json:"script_value" yaml:"script_value"`
}

type ParamToken struct {
	Token []string `json:"token" yaml:"token"`
}

type ParamEffectFilter struct {
	PowerCategory []string `json:"power_category" yaml:"power_category"`
	Powerset      []string `json:"powerset" yaml:"powerset"`
	Power         []string `json:"power" yaml:"power"`
	Tag           []string `json:"tag" yaml:"tag"`
}
