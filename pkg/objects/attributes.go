package objects

// DamageTypes is the number of damage, defense and elusivity slots per
// attribute set
const DamageTypes = 20

// CharacterAttributes is one set of per-attribute values
type CharacterAttributes struct {
	DamageType          [DamageTypes]float32 `json:"damage_type" yaml:"damage_type"`
	HitPoints           float32              `json:"hit_points" yaml:"hit_points"`
	Absorb              float32              `json:"absorb" yaml:"absorb"`
	Endurance           float32              `json:"endurance" yaml:"endurance"`
	Insight             float32              `json:"insight" yaml:"insight"`
	Rage                float32              `json:"rage" yaml:"rage"`
	ToHit               float32              `json:"to_hit" yaml:"to_hit"`
	DefenseType         [DamageTypes]float32 `json:"defense_type" yaml:"defense_type"`
	Defense             float32              `json:"defense" yaml:"defense"`
	SpeedRunning        float32              `json:"speed_running" yaml:"speed_running"`
	SpeedFlying         float32              `json:"speed_flying" yaml:"speed_flying"`
	SpeedSwimming       float32              `json:"speed_swimming" yaml:"speed_swimming"`
	SpeedJumping        float32              `json:"speed_jumping" yaml:"speed_jumping"`
	JumpHeight          float32              `json:"jump_height" yaml:"jump_height"`
	MovementControl     float32              `json:"movement_control" yaml:"movement_control"`
	MovementFriction    float32              `json:"movement_friction" yaml:"movement_friction"`
	Stealth             float32              `json:"stealth" yaml:"stealth"`
	StealthRadius       float32              `json:"stealth_radius" yaml:"stealth_radius"`
	StealthRadiusPlayer float32              `json:"stealth_radius_player" yaml:"stealth_radius_player"`
	PerceptionRadius    float32              `json:"perception_radius" yaml:"perception_radius"`
	Regeneration        float32              `json:"regeneration" yaml:"regeneration"`
	Recovery            float32              `json:"recovery" yaml:"recovery"`
	InsightRecovery     float32              `json:"insight_recovery" yaml:"insight_recovery"`
	ThreatLevel         float32              `json:"threat_level" yaml:"threat_level"`
	Taunt               float32              `json:"taunt" yaml:"taunt"`
	Placate             float32              `json:"placate" yaml:"placate"`
	Confused            float32              `json:"confused" yaml:"confused"`
	Afraid              float32              `json:"afraid" yaml:"afraid"`
	Terrorized          float32              `json:"terrorized" yaml:"terrorized"`
	Held                float32              `json:"held" yaml:"held"`
	Immobilized         float32              `json:"immobilized" yaml:"immobilized"`
	Stunned             float32              `json:"stunned" yaml:"stunned"`
	Sleep               float32              `json:"sleep" yaml:"sleep"`
	Fly                 float32              `json:"fly" yaml:"fly"`
	Jumppack            float32              `json:"jumppack" yaml:"jumppack"`
	Teleport            float32              `json:"teleport" yaml:"teleport"`
	Untouchable         float32              `json:"untouchable" yaml:"untouchable"`
	Intangible          float32              `json:"intangible" yaml:"intangible"`
	OnlyAffectsSelf     float32              `json:"only_affects_self" yaml:"only_affects_self"`
	ExperienceGain      float32              `json:"experience_gain" yaml:"experience_gain"`
	InfluenceGain       float32              `json:"influence_gain" yaml:"influence_gain"`
	PrestigeGain        float32              `json:"prestige_gain" yaml:"prestige_gain"`
	NullBool            float32              `json:"null_bool" yaml:"null_bool"`
	Knockup             float32              `json:"knockup" yaml:"knockup"`
	Knockback           float32              `json:"knockback" yaml:"knockback"`
	Repel               float32              `json:"repel" yaml:"repel"`
	Accuracy            float32              `json:"accuracy" yaml:"accuracy"`
	Radius              float32              `json:"radius" yaml:"radius"`
	Arc                 float32              `json:"arc" yaml:"arc"`
	Range               float32              `json:"range" yaml:"range"`
	TimeToActivate      float32              `json:"time_to_activate" yaml:"time_to_activate"`
	RechargeTime        float32              `json:"recharge_time" yaml:"recharge_time"`
	InterruptTime       float32              `json:"interrupt_time" yaml:"interrupt_time"`
	EnduranceDiscount   float32              `json:"endurance_discount" yaml:"endurance_discount"`
	InsightDiscount     float32              `json:"insight_discount" yaml:"insight_discount"`
	Meter               float32              `json:"meter" yaml:"meter"`
	Elusivity           [DamageTypes]float32 `json:"elusivity" yaml:"elusivity"`
	ElusivityBase       float32              `json:"elusivity_base" yaml:"elusivity_base"`
}

// CharacterAttributesTable holds a per-level curve for each attribute. Its
// field order differs from CharacterAttributes.
type CharacterAttributesTable struct {
	DamageType          [DamageTypes][]float32 `json:"damage_type" yaml:"damage_type"`
	HitPoints           []float32              `json:"hit_points" yaml:"hit_points"`
	Endurance           []float32              `json:"endurance" yaml:"endurance"`
	Insight             []float32              `json:"insight" yaml:"insight"`
	Rage                []float32              `json:"rage" yaml:"rage"`
	ToHit               []float32              `json:"to_hit" yaml:"to_hit"`
	DefenseType         [DamageTypes][]float32 `json:"defense_type" yaml:"defense_type"`
	Defense             []float32              `json:"defense" yaml:"defense"`
	SpeedRunning        []float32              `json:"speed_running" yaml:"speed_running"`
	SpeedFlying         []float32              `json:"speed_flying" yaml:"speed_flying"`
	SpeedSwimming       []float32              `json:"speed_swimming" yaml:"speed_swimming"`
	SpeedJumping        []float32              `json:"speed_jumping" yaml:"speed_jumping"`
	JumpHeight          []float32              `json:"jump_height" yaml:"jump_height"`
	MovementControl     []float32              `json:"movement_control" yaml:"movement_control"`
	MovementFriction    []float32              `json:"movement_friction" yaml:"movement_friction"`
	Stealth             []float32              `json:"stealth" yaml:"stealth"`
	StealthRadius       []float32              `json:"stealth_radius" yaml:"stealth_radius"`
	StealthRadiusPlayer []float32              `json:"stealth_radius_player" yaml:"stealth_radius_player"`
	PerceptionRadius    []float32              `json:"perception_radius" yaml:"perception_radius"`
	Regeneration        []float32              `json:"regeneration" yaml:"regeneration"`
	Recovery            []float32              `json:"recovery" yaml:"recovery"`
	InsightRecovery     []float32              `json:"insight_recovery" yaml:"insight_recovery"`
	ThreatLevel         []float32              `json:"threat_level" yaml:"threat_level"`
	Taunt               []float32              `json:"taunt" yaml:"taunt"`
	Placate             []float32              `json:"placate" yaml:"placate"`
	Confused            []float32              `json:"confused" yaml:"confused"`
	Afraid              []float32              `json:"afraid" yaml:"afraid"`
	Terrorized          []float32              `json:"terrorized" yaml:"terrorized"`
	Held                []float32              `json:"held" yaml:"held"`
	Immobilized         []float32              `json:"immobilized" yaml:"immobilized"`
	Stunned             []float32              `json:"stunned" yaml:"stunned"`
	Sleep               []float32              `json:"sleep" yaml:"sleep"`
	Fly                 []float32              `json:"fly" yaml:"fly"`
	Jumppack            []float32              `json:"jumppack" yaml:"jumppack"`
	Teleport            []float32              `json:"teleport" yaml:"teleport"`
	Untouchable         []float32              `json:"untouchable" yaml:"untouchable"`
	Intangible          []float32              `json:"intangible" yaml:"intangible"`
	OnlyAffectsSelf     []float32              `json:"only_affects_self" yaml:"only_affects_self"`
	ExperienceGain      []float32              `json:"experience_gain" yaml:"experience_gain"`
	InfluenceGain       []float32              `json:"influence_gain" yaml:"influence_gain"`
	PrestigeGain        []float32              `json:"prestige_gain" yaml:"prestige_gain"`
	NullBool            []float32              `json:"null_bool" yaml:"null_bool"`
	Knockup             []float32              `json:"knockup" yaml:"knockup"`
	Knockback           []float32              `json:"knockback" yaml:"knockback"`
	Repel               []float32              `json:"repel" yaml:"repel"`
	Accuracy            []float32              `json:"accuracy" yaml:"accuracy"`
	Radius              []float32              `json:"radius" yaml:"radius"`
	Arc                 []float32              `json:"arc" yaml:"arc"`
	Range               []float32              `json:"range" yaml:"range"`
	TimeToActivate      []float32              `json:"time_to_activate" yaml:"time_to_activate"`
	RechargeTime        []float32              `json:"recharge_time" yaml:"recharge_time"`
	InterruptTime       []float32              `json:"interrupt_time" yaml:"interrupt_time"`
	EnduranceDiscount   []float32              `json:"endurance_discount" yaml:"endurance_discount"`
	InsightDiscount     []float32              `json:"insight_discount" yaml:"insight_discount"`
	Meter               []float32              `json:"meter" yaml:"meter"`
	Elusivity           [DamageTypes][]float32 `json:"elusivity" yaml:"elusivity"`
	// Unclear whether this overrides Defense
	DefenseOverride []float32 `json:"defense_override" yaml:"defense_override"`
	Absorb          []float32 `json:"absorb" yaml:"absorb"`
}

// NamedTable is a named per-level curve
type NamedTable struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float32 `json:"values" yaml:"values"`
}
