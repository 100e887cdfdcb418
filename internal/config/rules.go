package config

type RulesConfig struct {
	GridSize        int     `yaml:"grid_size"`
	TurnTimeoutMS   int     `yaml:"turn_timeout_ms"`
	SPPerGroup      int     `yaml:"sp_per_group"`
	MaxSP           int     `yaml:"max_sp"`
	ComboStep       float64 `yaml:"combo_step"`
	EnemyRollBase   float64 `yaml:"enemy_roll_base"`
	EnemyRollSpread float64 `yaml:"enemy_roll_spread"`
}

// DefaultRules are used for any field a rules file leaves at zero.
func DefaultRules() RulesConfig {
	return RulesConfig{
		GridSize:        6,
		TurnTimeoutMS:   5000,
		SPPerGroup:      3,
		MaxSP:           10,
		ComboStep:       0.5,
		EnemyRollBase:   0.9,
		EnemyRollSpread: 0.4,
	}
}

func (rc RulesConfig) WithDefaults() RulesConfig {
	d := DefaultRules()
	if rc.GridSize <= 0 {
		rc.GridSize = d.GridSize
	}
	if rc.TurnTimeoutMS <= 0 {
		rc.TurnTimeoutMS = d.TurnTimeoutMS
	}
	if rc.SPPerGroup <= 0 {
		rc.SPPerGroup = d.SPPerGroup
	}
	if rc.MaxSP <= 0 {
		rc.MaxSP = d.MaxSP
	}
	if rc.ComboStep <= 0 {
		rc.ComboStep = d.ComboStep
	}
	if rc.EnemyRollBase <= 0 {
		rc.EnemyRollBase = d.EnemyRollBase
	}
	if rc.EnemyRollSpread <= 0 {
		rc.EnemyRollSpread = d.EnemyRollSpread
	}
	return rc
}
