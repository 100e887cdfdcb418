package config

type SkillsConfig struct {
	Skills []Skill `yaml:"skills"`
}

type Skill struct {
	ID    string  `yaml:"id"`
	Kind  string  `yaml:"kind"`
	Value float64 `yaml:"value"`
	Turns int     `yaml:"turns"`
	Note  string  `yaml:"note"`
}
