package config

// ElementsConfig lists the tile elements and which element each one beats.
type ElementsConfig struct {
	Elements []ElementDef `yaml:"elements"`
}

type ElementDef struct {
	ID    string `yaml:"id"`
	Beats string `yaml:"beats"`
	Note  string `yaml:"note"`
}
