package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog is everything read from an assets directory.
type Catalog struct {
	Elements *ElementsConfig
	Monsters *MonstersConfig
	Skills   *SkillsConfig
	World    *WorldConfig
	Rules    RulesConfig
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadAll reads monsters, skills and world from dir. elements.yaml and
// rules.yaml are optional; without elements.yaml Elements is nil.
func LoadAll(dir string) (*Catalog, error) {
	var mc MonstersConfig
	var sc SkillsConfig
	var wc WorldConfig
	var rc RulesConfig
	var ec ElementsConfig
	if err := loadYAML(filepath.Join(dir, "monsters.yaml"), &mc); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "skills.yaml"), &sc); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "world.yaml"), &wc); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "rules.yaml"), &rc); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cat := &Catalog{Monsters: &mc, Skills: &sc, World: &wc, Rules: rc.WithDefaults()}
	switch err := loadYAML(filepath.Join(dir, "elements.yaml"), &ec); {
	case err == nil:
		cat.Elements = &ec
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}
