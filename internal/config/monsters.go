package config

// MonstersConfig lists every monster and which of them form the player's team.
type MonstersConfig struct {
	Team     []string     `yaml:"team"`
	Monsters []MonsterDef `yaml:"monsters"`
}

type MonsterDef struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Element string `yaml:"element"`
	HP      int    `yaml:"hp"`
	Attack  int    `yaml:"attack"`
	Img     string `yaml:"img"`
	Skill   string `yaml:"skill"`
	MaxSP   int    `yaml:"max_sp"`
	Note    string `yaml:"note"`
}

func (mc *MonstersConfig) Find(id string) (MonsterDef, bool) {
	if mc == nil {
		return MonsterDef{}, false
	}
	for _, m := range mc.Monsters {
		if m.ID == id {
			return m, true
		}
	}
	return MonsterDef{}, false
}

// TeamDefs resolves the team ids in order, skipping unknown ones.
func (mc *MonstersConfig) TeamDefs() []MonsterDef {
	var out []MonsterDef
	for _, id := range mc.Team {
		if m, ok := mc.Find(id); ok {
			out = append(out, m)
		}
	}
	return out
}
