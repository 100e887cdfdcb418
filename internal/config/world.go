package config

type WorldConfig struct {
	Locations []LocationDef `yaml:"locations"`
}

type LocationDef struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Unlocked bool       `yaml:"unlocked"`
	Icon     string     `yaml:"icon"`
	Quests   []QuestDef `yaml:"quests"`
}

type QuestDef struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	EnemyID          string `yaml:"enemy_id"`
	UnlockLocationID string `yaml:"unlock_location_id"`
}

func (wc *WorldConfig) FindLocation(id string) (LocationDef, bool) {
	if wc == nil {
		return LocationDef{}, false
	}
	for _, l := range wc.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return LocationDef{}, false
}

// FindQuest looks a quest up within its location.
func (wc *WorldConfig) FindQuest(locationID, questID string) (QuestDef, bool) {
	loc, ok := wc.FindLocation(locationID)
	if !ok {
		return QuestDef{}, false
	}
	for _, q := range loc.Quests {
		if q.ID == questID {
			return q, true
		}
	}
	return QuestDef{}, false
}
