package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"match3battle/internal/battle"
	"match3battle/internal/config"
)

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownQuest    = errors.New("unknown quest")
	ErrLocked          = errors.New("location is locked")
)

type Quest struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	EnemyID          string `json:"enemy_id"`
	UnlockLocationID string `json:"unlock_location_id,omitempty"`
	Completed        bool   `json:"completed"`
}

type Location struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon,omitempty"`
	Unlocked bool    `json:"unlocked"`
	Quests   []Quest `json:"quests"`
}

// Tracker keeps quest completion and location unlocks in memory. It receives
// battle outcomes as a battle.Progression.
type Tracker struct {
	mu        sync.RWMutex
	world     *config.WorldConfig
	unlocked  map[string]bool
	completed map[string]bool
	logger    *slog.Logger
}

func NewTracker(wc *config.WorldConfig, logger *slog.Logger) *Tracker {
	if wc == nil {
		wc = &config.WorldConfig{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		world:     wc,
		unlocked:  map[string]bool{},
		completed: map[string]bool{},
		logger:    logger.With("component", "world"),
	}
	for _, l := range wc.Locations {
		if l.Unlocked {
			t.unlocked[l.ID] = true
		}
	}
	return t
}

func questKey(locationID, questID string) string { return locationID + "/" + questID }

func (t *Tracker) view(l config.LocationDef) Location {
	out := Location{ID: l.ID, Name: l.Name, Icon: l.Icon, Unlocked: t.unlocked[l.ID]}
	for _, q := range l.Quests {
		out.Quests = append(out.Quests, t.quest(l.ID, q))
	}
	return out
}

func (t *Tracker) quest(locationID string, q config.QuestDef) Quest {
	return Quest{
		ID:               q.ID,
		Name:             q.Name,
		Description:      q.Description,
		EnemyID:          q.EnemyID,
		UnlockLocationID: q.UnlockLocationID,
		Completed:        t.completed[questKey(locationID, q.ID)],
	}
}

// Locations lists every location in catalog order.
func (t *Tracker) Locations() []Location {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Location, 0, len(t.world.Locations))
	for _, l := range t.world.Locations {
		out = append(out, t.view(l))
	}
	return out
}

func (t *Tracker) Location(id string) (Location, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	l, ok := t.world.FindLocation(id)
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, id)
	}
	return t.view(l), nil
}

func (t *Tracker) Quest(locationID, questID string) (Quest, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lookup(locationID, questID)
}

func (t *Tracker) lookup(locationID, questID string) (Quest, error) {
	if _, ok := t.world.FindLocation(locationID); !ok {
		return Quest{}, fmt.Errorf("%w: %q", ErrUnknownLocation, locationID)
	}
	q, ok := t.world.FindQuest(locationID, questID)
	if !ok {
		return Quest{}, fmt.Errorf("%w: %s/%s", ErrUnknownQuest, locationID, questID)
	}
	return t.quest(locationID, q), nil
}

// CanStart reports whether a quest may be fought: it exists and its location is unlocked.
func (t *Tracker) CanStart(locationID, questID string) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, err := t.lookup(locationID, questID); err != nil {
		return err
	}
	if !t.unlocked[locationID] {
		return fmt.Errorf("%w: %q", ErrLocked, locationID)
	}
	return nil
}

// CompleteQuest marks a quest done and unlocks the location it leads to. The
// returned location is set only when this call unlocked it.
func (t *Tracker) CompleteQuest(locationID, questID string) (Quest, *Location, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	q, err := t.lookup(locationID, questID)
	if err != nil {
		return Quest{}, nil, err
	}
	t.completed[questKey(locationID, questID)] = true
	q.Completed = true

	var unlocked *Location
	if id := q.UnlockLocationID; id != "" && !t.unlocked[id] {
		if l, ok := t.world.FindLocation(id); ok {
			t.unlocked[id] = true
			v := t.view(l)
			unlocked = &v
			t.logger.Info("location unlocked", "location", id, "by", questKey(locationID, questID))
		}
	}
	return q, unlocked, nil
}

// ReportOutcome completes the quest on victory. Defeats change nothing.
func (t *Tracker) ReportOutcome(_ context.Context, o battle.Outcome) error {
	if o.Result != battle.Victory || o.QuestID == "" {
		t.logger.Debug("outcome ignored", "result", o.Result, "quest", o.QuestID)
		return nil
	}
	_, _, err := t.CompleteQuest(o.LocationID, o.QuestID)
	return err
}
