package battle

import "context"

// Ref carries the opaque ids the progression layer gave us at battle start.
type Ref struct {
	LocationID string `json:"location_id,omitempty"`
	QuestID    string `json:"quest_id,omitempty"`
}

type Result string

const (
	Victory Result = "victory"
	Defeat  Result = "defeat"
)

type Outcome struct {
	SessionID string `json:"session_id"`
	Result    Result `json:"result"`
	Ref
	Turns int `json:"turns"`
}

// Progression is told exactly once how a battle ended.
type Progression interface {
	ReportOutcome(ctx context.Context, o Outcome) error
}

// ProgressionFunc adapts a function to Progression.
type ProgressionFunc func(ctx context.Context, o Outcome) error

func (f ProgressionFunc) ReportOutcome(ctx context.Context, o Outcome) error { return f(ctx, o) }

// Fanout reports to every collaborator and returns the first error.
type Fanout []Progression

func (f Fanout) ReportOutcome(ctx context.Context, o Outcome) error {
	var first error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.ReportOutcome(ctx, o); err != nil && first == nil {
			first = err
		}
	}
	return first
}
