package oracle

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrScriptExhausted is returned when a Script has no answer left for a call.
var ErrScriptExhausted = errors.New("oracle: script exhausted")

// ScriptConfig lists the answers a Script replays, in order, per operation.
type ScriptConfig struct {
	Choices     []int    `toml:"choices,omitempty" yaml:"choices,omitempty" json:"choices,omitempty"`
	Fills       []string `toml:"fills,omitempty" yaml:"fills,omitempty" json:"fills,omitempty"`
	Predictions []string `toml:"predictions,omitempty" yaml:"predictions,omitempty" json:"predictions,omitempty"`
	Answers     []string `toml:"answers,omitempty" yaml:"answers,omitempty" json:"answers,omitempty"`
}

// Script is an Oracle replaying pre-recorded answers.
type Script struct {
	mu          sync.Mutex
	choices     queue[int]
	fills       queue[string]
	predictions queue[string]
	answers     queue[string]
}

var _ Oracle = (*Script)(nil)

// NewScript creates a Script replaying the answers in config.
func NewScript(config ScriptConfig) *Script {
	return &Script{
		choices:     queue[int]{items: config.Choices},
		fills:       queue[string]{items: config.Fills},
		predictions: queue[string]{items: config.Predictions},
		answers:     queue[string]{items: config.Answers},
	}
}

func (s *Script) Choose(ctx context.Context, desc string, options []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	choice, err := s.choices.next("choose")
	if err != nil {
		return 0, err
	}
	if choice < 0 || choice >= len(options) {
		return 0, errors.Errorf("oracle: scripted choice %d out of range for %d options", choice, len(options))
	}
	return choice, nil
}

func (s *Script) Fill(ctx context.Context, tmpl string, blank string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fills.next("fill")
}

func (s *Script) Predict(ctx context.Context, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.predictions.next("predict")
}

func (s *Script) Ask(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.next("ask")
}

// Remaining reports how many answers are left for each operation.
func (s *Script) Remaining() ScriptConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ScriptConfig{
		Choices:     s.choices.rest(),
		Fills:       s.fills.rest(),
		Predictions: s.predictions.rest(),
		Answers:     s.answers.rest(),
	}
}

type queue[T any] struct {
	items []T
	pos   int
}

func (q *queue[T]) next(op string) (T, error) {
	var zero T
	if q.pos >= len(q.items) {
		return zero, errors.Wrapf(ErrScriptExhausted, "%s #%d", op, q.pos+1)
	}
	item := q.items[q.pos]
	q.pos++
	return item, nil
}

func (q *queue[T]) rest() []T {
	return append([]T(nil), q.items[q.pos:]...)
}
