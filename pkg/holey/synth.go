package holey

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/vito/holey/pkg/oracle"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/vito/holey/pkg/holey")

// Synthesizer fills holes one at a time by asking an oracle to pick among
// typed candidates.
type Synthesizer struct {
	Oracle oracle.Chooser

	// MaxSteps bounds the number of holes resolved by a single run. Zero
	// means no bound, in which case termination is up to the oracle.
	MaxSteps int

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Complete synthesizes every hole of term, where root is the Position of term
// itself. A term with no holes is returned as-is.
func (s *Synthesizer) Complete(ctx context.Context, description string, term Term, root Position) (Term, error) {
	hole, found := FirstHole(term, root)
	if !found {
		return term, nil
	}
	return s.Synthesize(ctx, description, hole, root)
}

// Synthesize resolves hole and every hole after it until the term is
// complete.
//
// After each step the next hole is located from root against the rebuilt
// term, so positions never refer to a stale copy of the program.
func (s *Synthesizer) Synthesize(ctx context.Context, description string, hole HoleAt, root Position) (_ Term, rerr error) {
	runID := uuid.NewString()
	logger := s.logger().With("run", runID)

	ctx, span := tracer.Start(ctx, "synthesize", trace.WithAttributes(
		attribute.String("holey.run", runID),
		attribute.String("holey.description", description),
	))
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	for step := 1; ; step++ {
		if s.MaxSteps > 0 && step > s.MaxSteps {
			return nil, &ExhaustedError{
				Steps: s.MaxSteps,
				Term:  hole.Rebuild(Hole{Param: hole.Param}),
			}
		}

		term, err := s.resolve(ctx, logger, description, hole)
		if err != nil {
			return nil, err
		}

		next, found := FirstHole(term, root)
		if !found {
			logger.DebugContext(ctx, "synthesis complete", "steps", step, "term", term)
			span.SetAttributes(attribute.Int("holey.steps", step))
			return term, nil
		}
		hole = next
	}
}

// resolve fills a single hole, returning the rebuilt whole term.
func (s *Synthesizer) resolve(ctx context.Context, logger *slog.Logger, description string, hole HoleAt) (_ Term, rerr error) {
	ctx, span := tracer.Start(ctx, "resolve "+hole.String())
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	candidates := Candidates(hole.Context, hole.Param.Type)
	if len(candidates) == 0 {
		return nil, &UnsynthesizableHoleError{Hole: hole.Param}
	}

	previews := lo.Map(candidates, func(c Term, _ int) string {
		return hole.Rebuild(c).String()
	})

	logger.DebugContext(ctx, "choosing", "hole", hole, "candidates", len(candidates))

	choice, err := s.Oracle.Choose(ctx, description, previews)
	if err != nil {
		return nil, err
	}
	if choice < 0 || choice >= len(candidates) {
		return nil, &InvalidChoiceError{
			Hole:    hole.Param,
			Index:   choice,
			Options: len(candidates),
		}
	}

	chosen := candidates[choice]
	if lit, ok := chosen.(Lit); ok && lit.IsBlank() {
		text, err := s.Oracle.Fill(ctx, previews[choice], hole.Param.String())
		if err != nil {
			return nil, err
		}
		chosen = Lit{Text: text}
	}

	logger.DebugContext(ctx, "resolved", "hole", hole, "term", chosen)

	return hole.Rebuild(chosen), nil
}

func (s *Synthesizer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
