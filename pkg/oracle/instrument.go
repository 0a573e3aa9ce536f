package oracle

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/vito/holey/pkg/oracle")

// Instrument wraps o so every call is logged at debug level and recorded as a
// span. Errors pass through untouched.
func Instrument(o Oracle, logger *slog.Logger) Oracle {
	if logger == nil {
		logger = slog.Default()
	}
	return instrumented{inner: o, logger: logger}
}

type instrumented struct {
	inner  Oracle
	logger *slog.Logger
}

func (i instrumented) Choose(ctx context.Context, desc string, options []string) (choice int, rerr error) {
	ctx, span := tracer.Start(ctx, "oracle.choose", trace.WithAttributes(
		attribute.String("oracle.description", desc),
		attribute.Int("oracle.options", len(options)),
	))
	defer func() { end(span, rerr) }()

	choice, err := i.inner.Choose(ctx, desc, options)
	if err != nil {
		i.logger.DebugContext(ctx, "choose failed", "options", len(options), "error", err)
		return 0, err
	}
	span.SetAttributes(attribute.Int("oracle.choice", choice))
	i.logger.DebugContext(ctx, "chose", "options", len(options), "choice", choice)
	return choice, nil
}

func (i instrumented) Fill(ctx context.Context, tmpl string, blank string) (text string, rerr error) {
	ctx, span := tracer.Start(ctx, "oracle.fill", trace.WithAttributes(
		attribute.String("oracle.template", tmpl),
		attribute.String("oracle.blank", blank),
	))
	defer func() { end(span, rerr) }()

	text, err := i.inner.Fill(ctx, tmpl, blank)
	if err != nil {
		i.logger.DebugContext(ctx, "fill failed", "template", tmpl, "error", err)
		return "", err
	}
	i.logger.DebugContext(ctx, "filled", "template", tmpl, "text", text)
	return text, nil
}

func (i instrumented) Predict(ctx context.Context, prefix string) (text string, rerr error) {
	ctx, span := tracer.Start(ctx, "oracle.predict", trace.WithAttributes(
		attribute.String("oracle.prefix", prefix),
	))
	defer func() { end(span, rerr) }()

	text, err := i.inner.Predict(ctx, prefix)
	if err != nil {
		i.logger.DebugContext(ctx, "predict failed", "prefix", prefix, "error", err)
		return "", err
	}
	i.logger.DebugContext(ctx, "predicted", "prefix", prefix, "text", text)
	return text, nil
}

func (i instrumented) Ask(ctx context.Context, question string) (text string, rerr error) {
	ctx, span := tracer.Start(ctx, "oracle.ask", trace.WithAttributes(
		attribute.String("oracle.question", question),
	))
	defer func() { end(span, rerr) }()

	text, err := i.inner.Ask(ctx, question)
	if err != nil {
		i.logger.DebugContext(ctx, "ask failed", "question", question, "error", err)
		return "", err
	}
	i.logger.DebugContext(ctx, "answered", "question", question, "text", text)
	return text, nil
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
