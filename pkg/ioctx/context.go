// Package ioctx carries standard streams through a context.Context so that
// library code can prompt and print without touching the os package.
package ioctx

import (
	"bufio"
	"context"
	"io"
	"strings"
)

type stdinKey struct{}
type stdoutKey struct{}
type stderrKey struct{}

// WithStdio sets all three streams at once.
func WithStdio(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) context.Context {
	ctx = StdinToContext(ctx, stdin)
	ctx = StdoutToContext(ctx, stdout)
	return StderrToContext(ctx, stderr)
}

// StdinFromContext returns the reader set by StdinToContext, or an empty
// reader. Every caller shares the same buffer, so a line read by one caller is
// never lost to the next.
func StdinFromContext(ctx context.Context) *bufio.Reader {
	reader := ctx.Value(stdinKey{})
	if reader == nil {
		return bufio.NewReader(strings.NewReader(""))
	}

	return reader.(*bufio.Reader)
}

// StdinToContext buffers r once and stores it in ctx.
func StdinToContext(ctx context.Context, r io.Reader) context.Context {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return context.WithValue(ctx, stdinKey{}, br)
}

// StderrFromContext returns the writer set by StderrToContext, or
// io.Discard.
func StderrFromContext(ctx context.Context) io.Writer {
	writer := ctx.Value(stderrKey{})
	if writer == nil {
		writer = io.Discard
	}

	return writer.(io.Writer)
}

func StderrToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey{}, w)
}

// StdoutFromContext returns the writer set by StdoutToContext, or
// io.Discard.
func StdoutFromContext(ctx context.Context) io.Writer {
	writer := ctx.Value(stdoutKey{})
	if writer == nil {
		writer = io.Discard
	}

	return writer.(io.Writer)
}

func StdoutToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}
