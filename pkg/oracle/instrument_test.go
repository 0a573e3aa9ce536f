package oracle_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/holey/pkg/oracle"
)

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	o := oracle.Instrument(oracle.Funcs{
		ChooseFunc: func(context.Context, string, []string) (int, error) {
			return 1, nil
		},
		FillFunc: func(context.Context, string, string) (string, error) {
			return "114514", nil
		},
		PredictFunc: func(context.Context, string) (string, error) {
			return "", boom
		},
	}, logger)

	choice, err := o.Choose(ctx, "desc", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, choice)

	text, err := o.Fill(ctx, `"___"`, "result: String")
	require.NoError(t, err)
	assert.Equal(t, "114514", text)

	_, err = o.Predict(ctx, "prefix")
	assert.Equal(t, boom, err)

	_, err = o.Ask(ctx, "question")
	assert.Equal(t, oracle.ErrUnsupported, err)

	out := logs.String()
	assert.Contains(t, out, "msg=chose")
	assert.Contains(t, out, "choice=1")
	assert.Contains(t, out, "msg=filled")
	assert.Contains(t, out, `msg="predict failed"`)
	assert.Contains(t, out, `msg="ask failed"`)
}
