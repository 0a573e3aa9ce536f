package oracle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/holey/pkg/oracle"
)

func TestScript(t *testing.T) {
	ctx := context.Background()
	options := []string{"a", "b", "c"}

	script := oracle.NewScript(oracle.ScriptConfig{
		Choices:     []int{2, 0},
		Fills:       []string{"114514"},
		Predictions: []string{"1919810"},
		Answers:     []string{"yes"},
	})

	choice, err := script.Choose(ctx, "", options)
	require.NoError(t, err)
	assert.Equal(t, 2, choice)

	assert.Equal(t, oracle.ScriptConfig{
		Choices:     []int{0},
		Fills:       []string{"114514"},
		Predictions: []string{"1919810"},
		Answers:     []string{"yes"},
	}, script.Remaining())

	choice, err = script.Choose(ctx, "", options)
	require.NoError(t, err)
	assert.Equal(t, 0, choice)

	text, err := script.Fill(ctx, `"___"`, "result: String")
	require.NoError(t, err)
	assert.Equal(t, "114514", text)

	text, err = script.Predict(ctx, "114514")
	require.NoError(t, err)
	assert.Equal(t, "1919810", text)

	text, err = script.Ask(ctx, "ok?")
	require.NoError(t, err)
	assert.Equal(t, "yes", text)

	t.Run("exhausted", func(t *testing.T) {
		_, err := script.Choose(ctx, "", options)
		require.ErrorIs(t, err, oracle.ErrScriptExhausted)
		assert.ErrorContains(t, err, "choose #3")

		_, err = script.Fill(ctx, "", "")
		require.ErrorIs(t, err, oracle.ErrScriptExhausted)

		_, err = script.Predict(ctx, "")
		require.ErrorIs(t, err, oracle.ErrScriptExhausted)

		_, err = script.Ask(ctx, "")
		require.ErrorIs(t, err, oracle.ErrScriptExhausted)
	})

	t.Run("out of range choice", func(t *testing.T) {
		script := oracle.NewScript(oracle.ScriptConfig{Choices: []int{3}})
		_, err := script.Choose(ctx, "", options)
		require.Error(t, err)
		assert.NotErrorIs(t, err, oracle.ErrScriptExhausted)
	})
}

func TestFuncs(t *testing.T) {
	ctx := context.Background()

	var empty oracle.Funcs
	_, err := empty.Choose(ctx, "", nil)
	require.ErrorIs(t, err, oracle.ErrUnsupported)
	_, err = empty.Fill(ctx, "", "")
	require.ErrorIs(t, err, oracle.ErrUnsupported)
	_, err = empty.Predict(ctx, "")
	require.ErrorIs(t, err, oracle.ErrUnsupported)
	_, err = empty.Ask(ctx, "")
	require.ErrorIs(t, err, oracle.ErrUnsupported)

	o := oracle.Funcs{
		PredictFunc: func(_ context.Context, prefix string) (string, error) {
			return prefix + "0", nil
		},
	}
	text, err := o.Predict(ctx, "11451")
	require.NoError(t, err)
	assert.Equal(t, "114510", text)
}
