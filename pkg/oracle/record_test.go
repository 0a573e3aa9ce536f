package oracle_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/holey/pkg/oracle"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()

	rec := oracle.Record(oracle.NewScript(oracle.ScriptConfig{
		Choices:     []int{0, 1},
		Fills:       []string{"114514"},
		Predictions: []string{"1919810"},
	}))

	_, err := rec.Choose(ctx, "", []string{"a", "b"})
	require.NoError(t, err)
	_, err = rec.Choose(ctx, "", []string{"a", "b"})
	require.NoError(t, err)
	_, err = rec.Fill(ctx, `"___"`, "result: String")
	require.NoError(t, err)
	_, err = rec.Predict(ctx, "114514")
	require.NoError(t, err)

	_, err = rec.Ask(ctx, "unscripted")
	require.ErrorIs(t, err, oracle.ErrScriptExhausted)

	recorded := rec.Script()
	assert.Equal(t, oracle.ScriptConfig{
		Choices:     []int{0, 1},
		Fills:       []string{"114514"},
		Predictions: []string{"1919810"},
	}, recorded)

	t.Run("replays", func(t *testing.T) {
		replay := oracle.NewScript(recorded)
		choice, err := replay.Choose(ctx, "", []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, 0, choice)
	})

	t.Run("errors are not recorded", func(t *testing.T) {
		boom := errors.New("boom")
		rec := oracle.Record(oracle.Funcs{
			ChooseFunc: func(context.Context, string, []string) (int, error) {
				return 0, boom
			},
		})
		_, err := rec.Choose(ctx, "", []string{"a"})
		assert.Equal(t, boom, err)
		assert.Empty(t, rec.Script().Choices)
	})
}

func TestWriteScript(t *testing.T) {
	config := oracle.ScriptConfig{
		Choices: []int{0, 1},
		Fills:   []string{"114514"},
		Answers: []string{"yes"},
	}

	for _, name := range []string{"script.toml", "script.yaml", "script.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, oracle.WriteScript(config, path))

			read, err := oracle.ReadScript(path)
			require.NoError(t, err)
			assert.Equal(t, config, read)
		})
	}

	t.Run("unsupported extension", func(t *testing.T) {
		err := oracle.WriteScript(config, filepath.Join(t.TempDir(), "script.json"))
		require.Error(t, err)
	})
}
