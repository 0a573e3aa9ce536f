package holey

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/holey/pkg/hm"
	"github.com/vito/holey/pkg/oracle"
)

func TestLoadProblem(t *testing.T) {
	fromTOML, err := LoadProblem(filepath.Join("testdata", "predict.toml"))
	require.NoError(t, err)

	assert.Equal(t, "predict what comes after 114514", fromTOML.Description)
	assert.Equal(t, &oracle.ScriptConfig{
		Choices:     []int{0, 1},
		Fills:       []string{"114514"},
		Predictions: []string{"1919810"},
	}, fromTOML.Oracle)

	goal, err := fromTOML.Goal.Param()
	require.NoError(t, err)
	assert.Equal(t, hm.NewParam("result", hm.String, "final answer"), goal)

	ctx, err := fromTOML.TypingContext()
	require.NoError(t, err)
	predict, found := ctx.Lookup("predict")
	require.True(t, found)
	assert.Equal(t, "predict: (prefix: String) -> String /* continue the given text */", predict.String())

	t.Run("yaml decodes the same problem", func(t *testing.T) {
		fromYAML, err := LoadProblem(filepath.Join("testdata", "predict.yaml"))
		require.NoError(t, err)
		assert.Equal(t, fromTOML, fromYAML)
	})
}

func TestLoadProblemErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		file    string
		content string
	}{
		"unsupported extension": {
			file:    "problem.json",
			content: `{}`,
		},
		"malformed toml": {
			file:    "problem.toml",
			content: `goal = {`,
		},
		"goal without name": {
			file:    "problem.toml",
			content: `goal = { type = { exact = "String" } }`,
		},
		"goal without type": {
			file:    "problem.toml",
			content: `goal = { name = "result" }`,
		},
		"returns without params": {
			file: "problem.yaml",
			content: `goal:
  name: result
  type:
    returns: {exact: String}
`,
		},
		"exact with params": {
			file: "problem.yaml",
			content: `goal:
  name: result
  type:
    exact: String
    params: [{name: x, type: {exact: String}}]
    returns: {exact: String}
`,
		},
		"function without return": {
			file: "problem.yaml",
			content: `goal:
  name: f
  type:
    params: [{name: x, type: {exact: String}}]
`,
		},
		"unknown yaml field": {
			file: "problem.yaml",
			content: `goal: {name: result, type: {exact: String}}
extra: true
`,
		},
		"bad context entry": {
			file: "problem.toml",
			content: `goal = { name = "result", type = { exact = "String" } }

[[context]]
name = "predict"
`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			_, err := LoadProblem(path)
			require.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProblem(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
	})
}

func TestFindProblem(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "predict.toml"))
	require.NoError(t, err)

	t.Run("walks up to the problem file", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ProblemFile), content, 0o644))

		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		path, problem, err := FindProblem(nested)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ProblemFile), path)
		require.NotNil(t, problem)
		assert.Equal(t, "predict what comes after 114514", problem.Description)
	})

	t.Run("stops at the repository boundary", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ProblemFile), content, 0o644))

		repo := filepath.Join(root, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

		path, problem, err := FindProblem(repo)
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Nil(t, problem)
	})

	t.Run("reports unreadable directories", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		path, problem, err := FindProblem(file)
		require.Error(t, err)
		assert.NotErrorIs(t, err, fs.ErrNotExist)
		assert.Empty(t, path)
		assert.Nil(t, problem)
	})
}

func TestProblemSynthesis(t *testing.T) {
	ctx := context.Background()

	problem, err := LoadProblem(filepath.Join("testdata", "predict.toml"))
	require.NoError(t, err)

	term, root, err := problem.Start()
	require.NoError(t, err)
	assert.Equal(t, "<result: String /* final answer */>", term.String())
	assert.Equal(t, []string{"predict"}, root.Env.Names())

	script := oracle.NewScript(*problem.Oracle)
	s := &Synthesizer{Oracle: script, MaxSteps: 10}
	term, err = s.Complete(ctx, problem.Description, term, root)
	require.NoError(t, err)
	assert.Equal(t, `predict("114514")`, term.String())

	val, err := Evaluate(ctx, term, root.Env)
	require.NoError(t, err)
	out, err := Run(ctx, script, val)
	require.NoError(t, err)
	assert.Equal(t, "1919810", out)
}
