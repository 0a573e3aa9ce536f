package oracle_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/holey/pkg/oracle"
)

func scripted() *oracle.Script {
	return oracle.NewScript(oracle.ScriptConfig{
		Choices:     []int{1},
		Fills:       []string{"114514"},
		Predictions: []string{"1919810"},
		Answers:     []string{"yes"},
	})
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	local := server.NewLocal(oracle.NewHandler(scripted()), nil)
	defer local.Close()

	client := oracle.NewClient(local.Client)

	choice, err := client.Choose(ctx, "desc", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, choice)

	text, err := client.Fill(ctx, `predict("___")`, "prefix: String")
	require.NoError(t, err)
	assert.Equal(t, "114514", text)

	text, err = client.Predict(ctx, "114514")
	require.NoError(t, err)
	assert.Equal(t, "1919810", text)

	text, err = client.Ask(ctx, "ok?")
	require.NoError(t, err)
	assert.Equal(t, "yes", text)

	t.Run("remote errors", func(t *testing.T) {
		_, err := client.Predict(ctx, "again")
		require.Error(t, err)
		assert.ErrorContains(t, err, "script exhausted")
	})
}

func TestServe(t *testing.T) {
	ctx := context.Background()

	serverIn, clientOut := io.Pipe()
	clientIn, serverOut := io.Pipe()

	done := make(chan error, 1)
	go func() {
		done <- oracle.Serve(ctx, scripted(), serverIn, serverOut)
	}()

	client := oracle.NewClient(jrpc2.NewClient(channel.Line(clientIn, clientOut), nil))

	choice, err := client.Choose(ctx, "desc", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, choice)

	text, err := client.Predict(ctx, "114514")
	require.NoError(t, err)
	assert.Equal(t, "1919810", text)

	require.NoError(t, client.Close())

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop after the client hung up")
	}
}

func TestDialEmpty(t *testing.T) {
	_, err := oracle.Dial(context.Background(), nil)
	require.Error(t, err)
}
