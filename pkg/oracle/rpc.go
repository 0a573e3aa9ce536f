package oracle

import (
	"context"
	"io"
	"log/slog"
	"os/exec"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/pkg/errors"
	"github.com/vito/holey/pkg/ioctx"
)

// JSON-RPC method names served by NewHandler.
const (
	MethodChoose  = "choose"
	MethodFill    = "fill"
	MethodPredict = "predict"
	MethodAsk     = "ask"
)

type ChooseParams struct {
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type FillParams struct {
	Template string `json:"template"`
	Blank    string `json:"blank"`
}

type PredictParams struct {
	Prefix string `json:"prefix"`
}

type AskParams struct {
	Question string `json:"question"`
}

// NewHandler exposes o as JSON-RPC methods.
func NewHandler(o Oracle) handler.Map {
	return handler.Map{
		MethodChoose: handler.New(func(ctx context.Context, p ChooseParams) (int, error) {
			return o.Choose(ctx, p.Description, p.Options)
		}),
		MethodFill: handler.New(func(ctx context.Context, p FillParams) (string, error) {
			return o.Fill(ctx, p.Template, p.Blank)
		}),
		MethodPredict: handler.New(func(ctx context.Context, p PredictParams) (string, error) {
			return o.Predict(ctx, p.Prefix)
		}),
		MethodAsk: handler.New(func(ctx context.Context, p AskParams) (string, error) {
			return o.Ask(ctx, p.Question)
		}),
	}
}

// Serve answers JSON-RPC requests for o, one per line on r, until r is closed.
// w is closed when the server stops if it is an io.WriteCloser.
func Serve(ctx context.Context, o Oracle, r io.Reader, w io.Writer) error {
	wc, ok := w.(io.WriteCloser)
	if !ok {
		wc = nopWriteCloser{w}
	}

	logger := slog.Default()
	srv := jrpc2.NewServer(NewHandler(o), &jrpc2.ServerOptions{
		Logger: func(text string) { logger.DebugContext(ctx, text) },
	})
	srv.Start(channel.Line(r, wc))
	logger.DebugContext(ctx, "oracle server started")
	return srv.Wait()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Client is an Oracle answered by a remote JSON-RPC server.
type Client struct {
	rpc *jrpc2.Client
}

var _ Oracle = (*Client)(nil)

// NewClient wraps a connected JSON-RPC client.
func NewClient(rpc *jrpc2.Client) *Client {
	return &Client{rpc: rpc}
}

func (c *Client) Choose(ctx context.Context, desc string, options []string) (int, error) {
	var choice int
	if err := c.rpc.CallResult(ctx, MethodChoose, ChooseParams{
		Description: desc,
		Options:     options,
	}, &choice); err != nil {
		return 0, err
	}
	return choice, nil
}

func (c *Client) Fill(ctx context.Context, tmpl string, blank string) (string, error) {
	var text string
	if err := c.rpc.CallResult(ctx, MethodFill, FillParams{
		Template: tmpl,
		Blank:    blank,
	}, &text); err != nil {
		return "", err
	}
	return text, nil
}

func (c *Client) Predict(ctx context.Context, prefix string) (string, error) {
	var text string
	if err := c.rpc.CallResult(ctx, MethodPredict, PredictParams{Prefix: prefix}, &text); err != nil {
		return "", err
	}
	return text, nil
}

func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var text string
	if err := c.rpc.CallResult(ctx, MethodAsk, AskParams{Question: question}, &text); err != nil {
		return "", err
	}
	return text, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}

// Process is a Client talking to a subprocess over its stdin and stdout.
type Process struct {
	*Client

	cmd *exec.Cmd
}

// Dial starts argv and speaks line-delimited JSON-RPC with it. The process's
// stderr goes to the stderr carried by ctx.
func Dial(ctx context.Context, argv []string) (*Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("oracle: empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = ioctx.StderrFromContext(ctx)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "oracle: stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "oracle: stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "oracle: start %s", argv[0])
	}

	slog.DebugContext(ctx, "started oracle process", "argv", argv, "pid", cmd.Process.Pid)

	rpc := jrpc2.NewClient(channel.Line(stdout, stdin), nil)
	return &Process{
		Client: NewClient(rpc),
		cmd:    cmd,
	}, nil
}

// Close disconnects from the process and waits for it to exit.
func (p *Process) Close() error {
	closeErr := p.Client.Close()
	if err := p.cmd.Wait(); err != nil {
		return errors.Wrap(err, "oracle: process exited")
	}
	return closeErr
}
