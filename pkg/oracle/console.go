package oracle

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vito/holey/pkg/ioctx"
)

// Console answers Ask by prompting on the stderr carried by the context and
// reading a line from its stdin. Every other call goes to Oracle.
//
// Asks are serialized so concurrent callers never interleave prompts.
type Console struct {
	Oracle

	mu sync.Mutex
}

var _ Oracle = (*Console)(nil)

func (c *Console) Ask(ctx context.Context, question string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintf(ioctx.StderrFromContext(ctx), "%s\n> ", question)

	line, err := ioctx.StdinFromContext(ctx).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "oracle: reading answer")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
