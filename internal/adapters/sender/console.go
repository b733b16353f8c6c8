package sender

import (
	"cmdbot/internal/core/domain"
	"context"
	"fmt"
	"io"
	"sync"
)

// Console writes replies to an io.Writer. It backs the exec subcommand, where there is no chat.
type Console struct {
	out   io.Writer
	mutex sync.Mutex
	sent  int
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) SendMessageReply(_ context.Context, _ *domain.Message, text string) (int, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, err := fmt.Fprintln(c.out, text)
	if err != nil {
		return 0, err
	}

	c.sent++
	return c.sent, nil
}

func (c *Console) SendChatAction(_ context.Context, _ int64, _ domain.Action) {}

func (c *Console) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	_, _ = c.SendMessageReply(ctx, message, "error: "+err.Error())
	return err
}
