package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// FailurePrefix starts every message that reports a failed poll.
const FailurePrefix = "Program failure: "

var ErrDelivery = errors.New("message delivery failed")

// Notifier delivers a plain text message to a single destination.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, message string) error
}

// Multi sends every message to the primary channel and then to every mirror.
// Only a primary failure is returned; mirror failures are logged.
type Multi struct {
	primary Notifier
	mirrors []Notifier
}

func NewMulti(primary Notifier, mirrors ...Notifier) *Multi {
	return &Multi{primary: primary, mirrors: mirrors}
}

func (m *Multi) Name() string {
	return "multi"
}

func (m *Multi) Notify(ctx context.Context, message string) error {
	slog.Info("sending message", slog.String("channel", m.primary.Name()))
	primaryErr := m.primary.Notify(ctx, message)
	if primaryErr == nil {
		slog.Info("message sent", slog.String("channel", m.primary.Name()))
	}

	if err := m.notifyMirrors(ctx, message); err != nil {
		slog.Error("mirror delivery failed", slog.String("error", err.Error()))
	}

	return primaryErr
}

func (m *Multi) notifyMirrors(ctx context.Context, message string) error {
	var result *multierror.Error
	for _, ch := range m.mirrors {
		if err := ch.Notify(ctx, message); err != nil {
			result = multierror.Append(result, errors.Wrap(err, ch.Name()))
			continue
		}
		slog.Info("message sent", slog.String("channel", ch.Name()))
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = joinErrors

	return result
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

type Nop struct{}

func (Nop) Name() string                            { return "nop" }
func (Nop) Notify(_ context.Context, _ string) error { return nil }
