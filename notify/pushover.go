package notify

import (
	"context"
	"fmt"

	"github.com/gregdel/pushover"
	"github.com/pkg/errors"
)

const pushoverAPISuccessStatus = 1

// Pushover mirrors messages to a Pushover.net user.
type Pushover struct {
	p        *pushover.Pushover
	receiver string
	title    string
}

func NewPushover(apiToken, userKey string) *Pushover {
	return &Pushover{
		p:        pushover.New(apiToken),
		receiver: userKey,
		title:    "Homework review",
	}
}

func (s *Pushover) Name() string {
	return "pushover"
}

func (s *Pushover) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(ErrDelivery, "pushover: %v", err)
	}

	resp, err := s.p.SendMessage(pushover.NewMessageWithTitle(message, s.title), pushover.NewRecipient(s.receiver))
	if err != nil {
		return errors.Wrapf(ErrDelivery, "pushover: %v", err)
	}
	if resp.Status != pushoverAPISuccessStatus {
		return errors.Wrap(ErrDelivery, fmt.Sprintf("pushover: request %s, status: %v, errors: %v",
			resp.ID, resp.Status, resp.Errors))
	}

	return nil
}
