package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"homework-bot/model"
	"homework-bot/practicum"
)

const (
	EmojiTada        = "🎉"
	EmojiLoudspeaker = "🔊"
	EmojiWarning     = "⚠️"
)

// Ntfy mirrors messages to an ntfy.sh compatible server.
type Ntfy struct {
	server string
	topic  string
	client *http.Client
}

func NewNtfy(server, topic string, client *http.Client) *Ntfy {
	if client == nil {
		client = &http.Client{}
	}
	return &Ntfy{
		server: strings.TrimRight(server, "/"),
		topic:  topic,
		client: client,
	}
}

func (n *Ntfy) Name() string {
	return "ntfy"
}

func (n *Ntfy) Notify(ctx context.Context, message string) error {
	return n.Send(ctx, notificationFor(n.topic, message))
}

// notificationFor picks a title and priority from the message content.
func notificationFor(topic, message string) *model.Notification {
	ntf := &model.Notification{
		Topic:   topic,
		Title:   EmojiLoudspeaker + " Homework review",
		Message: message,
	}
	switch {
	case strings.HasPrefix(message, FailurePrefix):
		ntf.Title = EmojiWarning + " Homework bot failure"
		ntf.Tags = []string{"warning"}
		ntf.Priority = 4
	case strings.HasSuffix(message, practicum.HomeworkVerdicts[practicum.StatusApproved]):
		ntf.Title = EmojiTada + " Homework approved"
		ntf.Tags = []string{"tada"}
	}

	return ntf
}

func (n *Ntfy) Send(ctx context.Context, ntf *model.Notification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.server+"/"+ntf.Topic, strings.NewReader(ntf.Message))
	if err != nil {
		return errors.Wrapf(ErrDelivery, "can't create request to NTFY: %v", err)
	}

	req.Header.Set("Content-Type", "text/plain")
	if ntf.Title != "" {
		req.Header.Set("Title", ntf.Title)
	}
	if len(ntf.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(ntf.Tags, ","))
	}
	if ntf.Priority != 0 {
		req.Header.Set("Priority", strconv.Itoa(ntf.Priority))
	} else {
		req.Header.Set("Priority", "3")
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.Wrapf(ErrDelivery, "can't send request to NTFY: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return errors.Wrapf(ErrDelivery, "NTFY error response: %s: %s", resp.Status, string(bodyBytes))
	}

	slog.Debug("notification sent to NTFY", slog.String("topic", ntf.Topic))
	return nil
}
