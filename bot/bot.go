package bot

import (
	"context"
	"log/slog"
	"time"

	"homework-bot/model"
	"homework-bot/notify"
	"homework-bot/practicum"
)

// StatusSource returns homework statuses updated since cursor.
type StatusSource interface {
	Poll(ctx context.Context, cursor int64) (*model.StatusResponse, error)
}

// Bot relays homework review status changes to a notifier.
// All state is in memory and is lost on restart.
type Bot struct {
	source    StatusSource
	notifier  notify.Notifier
	retryTime time.Duration

	cursor      int64
	prevStatus  string
	prevMessage string
}

func New(source StatusSource, notifier notify.Notifier, retryTime time.Duration, startCursor int64) *Bot {
	return &Bot{
		source:    source,
		notifier:  notifier,
		retryTime: retryTime,
		cursor:    startCursor,
	}
}

// Cursor is the from_date the next poll will use. Zero means "now".
func (b *Bot) Cursor() int64 {
	return b.cursor
}

// Run polls once right away and then sleeps retryTime after every poll until
// ctx is done.
func (b *Bot) Run(ctx context.Context) {
	timer := time.NewTimer(b.retryTime)
	defer timer.Stop()

	for {
		_ = b.Tick(ctx)
		timer.Reset(b.retryTime)

		select {
		case <-ctx.Done():
			slog.Info("context cancelled. Bot shutdown...")
			return
		case <-timer.C:
		}
	}
}

// Tick performs a single poll-and-notify iteration. A returned error has
// already been logged and reported.
func (b *Bot) Tick(ctx context.Context) error {
	if err := b.tick(ctx); err != nil {
		b.reportFailure(ctx, err)
		return err
	}

	return nil
}

func (b *Bot) tick(ctx context.Context) error {
	resp, err := b.source.Poll(ctx, b.cursor)
	if err != nil {
		return err
	}

	if len(resp.Homeworks) == 0 {
		slog.Debug("no status updates", slog.Int64("from_date", b.cursor))
		b.cursor = resp.CurrentDate
		return nil
	}

	status, err := practicum.ParseStatus(resp.Homeworks[0])
	if err != nil {
		return err
	}

	if status != b.prevStatus {
		if err := b.notifier.Notify(ctx, status); err != nil {
			return err
		}
		b.prevStatus = status
		slog.Info("status update sent", slog.String("homework", resp.Homeworks[0].Name),
			slog.String("status", resp.Homeworks[0].Status))
	} else {
		slog.Debug("status did not change")
	}

	b.cursor = resp.CurrentDate
	return nil
}

func (b *Bot) reportFailure(ctx context.Context, err error) {
	slog.Error("bot iteration failed", slog.String("error", err.Error()))

	message := notify.FailurePrefix + err.Error()
	if message == b.prevMessage {
		return
	}
	b.prevMessage = message
	if sendErr := b.notifier.Notify(ctx, message); sendErr != nil {
		slog.Error("can't report failure", slog.String("error", sendErr.Error()))
	}
}
