package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/store"
)

// MessageDispatch creates direct messages between accounts. It does not check
// that the two accounts are connected; callers that want that rule apply it
// with ConnectionGraph.IsConnected first.
type MessageDispatch struct {
	store *store.Store
	now   func() time.Time
	log   *zap.Logger
}

type DispatchOption func(*MessageDispatch)

// WithClock replaces time.Now as the source of message timestamps.
func WithClock(now func() time.Time) DispatchOption {
	return func(d *MessageDispatch) {
		d.now = now
	}
}

func NewMessageDispatch(st *store.Store, log *zap.Logger, opts ...DispatchOption) *MessageDispatch {
	d := &MessageDispatch{store: st, now: time.Now, log: log}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send stores body as a message from sender to receiver and notifies the
// receiver.
func (d *MessageDispatch) Send(ctx context.Context, senderEmail, body, receiverEmail string) (*models.Message, error) {
	var msg *models.Message
	err := d.store.Transaction(ctx, func(tx *store.Store) error {
		sender, receiver, err := resolvePair(ctx, tx, senderEmail, receiverEmail)
		if err != nil {
			return err
		}
		msg, err = d.send(ctx, tx, sender, receiver, body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// send does the work of Send on an already open transaction.
func (d *MessageDispatch) send(ctx context.Context, tx *store.Store, sender, receiver *models.Account, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, lib.InvalidArgument("Message body cannot be empty")
	}
	if sender.ID == receiver.ID {
		return nil, lib.InvalidArgument("You can't send a message to yourself")
	}

	msg := &models.Message{
		Body:       body,
		Timestamp:  d.now().UTC(),
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
	}
	if err := tx.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := notify(ctx, tx, receiver.ID, models.NotificationTypeMessage, sender.ID, &msg.ID); err != nil {
		return nil, err
	}

	d.log.Debug("message sent",
		zap.Uint("message_id", msg.ID),
		zap.Uint("sender_id", sender.ID),
		zap.Uint("receiver_id", receiver.ID))
	return msg, nil
}
