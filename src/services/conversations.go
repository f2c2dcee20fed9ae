package services

import (
	"context"
	"sort"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/store"
)

// ConversationAssembler rebuilds the thread between two accounts from one
// side's sent and received messages.
type ConversationAssembler struct {
	store *store.Store
}

func NewConversationAssembler(st *store.Store) *ConversationAssembler {
	return &ConversationAssembler{store: st}
}

// FindConversation returns the messages exchanged between emailA and emailB,
// oldest first. Messages with equal timestamps keep the order they were
// stored in, so the result is the same whichever side asks.
func (c *ConversationAssembler) FindConversation(ctx context.Context, emailA, emailB string) ([]models.Message, error) {
	if sameEmail(emailA, emailB) {
		return nil, lib.InvalidArgument("A conversation needs two different accounts")
	}

	a, err := c.store.FindAccountWithMessages(ctx, normalizeEmail(emailA))
	if err != nil {
		return nil, err
	}
	b, err := c.store.FindAccountByEmail(ctx, normalizeEmail(emailB))
	if err != nil {
		return nil, err
	}

	return assembleThread(a.OutgoingMessages, a.IncomingMessages, b.ID), nil
}

// assembleThread merges outgoing and incoming into one set keyed by message
// id, keeps the messages that involve counterpartID and orders them by
// timestamp. Store insertion order (ascending id) breaks ties.
func assembleThread(outgoing, incoming []models.Message, counterpartID uint) []models.Message {
	byID := make(map[uint]models.Message, len(outgoing)+len(incoming))
	for _, m := range outgoing {
		byID[m.ID] = m
	}
	for _, m := range incoming {
		byID[m.ID] = m
	}

	thread := make([]models.Message, 0, len(byID))
	for _, m := range byID {
		if m.SenderID == counterpartID || m.ReceiverID == counterpartID {
			thread = append(thread, m)
		}
	}

	sort.Slice(thread, func(i, j int) bool { return thread[i].ID < thread[j].ID })
	sort.SliceStable(thread, func(i, j int) bool { return thread[i].Timestamp.Before(thread[j].Timestamp) })
	return thread
}
