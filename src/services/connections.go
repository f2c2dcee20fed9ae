package services

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/store"
)

// ConnectionState is the relationship between two accounts as seen by the
// first one.
type ConnectionState string

const (
	StateConnected    ConnectionState = "connected"
	StatePending      ConnectionState = "pending"
	StateReceived     ConnectionState = "received"
	StateNotConnected ConnectionState = "not_connected"
)

// ConnectionGraph tracks connection requests between accounts. Each request
// is one row sender → recipient; every write goes through a single
// transaction so both sides of the pair always agree.
type ConnectionGraph struct {
	store    *store.Store
	dispatch *MessageDispatch
	log      *zap.Logger
}

func NewConnectionGraph(st *store.Store, dispatch *MessageDispatch, log *zap.Logger) *ConnectionGraph {
	return &ConnectionGraph{store: st, dispatch: dispatch, log: log}
}

// SendRequest records a request from sender to receiver. Sending it again
// overwrites the existing row instead of failing.
func (g *ConnectionGraph) SendRequest(ctx context.Context, senderEmail, receiverEmail string) error {
	return g.sendRequest(ctx, senderEmail, receiverEmail, false, "")
}

// SendRequestWithMessage is SendRequest plus a message from sender to
// receiver, stored in the same transaction.
func (g *ConnectionGraph) SendRequestWithMessage(ctx context.Context, senderEmail, receiverEmail, body string) error {
	return g.sendRequest(ctx, senderEmail, receiverEmail, true, body)
}

func (g *ConnectionGraph) sendRequest(ctx context.Context, senderEmail, receiverEmail string, withMessage bool, body string) error {
	if sameEmail(senderEmail, receiverEmail) {
		return lib.InvalidArgument("You can't send a connection request to yourself")
	}

	return g.store.Transaction(ctx, func(tx *store.Store) error {
		sender, receiver, err := resolvePair(ctx, tx, senderEmail, receiverEmail)
		if err != nil {
			return err
		}
		if err := tx.UpsertConnection(ctx, sender.ID, receiver.ID, models.ConnectionStatusPending); err != nil {
			return err
		}
		if err := notify(ctx, tx, receiver.ID, models.NotificationTypeConnectionRequest, sender.ID, nil); err != nil {
			return err
		}
		if withMessage {
			if _, err := g.dispatch.send(ctx, tx, sender, receiver, body); err != nil {
				return err
			}
		}

		g.log.Debug("connection request sent",
			zap.Uint("sender_id", sender.ID),
			zap.Uint("recipient_id", receiver.ID))
		return nil
	})
}

// RequestExists reports whether target has a pending request from sender.
// Accepted requests no longer count.
func (g *ConnectionGraph) RequestExists(ctx context.Context, senderEmail, targetEmail string) (bool, error) {
	sender, target, err := resolvePair(ctx, g.store, senderEmail, targetEmail)
	if err != nil {
		return false, err
	}
	return g.pending(ctx, g.store, sender.ID, target.ID)
}

func (g *ConnectionGraph) pending(ctx context.Context, st *store.Store, senderID, targetID uint) (bool, error) {
	conn, err := st.FindConnection(ctx, senderID, targetID)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	status, ok := conn.ReceivedStatus()
	return ok && status == models.RequestReceived, nil
}

// AcceptRequest accepts the pending request from sender to target. The row
// is locked and moved pending → accepted in one statement, so of two
// concurrent accepts exactly one wins and the other gets InvalidState.
func (g *ConnectionGraph) AcceptRequest(ctx context.Context, senderEmail, targetEmail string) error {
	return g.store.Transaction(ctx, func(tx *store.Store) error {
		sender, target, err := resolvePair(ctx, tx, senderEmail, targetEmail)
		if err != nil {
			return err
		}
		if err := g.transition(ctx, tx, sender.ID, target.ID, models.ConnectionStatusAccepted); err != nil {
			return err
		}
		if err := notify(ctx, tx, sender.ID, models.NotificationTypeConnectionAccepted, target.ID, nil); err != nil {
			return err
		}

		g.log.Debug("connection request accepted",
			zap.Uint("sender_id", sender.ID),
			zap.Uint("recipient_id", target.ID))
		return nil
	})
}

// RejectRequest turns down the pending request from sender to target.
func (g *ConnectionGraph) RejectRequest(ctx context.Context, senderEmail, targetEmail string) error {
	return g.store.Transaction(ctx, func(tx *store.Store) error {
		sender, target, err := resolvePair(ctx, tx, senderEmail, targetEmail)
		if err != nil {
			return err
		}
		return g.transition(ctx, tx, sender.ID, target.ID, models.ConnectionStatusRejected)
	})
}

func (g *ConnectionGraph) transition(ctx context.Context, tx *store.Store, senderID, targetID uint, to models.ConnectionStatus) error {
	conn, err := tx.LockConnection(ctx, senderID, targetID)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return lib.InvalidState("Connection request does not exist")
		}
		return err
	}
	if conn.Status != models.ConnectionStatusPending {
		return lib.InvalidState("This request has already been processed")
	}

	moved, err := tx.TransitionConnection(ctx, senderID, targetID, models.ConnectionStatusPending, to)
	if err != nil {
		return err
	}
	if !moved {
		return lib.InvalidState("This request has already been processed")
	}
	return nil
}

// RemoveConnection drops an accepted connection between the two accounts,
// whichever side sent the request.
func (g *ConnectionGraph) RemoveConnection(ctx context.Context, email, otherEmail string) error {
	if sameEmail(email, otherEmail) {
		return lib.InvalidArgument("You cannot remove yourself as a connection")
	}
	return g.store.Transaction(ctx, func(tx *store.Store) error {
		a, b, err := resolvePair(ctx, tx, email, otherEmail)
		if err != nil {
			return err
		}
		removed, err := tx.DeleteConnectionsBetween(ctx, a.ID, b.ID, models.ConnectionStatusAccepted)
		if err != nil {
			return err
		}
		if removed == 0 {
			return lib.InvalidState("Connection does not exist")
		}
		return nil
	})
}

// ListConnections returns the emails of every account connected to email,
// sorted and without duplicates.
func (g *ConnectionGraph) ListConnections(ctx context.Context, email string) ([]string, error) {
	account, err := g.store.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	conns, err := g.store.ConnectionsOf(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	result := make([]string, 0)
	for _, conn := range conns {
		if conn.Status != models.ConnectionStatusAccepted {
			continue
		}
		other := conn.Sender.Email
		if conn.SenderID == account.ID {
			other = conn.Recipient.Email
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		result = append(result, other)
	}
	sort.Strings(result)
	return result, nil
}

// ListConnectedAccounts is ListConnections returning account summaries.
func (g *ConnectionGraph) ListConnectedAccounts(ctx context.Context, email string) ([]models.AccountDto, error) {
	account, err := g.store.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	conns, err := g.store.ConnectionsOf(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(conns))
	for _, conn := range conns {
		if conn.Status == models.ConnectionStatusAccepted {
			ids = append(ids, conn.Counterpart(account.ID))
		}
	}
	accounts, err := g.store.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.AccountDto, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, a.Dto())
	}
	return result, nil
}

// IsConnected reports whether the two accounts have an accepted request in
// either direction. Accounts with no requests at all are simply not
// connected.
func (g *ConnectionGraph) IsConnected(ctx context.Context, email, otherEmail string) (bool, error) {
	a, b, err := resolvePair(ctx, g.store, email, otherEmail)
	if err != nil {
		return false, err
	}
	count, err := g.store.CountConnectionsBetween(ctx, a.ID, b.ID, models.ConnectionStatusAccepted)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SentRequests returns the account's outgoing requests keyed by counterpart
// email, with status "sent" or "accepted".
func (g *ConnectionGraph) SentRequests(ctx context.Context, email string) (map[string]models.RequestStatus, error) {
	return g.requestView(ctx, email, true)
}

// ReceivedRequests returns the account's incoming requests keyed by
// counterpart email, with status "received" or "accepted".
func (g *ConnectionGraph) ReceivedRequests(ctx context.Context, email string) (map[string]models.RequestStatus, error) {
	return g.requestView(ctx, email, false)
}

func (g *ConnectionGraph) requestView(ctx context.Context, email string, sent bool) (map[string]models.RequestStatus, error) {
	account, err := g.store.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	conns, err := g.store.ConnectionsOf(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	view := make(map[string]models.RequestStatus)
	for _, conn := range conns {
		if sent && conn.SenderID == account.ID {
			if status, ok := conn.SentStatus(); ok {
				view[conn.Recipient.Email] = status
			}
		}
		if !sent && conn.RecipientID == account.ID {
			if status, ok := conn.ReceivedStatus(); ok {
				view[conn.Sender.Email] = status
			}
		}
	}
	return view, nil
}

// PendingRequests returns the requests waiting for the account's answer,
// newest first.
func (g *ConnectionGraph) PendingRequests(ctx context.Context, email string) ([]models.Connection, error) {
	account, err := g.store.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return g.store.PendingReceived(ctx, account.ID)
}

// Status describes the relationship between email and otherEmail from the
// point of view of email.
func (g *ConnectionGraph) Status(ctx context.Context, email, otherEmail string) (ConnectionState, error) {
	if sameEmail(email, otherEmail) {
		return "", lib.InvalidArgument("Cannot check connection status with yourself")
	}
	a, b, err := resolvePair(ctx, g.store, email, otherEmail)
	if err != nil {
		return "", err
	}

	connected, err := g.store.CountConnectionsBetween(ctx, a.ID, b.ID, models.ConnectionStatusAccepted)
	if err != nil {
		return "", err
	}
	if connected > 0 {
		return StateConnected, nil
	}

	if received, err := g.pending(ctx, g.store, b.ID, a.ID); err != nil {
		return "", err
	} else if received {
		return StateReceived, nil
	}
	if sent, err := g.pending(ctx, g.store, a.ID, b.ID); err != nil {
		return "", err
	} else if sent {
		return StatePending, nil
	}
	return StateNotConnected, nil
}
