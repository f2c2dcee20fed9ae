// Package services holds the account, connection and messaging logic. The
// HTTP layer calls into it; it talks to the database only through
// *store.Store.
package services

import (
	"context"
	"strings"

	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/store"
)

// normalizeEmail trims and lower-cases so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// resolvePair loads both accounts. Either one missing is a NotFound error.
func resolvePair(ctx context.Context, st *store.Store, emailA, emailB string) (*models.Account, *models.Account, error) {
	a, err := st.FindAccountByEmail(ctx, normalizeEmail(emailA))
	if err != nil {
		return nil, nil, err
	}
	b, err := st.FindAccountByEmail(ctx, normalizeEmail(emailB))
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func notify(ctx context.Context, st *store.Store, recipientID uint, kind models.NotificationType, relatedAccountID uint, messageID *uint) error {
	n := &models.Notification{
		RecipientID:      recipientID,
		Type:             kind,
		RelatedAccountID: relatedAccountID,
		RelatedMessageID: messageID,
	}
	return st.CreateNotification(ctx, n)
}

func sameEmail(a, b string) bool {
	return normalizeEmail(a) == normalizeEmail(b)
}
