package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/store"
)

type testEnv struct {
	store         *store.Store
	accounts      *AccountService
	graph         *ConnectionGraph
	dispatch      *MessageDispatch
	conversations *ConversationAssembler
	notifications *NotificationService
	recs          *RecommendationService
}

// steppingClock returns a clock that advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func newTestEnv(t *testing.T, opts ...DispatchOption) *testEnv {
	t.Helper()

	st, err := store.OpenSQLite(":memory:", store.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.AutoMigrate(context.Background()))

	if len(opts) == 0 {
		opts = []DispatchOption{WithClock(steppingClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))}
	}

	log := zap.NewNop()
	dispatch := NewMessageDispatch(st, log, opts...)
	return &testEnv{
		store:         st,
		accounts:      NewAccountService(st, lib.BcryptHasher{Cost: bcrypt.MinCost}, log),
		graph:         NewConnectionGraph(st, dispatch, log),
		dispatch:      dispatch,
		conversations: NewConversationAssembler(st),
		notifications: NewNotificationService(st),
		recs:          NewRecommendationService(st),
	}
}

func (e *testEnv) signup(t *testing.T, name, email string) *models.Account {
	t.Helper()
	searchTime := 6
	account, err := e.accounts.CreateBasic(context.Background(), NewAccount{
		Name:       name,
		Email:      email,
		Password:   "secret123",
		SearchTime: &searchTime,
	})
	require.NoError(t, err)
	return account
}

func bodies(msgs []models.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Body)
	}
	return out
}
