package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
)

func strPtr(s string) *string { return &s }

func TestAccountService_CreateBasic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	account := env.signup(t, "  Ada  ", "Ada@Example.com ")
	assert.Equal(t, "ada@example.com", account.Email)
	assert.Equal(t, "Ada", account.Name)
	assert.Equal(t, models.RoleSearcher, account.Role)
	assert.NotEqual(t, "secret123", account.PasswordHash)

	exists, err := env.accounts.Exists(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	searchTime := 1
	_, err = env.accounts.CreateBasic(ctx, NewAccount{
		Name:       "Other Ada",
		Email:      "ada@example.com",
		Password:   "secret123",
		SearchTime: &searchTime,
	})
	assert.ErrorIs(t, err, lib.ErrInvalidState)
}

func TestAccountService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	searchTime := 3

	cases := []struct {
		name string
		in   NewAccount
	}{
		{"missing name", NewAccount{Email: "a@x.com", Password: "secret123", SearchTime: &searchTime}},
		{"bad email", NewAccount{Name: "A", Email: "not-an-email", Password: "secret123", SearchTime: &searchTime}},
		{"short password", NewAccount{Name: "A", Email: "a@x.com", Password: "123", SearchTime: &searchTime}},
		{"unknown role", NewAccount{Role: "admin", Name: "A", Email: "a@x.com", Password: "secret123", SearchTime: &searchTime}},
		{"searcher without search time", NewAccount{Name: "A", Email: "a@x.com", Password: "secret123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.accounts.CreateBasic(ctx, tc.in)
			assert.ErrorIs(t, err, lib.ErrInvalidArgument)
		})
	}

	investor, err := env.accounts.CreateBasic(ctx, NewAccount{
		Role:     models.RoleInvestor,
		Name:     "Inv",
		Email:    "inv@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Nil(t, investor.SearchTime)
}

func TestAccountService_CreateDetailed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	searchTime := 12

	in := NewAccount{
		Name:       "Grace",
		Email:      "grace@x.com",
		Password:   "secret123",
		SearchTime: &searchTime,
		Experiences: []NewExperience{
			{TypeOf: "job", Name: "Navy", Description: "compilers"},
			{TypeOf: "education", Name: "Yale"},
		},
	}

	_, err := env.accounts.CreateDetailed(ctx, in)
	assert.ErrorIs(t, err, lib.ErrInvalidArgument, "requirement is mandatory")

	in.Requirement = &NewRequirement{Total: 5000, Breakdown: map[string]any{"rent": 3000.0, "food": 2000.0}}
	_, err = env.accounts.CreateDetailed(ctx, in)
	require.NoError(t, err)

	profile, err := env.accounts.FindSecure(ctx, "grace@x.com")
	require.NoError(t, err)
	require.Len(t, profile.Experiences, 2)
	assert.Equal(t, "Navy", profile.Experiences[0].Name)
	require.NotNil(t, profile.Requirement)
	assert.Equal(t, 5000, profile.Requirement.Total)
	assert.Equal(t, 3000.0, profile.Requirement.Breakdown["rent"])
}

func TestAccountService_CreateBasicDropsNestedRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	searchTime := 2

	_, err := env.accounts.CreateBasic(ctx, NewAccount{
		Name:        "Basic",
		Email:       "basic@x.com",
		Password:    "secret123",
		SearchTime:  &searchTime,
		Experiences: []NewExperience{{TypeOf: "job", Name: "Somewhere"}},
		Requirement: &NewRequirement{Total: 1, Breakdown: map[string]any{}},
	})
	require.NoError(t, err)

	profile, err := env.accounts.FindSecure(ctx, "basic@x.com")
	require.NoError(t, err)
	assert.Empty(t, profile.Experiences)
	assert.Nil(t, profile.Requirement)
}

func TestAccountService_Authenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "A", "a@x.com")

	account, err := env.accounts.Authenticate(ctx, "A@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", account.Email)

	_, err = env.accounts.Authenticate(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, lib.ErrUnauthorized)

	_, err = env.accounts.Authenticate(ctx, "ghost@x.com", "secret123")
	assert.ErrorIs(t, err, lib.ErrUnauthorized)

	ok, err := env.accounts.VerifyPassword(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccountService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "A", "a@x.com")

	err := env.accounts.Update(ctx, "a@x.com", []Update{
		{Set: strPtr("name"), As: "Alice"},
		{Set: strPtr("about"), As: nil},
		{Set: strPtr("searchTime"), As: 9.0},
		{Set: strPtr("openToConnections"), As: true},
	})
	require.NoError(t, err)

	account, err := env.accounts.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.Name)
	require.NotNil(t, account.SearchTime)
	assert.Equal(t, 9, *account.SearchTime)
	assert.True(t, account.OpenToConnections)

	cases := []struct {
		name    string
		updates []Update
	}{
		{"empty", nil},
		{"incomplete first entry", []Update{{Set: strPtr("name")}}},
		{"protected field", []Update{{Set: strPtr("email"), As: "new@x.com"}}},
		{"password", []Update{{Set: strPtr("password"), As: "hunter22"}}},
		{"fractional search time", []Update{{Set: strPtr("searchTime"), As: 1.5}}},
		{"wrong type", []Update{{Set: strPtr("openToConnections"), As: "yes"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := env.accounts.Update(ctx, "a@x.com", tc.updates)
			assert.ErrorIs(t, err, lib.ErrInvalidArgument)
		})
	}

	err = env.accounts.Update(ctx, "ghost@x.com", []Update{{Set: strPtr("name"), As: "Ghost"}})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestRecommendationService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "A", "a@x.com")
	env.signup(t, "B", "b@x.com")

	rec, err := env.recs.Add(ctx, "a@x.com", "b@x.com", "  Great to work with  ")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", rec.Recommender)
	assert.Equal(t, "Great to work with", rec.Description)

	recs, err := env.recs.List(ctx, "b@x.com")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)

	_, err = env.recs.Add(ctx, "a@x.com", "a@x.com", "me")
	assert.ErrorIs(t, err, lib.ErrInvalidArgument)
	_, err = env.recs.Add(ctx, "a@x.com", "b@x.com", "")
	assert.ErrorIs(t, err, lib.ErrInvalidArgument)
	_, err = env.recs.Add(ctx, "a@x.com", "ghost@x.com", "hi")
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestNotificationService_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.signup(t, "A", "a@x.com")
	b := env.signup(t, "B", "b@x.com")

	require.NoError(t, env.graph.SendRequest(ctx, "a@x.com", "b@x.com"))
	list, err := env.notifications.List(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := list[0].ID

	_, err = env.notifications.MarkRead(ctx, a.ID, id)
	assert.ErrorIs(t, err, lib.ErrNotFound)
	assert.ErrorIs(t, env.notifications.Delete(ctx, a.ID, id), lib.ErrNotFound)

	n, err := env.notifications.MarkRead(ctx, b.ID, id)
	require.NoError(t, err)
	assert.True(t, n.Read)

	require.NoError(t, env.notifications.Delete(ctx, b.ID, id))
	list, err = env.notifications.List(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
