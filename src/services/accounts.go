package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/store"
)

// NewAccount is the signup payload.
type NewAccount struct {
	Role              models.Role     `json:"role" validate:"omitempty,oneof=searcher investor"`
	Name              string          `json:"name" validate:"required"`
	Email             string          `json:"email" validate:"required,email"`
	Password          string          `json:"password" validate:"required,min=6"`
	ProfilePicture    string          `json:"profilePicture"`
	About             string          `json:"about" validate:"max=2600"`
	SearchTime        *int            `json:"searchTime" validate:"omitempty,min=0"`
	SectorPreference  string          `json:"sectorPreference"`
	OpenToConnections bool            `json:"openToConnections"`
	Experiences       []NewExperience `json:"experiences" validate:"dive"`
	Requirement       *NewRequirement `json:"requirement"`
}

type NewExperience struct {
	TypeOf      string     `json:"typeOf" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Time        *time.Time `json:"time"`
}

type NewRequirement struct {
	Total     int            `json:"total" validate:"min=0"`
	Breakdown map[string]any `json:"breakdown" validate:"required"`
}

// Update is one entry of a profile update, in the {"set": field, "as": value}
// shape clients send.
type Update struct {
	Set *string `json:"set"`
	As  any     `json:"as"`
}

// updatable maps client field names to columns. email and password are not
// updatable here.
var updatable = map[string]string{
	"name":              "name",
	"profilePicture":    "profile_picture",
	"about":             "about",
	"searchTime":        "search_time",
	"sectorPreference":  "sector_preference",
	"openToConnections": "open_to_connections",
}

type AccountService struct {
	store  *store.Store
	hasher lib.CredentialHasher
	log    *zap.Logger
}

func NewAccountService(st *store.Store, hasher lib.CredentialHasher, log *zap.Logger) *AccountService {
	return &AccountService{store: st, hasher: hasher, log: log}
}

// CreateBasic registers an account without nested profile records.
func (s *AccountService) CreateBasic(ctx context.Context, in NewAccount) (*models.Account, error) {
	in.Experiences = nil
	in.Requirement = nil
	return s.create(ctx, in)
}

// CreateDetailed registers an account together with its experiences and
// requirement. Everything lands in one transaction or nothing does.
func (s *AccountService) CreateDetailed(ctx context.Context, in NewAccount) (*models.Account, error) {
	if in.Requirement == nil {
		return nil, lib.InvalidArgument("requirement is required for a detailed account")
	}
	return s.create(ctx, in)
}

func (s *AccountService) create(ctx context.Context, in NewAccount) (*models.Account, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Role == "" {
		in.Role = models.RoleSearcher
	}
	if err := lib.ValidateStruct(in); err != nil {
		return nil, err
	}
	if in.Role == models.RoleSearcher && in.SearchTime == nil {
		return nil, lib.InvalidArgument("invalid input: searchTime is required for searchers")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	account := &models.Account{
		Role:              in.Role,
		Name:              in.Name,
		Email:             in.Email,
		PasswordHash:      hash,
		ProfilePicture:    in.ProfilePicture,
		About:             in.About,
		SearchTime:        in.SearchTime,
		SectorPreference:  in.SectorPreference,
		OpenToConnections: in.OpenToConnections,
	}
	for _, exp := range in.Experiences {
		account.Experiences = append(account.Experiences, models.Experience{
			TypeOf:      exp.TypeOf,
			Name:        exp.Name,
			Description: exp.Description,
			Time:        exp.Time,
		})
	}
	if in.Requirement != nil {
		account.Requirement = &models.Requirement{
			Total:     in.Requirement.Total,
			Breakdown: in.Requirement.Breakdown,
		}
	}

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		exists, err := tx.AccountExists(ctx, account.Email)
		if err != nil {
			return err
		}
		if exists {
			return lib.InvalidState("Account %s already exists", account.Email)
		}
		return tx.CreateAccount(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("account created", zap.Uint("id", account.ID), zap.String("role", string(account.Role)))
	return account, nil
}

func (s *AccountService) Exists(ctx context.Context, email string) (bool, error) {
	return s.store.AccountExists(ctx, normalizeEmail(email))
}

func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.store.FindAccountByEmail(ctx, normalizeEmail(email))
}

// FindSecure returns the full profile for client use. The password hash is
// never serialized.
func (s *AccountService) FindSecure(ctx context.Context, email string) (*models.Account, error) {
	return s.store.FindProfileByEmail(ctx, normalizeEmail(email))
}

// VerifyPassword reports whether password matches the stored hash.
func (s *AccountService) VerifyPassword(ctx context.Context, email, password string) (bool, error) {
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return s.hasher.Verify(password, account.PasswordHash), nil
}

// Authenticate checks the credentials and returns the account. Unknown email
// and wrong password produce the same error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return nil, lib.Unauthorized("Wrong email or password")
		}
		return nil, err
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, lib.Unauthorized("Wrong email or password")
	}
	return account, nil
}

// Update applies profile updates to the account. The first entry must be
// complete; later incomplete entries are skipped.
func (s *AccountService) Update(ctx context.Context, email string, updates []Update) error {
	if len(updates) == 0 || updates[0].Set == nil || updates[0].As == nil {
		return lib.InvalidArgument("Incorrect updates format")
	}

	fields := make(map[string]any, len(updates))
	for _, u := range updates {
		if u.Set == nil || u.As == nil {
			continue
		}
		column, ok := updatable[*u.Set]
		if !ok {
			return lib.InvalidArgument("Field %q cannot be updated", *u.Set)
		}
		value, err := coerceUpdate(*u.Set, u.As)
		if err != nil {
			return err
		}
		fields[column] = value
	}

	return s.store.Transaction(ctx, func(tx *store.Store) error {
		return tx.UpdateAccountFields(ctx, normalizeEmail(email), fields)
	})
}

// coerceUpdate checks the JSON-decoded value against the field's type.
func coerceUpdate(field string, value any) (any, error) {
	switch field {
	case "searchTime":
		n, ok := value.(float64)
		if !ok || n < 0 || n != math.Trunc(n) {
			return nil, lib.InvalidArgument("searchTime must be a non-negative integer")
		}
		return int(n), nil
	case "openToConnections":
		b, ok := value.(bool)
		if !ok {
			return nil, lib.InvalidArgument("openToConnections must be a boolean")
		}
		return b, nil
	case "name":
		str, ok := value.(string)
		if !ok || strings.TrimSpace(str) == "" {
			return nil, lib.InvalidArgument("name must be a non-empty string")
		}
		return strings.TrimSpace(str), nil
	case "about":
		str, ok := value.(string)
		if !ok || len(str) > 2600 {
			return nil, lib.InvalidArgument("about must be a string of at most 2600 characters")
		}
		return str, nil
	default:
		str, ok := value.(string)
		if !ok {
			return nil, lib.InvalidArgument("%s must be a string", field)
		}
		return str, nil
	}
}
