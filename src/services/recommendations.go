package services

import (
	"context"
	"strings"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/store"
)

// RecommendationService lets accounts vouch for each other on their profiles.
type RecommendationService struct {
	store *store.Store
}

func NewRecommendationService(st *store.Store) *RecommendationService {
	return &RecommendationService{store: st}
}

// Add attaches a recommendation written by recommenderEmail to the profile of
// subjectEmail.
func (s *RecommendationService) Add(ctx context.Context, recommenderEmail, subjectEmail, description string) (*models.Recommendation, error) {
	if sameEmail(recommenderEmail, subjectEmail) {
		return nil, lib.InvalidArgument("You can't recommend yourself")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, lib.InvalidArgument("Recommendation description cannot be empty")
	}

	var rec *models.Recommendation
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		recommender, subject, err := resolvePair(ctx, tx, recommenderEmail, subjectEmail)
		if err != nil {
			return err
		}
		rec = &models.Recommendation{
			AccountID:   subject.ID,
			Recommender: recommender.Email,
			Description: description,
		}
		return tx.CreateRecommendation(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecommendationService) List(ctx context.Context, subjectEmail string) ([]models.Recommendation, error) {
	subject, err := s.store.FindAccountByEmail(ctx, normalizeEmail(subjectEmail))
	if err != nil {
		return nil, err
	}
	return s.store.ListRecommendations(ctx, subject.ID)
}
