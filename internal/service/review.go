package service

import (
	"context"
	"fmt"

	"github.com/restohub/bistro_backend/internal/models"
)

type ReviewStore interface {
	ListReviews(ctx context.Context) ([]models.Review, error)
	InsertReview(ctx context.Context, review *models.Review) error
}

type ReviewService struct {
	Store ReviewStore
}

func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.Store.ListReviews(ctx)
}

func (s *ReviewService) Create(ctx context.Context, review *models.Review) error {
	if review.Rating < 0 || review.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	return s.Store.InsertReview(ctx, review)
}
