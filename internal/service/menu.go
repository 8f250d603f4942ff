package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restohub/bistro_backend/internal/models"
)

type MenuStore interface {
	ListMenu(ctx context.Context) ([]models.MenuItem, error)
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	InsertMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, id uuid.UUID, patch *models.MenuItem) (int64, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) (int64, error)
}

type MenuService struct {
	Store MenuStore
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.Store.ListMenu(ctx)
}

func (s *MenuService) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, err := s.Store.FindMenuItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: menu item", ErrNotFound)
	}
	return item, err
}

func (s *MenuService) Create(ctx context.Context, item *models.MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return s.Store.InsertMenuItem(ctx, item)
}

func (s *MenuService) Update(ctx context.Context, id uuid.UUID, patch *models.MenuItem) (int64, error) {
	if patch.Price < 0 {
		return 0, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return s.Store.UpdateMenuItem(ctx, id, patch)
}

func (s *MenuService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.Store.DeleteMenuItem(ctx, id)
}
