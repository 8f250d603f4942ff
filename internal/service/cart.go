package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/restohub/bistro_backend/internal/models"
)

type CartStore interface {
	ListCartItems(ctx context.Context, email string) ([]models.CartItem, error)
	InsertCartItem(ctx context.Context, item *models.CartItem) error
	DeleteCartItem(ctx context.Context, id uuid.UUID) (int64, error)
	RemoveCartItems(ctx context.Context, email string, ids []uuid.UUID) (int64, error)
}

type CartService struct {
	Store CartStore
}

func (s *CartService) List(ctx context.Context, email string) ([]models.CartItem, error) {
	return s.Store.ListCartItems(ctx, email)
}

func (s *CartService) Add(ctx context.Context, item *models.CartItem) error {
	if item.Email == "" {
		return fmt.Errorf("%w: email required", ErrValidation)
	}
	if item.MenuItemID == uuid.Nil {
		return fmt.Errorf("%w: menu_item_id required", ErrValidation)
	}
	return s.Store.InsertCartItem(ctx, item)
}

func (s *CartService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.Store.DeleteCartItem(ctx, id)
}
