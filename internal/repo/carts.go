package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/restohub/bistro_backend/internal/models"
)

func (r *GormRepo) ListCartItems(ctx context.Context, email string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("email = ?", email).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) InsertCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// RemoveCartItems deletes the listed items in one statement, scoped by the
// owning email so a confirmation can never clear another account's cart.
func (r *GormRepo) RemoveCartItems(ctx context.Context, email string, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).
		Where("id IN ? AND email = ?", ids, email).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
