package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/restohub/bistro_backend/internal/models"
)

func (r *GormRepo) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.DB.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) InsertMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// UpdateMenuItem applies the non-zero fields of patch to the stored item.
func (r *GormRepo) UpdateMenuItem(ctx context.Context, id uuid.UUID, patch *models.MenuItem) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		Updates(models.MenuItem{
			Name:     patch.Name,
			Recipe:   patch.Recipe,
			Image:    patch.Image,
			Category: patch.Category,
			Price:    patch.Price,
		})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) DeleteMenuItem(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	return res.RowsAffected, res.Error
}
