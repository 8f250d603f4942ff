package repo

import (
	"context"

	"github.com/restohub/bistro_backend/internal/models"
)

func (r *GormRepo) InsertPayment(ctx context.Context, payment *models.Payment) error {
	return r.DB.WithContext(ctx).Create(payment).Error
}

func (r *GormRepo) ListPayments(ctx context.Context, email string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.DB.WithContext(ctx).Where("email = ?", email).Order("date DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
