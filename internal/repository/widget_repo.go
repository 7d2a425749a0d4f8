package repository

import (
	"context"

	"homewidget/internal/domain"

	"gorm.io/gorm"
)

type WidgetRepository struct {
	db *gorm.DB
}

func NewWidgetRepository(db *gorm.DB) *WidgetRepository {
	return &WidgetRepository{db: db}
}

func (r *WidgetRepository) Create(ctx context.Context, w *domain.Widget) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WidgetRepository) GetByID(ctx context.Context, id int64) (*domain.Widget, error) {
	var w domain.Widget
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WidgetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Widget, error) {
	var widgets []domain.Widget
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&widgets).Error
	return widgets, err
}

func (r *WidgetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Widget{}, id).Error
}
