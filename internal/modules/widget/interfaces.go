package widget

import (
	"context"

	"homewidget/internal/domain"
)

type WidgetRepositoryInterface interface {
	Create(ctx context.Context, w *domain.Widget) error
	GetByID(ctx context.Context, id int64) (*domain.Widget, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Widget, error)
	Delete(ctx context.Context, id int64) error
}
