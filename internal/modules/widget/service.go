package widget

import (
	"context"
	"errors"

	"homewidget/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service implements owner-scoped widget inventory operations. Every
// operation takes the authenticated owner id resolved by the middleware;
// cross-owner access is indistinguishable from a missing widget.
type Service struct {
	widgets WidgetRepositoryInterface
}

func NewService(widgets WidgetRepositoryInterface) *Service {
	return &Service{widgets: widgets}
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]domain.Widget, error) {
	return s.widgets.ListByOwner(ctx, ownerID)
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateWidgetRequest) (*domain.Widget, error) {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	configJSON := req.ConfigJSON
	if configJSON == "" {
		configJSON = "{}"
	}

	w := &domain.Widget{
		Name:            req.Name,
		ConfigJSON:      configJSON,
		Title:           req.Title,
		Description:     req.Description,
		Slot:            req.Slot,
		VisibilityRules: req.VisibilityRules,
		Priority:        req.Priority,
		FreshnessTTL:    req.FreshnessTTL,
		Enabled:         enabled,
		OwnerID:         ownerID,
	}
	if err := s.widgets.Create(ctx, w); err != nil {
		return nil, err
	}

	log.Info().Int64("widget_id", w.ID).Int64("owner_id", ownerID).Msg("widget created")
	return w, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, widgetID int64) error {
	w, err := s.widgets.GetByID(ctx, widgetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWidgetNotFound
		}
		return err
	}
	if w.OwnerID != ownerID {
		return ErrWidgetNotFound
	}

	if err := s.widgets.Delete(ctx, widgetID); err != nil {
		return err
	}

	log.Info().Int64("widget_id", widgetID).Int64("owner_id", ownerID).Msg("widget deleted")
	return nil
}
