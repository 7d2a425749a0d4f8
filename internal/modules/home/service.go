package home

import (
	"context"
	"time"

	"homewidget/internal/domain"
)

type WidgetRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Widget, error)
}

// Service assembles the home feed: the caller's stored widgets filtered by
// enabled state, role visibility and freshness, merged with provider items
// and sorted deterministically (priority desc, created_at desc, id desc).
type Service struct {
	widgets   WidgetRepositoryInterface
	providers []Provider
	now       func() time.Time
}

func NewService(widgets WidgetRepositoryInterface, providers []Provider) *Service {
	return &Service{widgets: widgets, providers: providers, now: time.Now}
}

// WithClock overrides the freshness reference clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Feed returns the feed for the given owner with role as the visibility
// context. Only the widget lookup can fail; provider failures are absorbed
// by the aggregator.
func (s *Service) Feed(ctx context.Context, ownerID int64, role string) ([]FeedItem, error) {
	stored, err := s.widgets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]FeedItem, 0, len(stored))
	for i := range stored {
		w := &stored[i]
		if !w.Enabled || !w.VisibleTo(role) || !w.Fresh(now) {
			continue
		}
		items = append(items, FeedItem{
			ID:        w.ID,
			Name:      w.Name,
			Title:     w.Title,
			Slot:      w.Slot,
			Priority:  w.Priority,
			Source:    "db",
			CreatedAt: w.CreatedAt,
		})
	}

	items = append(items, aggregate(s.providers)...)
	sortFeed(items)
	return items, nil
}
