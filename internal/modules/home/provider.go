package home

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// FeedItem is one entry of the assembled home feed, either a stored widget
// or a provider-supplied card.
type FeedItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Slot      string    `json:"slot,omitempty"`
	Priority  int       `json:"priority"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider supplies feed items from one content source. Implementations
// should return errors rather than swallow them; the aggregator handles
// failures fail-open.
type Provider interface {
	Name() string
	Items() ([]FeedItem, error)
}

// aggregate collects items from all providers. A failing provider is logged
// and skipped so one broken source never empties the whole feed. Duplicate
// ids within the provider set collapse, last one wins.
func aggregate(providers []Provider) []FeedItem {
	byID := make(map[int64]FeedItem)
	order := make([]int64, 0)

	for _, p := range providers {
		items, err := p.Items()
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name()).Msg("feed provider failed")
			continue
		}
		for _, it := range items {
			if _, seen := byID[it.ID]; !seen {
				order = append(order, it.ID)
			}
			it.Source = p.Name()
			byID[it.ID] = it
		}
	}

	merged := make([]FeedItem, 0, len(byID))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	return merged
}

// sortFeed orders items by priority desc, created_at desc, id desc. The
// three-level key makes the ordering total, so equal-priority items never
// flap between responses.
func sortFeed(items []FeedItem) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}
