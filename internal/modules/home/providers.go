package home

import "time"

// Static demo providers. They keep stable ids and timestamps so feed
// ordering stays reproducible across runs.

type FurnitureProvider struct{}

func (FurnitureProvider) Name() string { return "furniture" }

func (FurnitureProvider) Items() ([]FeedItem, error) {
	base := time.Date(2024, 2, 5, 8, 0, 0, 0, time.UTC)
	return []FeedItem{
		{ID: 2101, Name: "Sofa Classic", Priority: 15, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: 2102, Name: "Desk Pro", Priority: 18, CreatedAt: base.AddDate(0, 0, 2)},
	}, nil
}

type MobilePlansProvider struct{}

func (MobilePlansProvider) Name() string { return "mobile_plans" }

func (MobilePlansProvider) Items() ([]FeedItem, error) {
	base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	return []FeedItem{
		{ID: 2001, Name: "Tarif M", Priority: 20, CreatedAt: base.AddDate(0, 0, 2)},
		{ID: 2002, Name: "Tarif L", Priority: 25, CreatedAt: base.AddDate(0, 0, 3)},
	}, nil
}

// DefaultProviders is the provider set wired into the API server.
func DefaultProviders() []Provider {
	return []Provider{MobilePlansProvider{}, FurnitureProvider{}}
}
