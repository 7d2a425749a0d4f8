package domain

import "time"

// Widget is a content card shown in client home feeds. VisibilityRules
// target roles (empty means visible to everyone); FreshnessTTL is the number
// of seconds after creation during which the widget counts as fresh
// (0 or negative means it never goes stale).
type Widget struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"index;not null"`
	ConfigJSON string `json:"config_json" gorm:"column:config_json;default:'{}'"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Slot        string `json:"slot,omitempty" gorm:"index"`

	VisibilityRules []string `json:"visibility_rules,omitempty" gorm:"type:json;serializer:json"`
	Priority        int      `json:"priority" gorm:"index;default:0"`
	FreshnessTTL    int      `json:"freshness_ttl" gorm:"default:0"`
	Enabled         bool     `json:"enabled" gorm:"index;default:true"`

	OwnerID int64 `json:"owner_id" gorm:"index;not null"`
	Owner   User  `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

// Fresh reports whether the widget is still within its freshness window.
func (w *Widget) Fresh(now time.Time) bool {
	if w.FreshnessTTL <= 0 {
		return true
	}
	return w.CreatedAt.Add(time.Duration(w.FreshnessTTL) * time.Second).After(now)
}

// VisibleTo reports whether the widget targets the given role context.
func (w *Widget) VisibleTo(role string) bool {
	if len(w.VisibilityRules) == 0 {
		return true
	}
	for _, r := range w.VisibilityRules {
		if r == role {
			return true
		}
	}
	return false
}
