package widget

type CreateWidgetRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=120"`
	ConfigJSON      string   `json:"config_json"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Slot            string   `json:"slot"`
	VisibilityRules []string `json:"visibility_rules"`
	Priority        int      `json:"priority"`
	FreshnessTTL    int      `json:"freshness_ttl"`
	Enabled         *bool    `json:"enabled"`
}
