package widget

import "errors"

// ErrWidgetNotFound covers both a missing widget and a widget owned by
// someone else, so the API does not reveal which ids exist.
var ErrWidgetNotFound = errors.New("widget not found")
