package event

import "github.com/google/uuid"

// ItemInfo identifies the work item an execution supervisor was created for.
// Attributes is an open bag of host-supplied metadata (for example, a batch
// ID or a source filename) that rides along every LoggingEvent without the
// event model needing to know what it means.
type ItemInfo struct {
	ID         string
	Label      string
	Attributes map[string]any
}

// NewItemInfo mints an ItemInfo with a fresh unique ID and the given
// human-readable label. Hosts that already carry a durable item identity
// should construct ItemInfo directly instead.
func NewItemInfo(label string) *ItemInfo {
	return &ItemInfo{ID: uuid.New().String(), Label: label}
}

// ItemPositionInfo reports an item's position within a larger batch: Index is
// the item's zero-based index and Total the batch size, the same total that
// batch.ProgressFunc reports alongside its completed count.
type ItemPositionInfo struct {
	Index int `json:"index"`
	Total int `json:"total"`
}
