package picker

import "context"

// Provider is the interface for data sources that supply items to the picker.
type Provider interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// Request describes what items the picker wants from a Provider.
type Request struct {
	RequestID uint64 // Monotonically increasing, for stale response detection
	Query     string // What the user has typed so far
	TabID     string // Active tab identifier
	Limit     int
}

// Response carries items back from a Provider.
type Response struct {
	RequestID uint64 // Must match Request.RequestID to be accepted
	Items     []Item
}

// Item is one selectable row.
type Item struct {
	Value  string // Exercise name returned on Enter
	Detail string // Dimmed trailing text, may be empty
}

// TabDef is one picker tab and the provider backing it.
type TabDef struct {
	ID       string
	Label    string
	Provider Provider
}
