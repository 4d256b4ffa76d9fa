package domain

import "context"

// PlaceStore is the capability set both storage backends expose. The backend
// is selected once at startup; call sites depend only on this interface.
type PlaceStore interface {
	// ReadAll returns the full current record set, sorted by id.
	ReadAll(ctx context.Context) ([]Place, error)

	// Write upserts a whole record keyed by its id.
	Write(ctx context.Context, p Place) error

	// Patch applies pp to an existing record and returns the updated copy.
	// A missing id fails with ErrNotFound, distinctly from Write.
	Patch(ctx context.Context, id int64, pp PlacePatch) (Place, error)

	// Delete removes a record. Missing id fails with ErrNotFound.
	Delete(ctx context.Context, id int64) error

	// ReplaceAll overwrites the entire collection (bulk import). The remote
	// backend refuses with ErrRemoteImport.
	ReplaceAll(ctx context.Context, ps []Place) error

	// Subscribe registers fn for push-based snapshots. The local backend is
	// load-once and never calls fn; the remote backend delivers the full
	// collection after every observed change. The returned func tears the
	// subscription down and must be called when the consumer goes away.
	Subscribe(fn func([]Place)) (unsubscribe func(), err error)

	// Realtime reports whether the backend pushes change notifications.
	Realtime() bool
}

// PostStore holds the community feedback/changelog board.
type PostStore interface {
	List(ctx context.Context) ([]Post, error) // newest first
	Add(ctx context.Context, p Post) error
	Reply(ctx context.Context, id string, reply string) error // ErrNotFound if missing
	Delete(ctx context.Context, id string) error              // ErrNotFound if missing
}

// Stats is derived from the current Place collection and never persisted.
type Stats struct {
	Visited     int            `json:"visited"`
	Total       int            `json:"total"`
	Percentage  int            `json:"percentage"`
	TotalSpent  float64        `json:"totalSpent"`
	AvgRating   float64        `json:"avgRating"`
	TopCuisines []CuisineCount `json:"topCuisines"`
}

type CuisineCount struct {
	Cuisine string `json:"cuisine"`
	Count   int    `json:"count"`
}
