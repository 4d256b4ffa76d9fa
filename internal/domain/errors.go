package domain

import "errors"

var (
	// ErrNotFound: patch/delete against an id the backend does not hold.
	// Callers must not swallow it; it means their view is stale.
	ErrNotFound = errors.New("goodfood: record not found")

	// ErrForbidden: mutation requires admin privilege.
	ErrForbidden = errors.New("goodfood: admin privilege required")

	// ErrRemoteImport: bulk import is blocked against the shared remote store.
	ErrRemoteImport = errors.New("goodfood: bulk import unavailable in remote mode")

	// ErrBadImport: import payload failed to parse or is not Place-shaped.
	ErrBadImport = errors.New("goodfood: malformed import payload")

	// ErrNameRequired: a custom place needs a non-empty name.
	ErrNameRequired = errors.New("goodfood: place name is required")

	// ErrInvalidRating: a check-in rating outside 0..MaxRating.
	ErrInvalidRating = errors.New("goodfood: rating must be between 0 and 5")

	// ErrBadPost: post payload failed validation.
	ErrBadPost = errors.New("goodfood: malformed post")
)
