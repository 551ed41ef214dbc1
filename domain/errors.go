package domain

import "errors"

var (
	// ErrMalformedAnswer is returned when an onboarding field is still
	// outside its canonical enum after alias normalization.
	ErrMalformedAnswer = errors.New("malformed onboarding answer")

	// ErrNoArchetype means the classifier found no taste archetype even
	// after every fallback. Callers return an empty recommendation.
	ErrNoArchetype = errors.New("no taste archetype matched")

	ErrTasteNotFound = errors.New("taste config not found")

	// ErrCatalogUnavailable wraps datastore failures on the product
	// catalog. Transient, callers may retry.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrCacheInconsistent means recommended product IDs and their score
	// list disagree in length for a category.
	ErrCacheInconsistent = errors.New("recommended product cache inconsistent")
)
