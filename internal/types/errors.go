package types

import "errors"

// Sentinel errors for MenuKeeper operations.
var (
	// ErrCollapsiblePathConflict indicates a section configured with both
	// collapsible behavior and a direct-navigation path.
	ErrCollapsiblePathConflict = errors.New("section cannot be both collapsible and direct-navigation")

	// ErrInvalidMenuChild indicates a non-item node inserted into the
	// flat actor menu.
	ErrInvalidMenuChild = errors.New("actor menu accepts only menu items")

	// ErrInvalidSectionChild indicates a section child that is neither a
	// group nor an item.
	ErrInvalidSectionChild = errors.New("section children must be groups or items")

	// ErrEmptyLabel indicates a node constructed without display text.
	ErrEmptyLabel = errors.New("node label is empty")

	// ErrLabelTooLong indicates a label exceeds MaxLabelLength.
	ErrLabelTooLong = errors.New("node label exceeds maximum length")

	// ErrMenuTooDeep indicates tree nesting exceeds MaxMenuDepth.
	ErrMenuTooDeep = errors.New("menu tree exceeds maximum depth")

	// ErrTooManyFilters indicates a filtered item exceeds MaxFilterCount.
	ErrTooManyFilters = errors.New("too many filters on item")

	// ErrTooManyMetaPairs indicates node metadata exceeds MaxMetaPairs.
	ErrTooManyMetaPairs = errors.New("too many metadata pairs")

	// ErrUnknownBadgeType indicates a badge style outside the closed set.
	ErrUnknownBadgeType = errors.New("unknown badge type")

	// ErrAuthEvaluation wraps an error returned by an authorization
	// predicate. Never treated as "not visible".
	ErrAuthEvaluation = errors.New("authorization predicate failed")

	// ErrBadgeEvaluation wraps an error returned by a badge callback.
	ErrBadgeEvaluation = errors.New("badge callback failed")

	// ErrCacheUnavailable indicates the cache store could not be reached.
	// Resolution degrades to uncached evaluation instead of failing.
	ErrCacheUnavailable = errors.New("cache store unavailable")
)
