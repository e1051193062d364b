package lineup

import "errors"

var (
	// ErrUnknownPanel is returned when a panel ID is not in the lineup.
	ErrUnknownPanel = errors.New("unknown panel")

	// ErrDuplicatePanel is returned when appending a panel whose ID is already present.
	ErrDuplicatePanel = errors.New("duplicate panel id")

	// ErrStale is returned when a resolution completes after the lineup it
	// was issued against has changed. The resolved panel is dropped.
	ErrStale = errors.New("lineup changed during resolution")

	// ErrNoOpener is returned for external links when no opener is configured.
	ErrNoOpener = errors.New("no opener for external links")

	// ErrUnknownEvent is returned by Dispatch for unsupported event types.
	ErrUnknownEvent = errors.New("unknown event")
)
