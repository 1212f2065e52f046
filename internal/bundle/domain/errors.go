package domain

import "errors"

// ErrEmptyMenu is the InvalidInput error (spec §7): the item list was
// empty after filtering out-of-stock items. It bubbles up to the caller
// as a bundle-error; it is the only input error the orchestrator raises.
var ErrEmptyMenu = errors.New("bundle: no items available after filtering out-of-stock menu entries")

// ErrInvalidConfig is returned by config validation at construction time
// (spec §7 InvalidConfig). It never crosses into a running build call.
var ErrInvalidConfig = errors.New("bundle: invalid solver configuration")
