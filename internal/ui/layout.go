package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which cards drop the tax id
	// and description excerpt.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width to show the theme name in the header.
	LayoutWideWidth = 110
)

// Card and overlay geometry.
const (
	// CardHeight is the number of lines a record card occupies, spacing included.
	CardHeight = 3

	// chromeHeight is header, search bar and footer.
	chromeHeight = 3

	// HelpWidth is the width of the help overlay.
	HelpWidth = 44

	// OverlayMaxWidth caps the detail and insight overlays on wide terminals.
	OverlayMaxWidth = 84
)

// Timing constants.
const (
	// ToastDuration is how long a toast notice stays visible.
	ToastDuration = 4 * time.Second

	// InsightTimeout bounds a single insight request.
	InsightTimeout = 90 * time.Second

	// ShareTimeout bounds the share command.
	ShareTimeout = 15 * time.Second
)
