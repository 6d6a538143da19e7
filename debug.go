package batchui

import "time"

// frameStats holds per-frame metrics. Only collected when Config.Debug is
// set.
type frameStats struct {
	rebuilt     bool
	presentTime time.Duration
	content     Size
	draw        DrawStats
}

// debugLog writes frame stats at debug level.
func (w *Window) debugLog(stats frameStats) {
	logger.Debug("frame",
		"rebuilt", stats.rebuilt,
		"present", stats.presentTime,
		"content", stats.content,
		"fills", stats.draw.Fills,
		"sprites", stats.draw.Sprites,
		"colors", stats.draw.ColorChanges,
		"clips", stats.draw.ClipChanges,
	)
	if stats.draw.ColorChanges > stats.draw.Fills/2 && stats.draw.Fills > debugMinFills {
		logger.Warn("poor color coalescing", "fills", stats.draw.Fills, "colors", stats.draw.ColorChanges)
	}
}

// debugMinFills is the fill count below which coalescing is not reported.
const debugMinFills = 64
