package batchui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is refreshed.
const fpsRefresh = 0.5

// fpsOverlay prints the measured frame and tick rates in the top-left corner
// of the window while Config.Debug is set. It is not part of the batch tree
// and is left out of screenshots.
type fpsOverlay struct {
	elapsed float32
	label   string
}

// Update implements Animator. It requests a repaint only when the label
// changes, so an idle window stays idle between refreshes.
func (o *fpsOverlay) Update(dt float32) bool {
	o.elapsed += dt
	if o.elapsed < fpsRefresh {
		return false
	}
	o.elapsed = 0
	label := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if label == o.label {
		return false
	}
	o.label = label
	return true
}

func (o *fpsOverlay) draw(target *ebiten.Image) {
	if o.label != "" {
		ebitenutil.DebugPrint(target, o.label)
	}
}
