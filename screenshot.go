package batchui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next presented frame. The PNG
// is written to Config.ScreenshotDir as <timestamp>_<label>.png. Queuing a
// screenshot forces that frame to be drawn even when nothing is dirty.
func (w *Window) Screenshot(label string) {
	w.screenshotQueue = append(w.screenshotQueue, label)
}

// flushScreenshots writes target once for every queued label. Failures are
// logged; the queue is always emptied.
func (w *Window) flushScreenshots(target *ebiten.Image) {
	if len(w.screenshotQueue) == 0 {
		return
	}
	labels := w.screenshotQueue
	w.screenshotQueue = w.screenshotQueue[:0]

	dir := w.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("screenshot directory", "dir", dir, "err", err)
		return
	}

	size := target.Bounds().Size()
	pixels := make([]byte, 4*size.X*size.Y)
	target.ReadPixels(pixels)
	img := unpremultiply(pixels, size.X, size.Y)

	for _, path := range screenshotPaths(dir, time.Now(), labels) {
		if err := writePNG(path, img); err != nil {
			logger.Error("screenshot", "err", err)
			continue
		}
		logger.Info("screenshot written", "path", path)
	}
}

// screenshotPaths names one file per label. Labels that collide after
// sanitizing get a numeric suffix so a frame never overwrites itself.
func screenshotPaths(dir string, now time.Time, labels []string) []string {
	stamp := now.Format("20060102_150405")
	seen := make(map[string]int, len(labels))
	paths := make([]string, len(labels))
	for i, label := range labels {
		name := sanitizeLabel(label)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		paths[i] = filepath.Join(dir, stamp+"_"+name+".png")
	}
	return paths
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to the
// straight-alpha NRGBA that PNG stores.
func unpremultiply(pixels []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', replaces every
// other rune with '_', and names blank labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
