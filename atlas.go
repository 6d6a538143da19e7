package batchui

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite identifies an icon in the shared SpriteAtlas. Batches store sprite
// ids only; the atlas resolves them to texture regions at present time.
type Sprite uint16

// SpriteNone is the zero sprite. It resolves to the magenta placeholder.
const SpriteNone Sprite = 0

// TextureRegion describes a sub-rectangle within an atlas page.
type TextureRegion struct {
	Page      uint16 // atlas page index
	X, Y      uint16 // top-left corner of the sub-image rect within the atlas page
	Width     uint16 // width of the sub-image rect (may differ from OriginalW if trimmed)
	Height    uint16 // height of the sub-image rect (may differ from OriginalH if trimmed)
	OriginalW uint16 // untrimmed sprite width as authored
	OriginalH uint16 // untrimmed sprite height as authored
	OffsetX   int16  // horizontal trim offset from TexturePacker
	OffsetY   int16  // vertical trim offset from TexturePacker
	Rotated   bool   // true if the region is stored 90 degrees clockwise in the atlas
}

// rect returns the sub-image bounds on the page.
func (r TextureRegion) rect() image.Rectangle {
	if r.Rotated {
		return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Height), int(r.Y)+int(r.Width))
	}
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// SpriteAtlas holds the atlas page images and the sprite table. Sprite ids
// are assigned in name order starting at 1, so the same JSON always yields
// the same ids.
type SpriteAtlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	names   map[string]Sprite
	regions []TextureRegion // indexed by Sprite; entry 0 is the placeholder
}

// Sprite returns the id registered for name.
func (a *SpriteAtlas) Sprite(name string) (Sprite, bool) {
	s, ok := a.names[name]
	return s, ok
}

// MustSprite is Sprite for names known at compile time. A missing name logs a
// warning and yields SpriteNone.
func (a *SpriteAtlas) MustSprite(name string) Sprite {
	if s, ok := a.names[name]; ok {
		return s
	}
	logger.Warn("atlas sprite not found, using magenta placeholder", "name", name)
	return SpriteNone
}

// Region returns the texture region for s. Unknown sprites resolve to the
// 1×1 magenta placeholder on page magentaPlaceholderPage.
func (a *SpriteAtlas) Region(s Sprite) TextureRegion {
	if s == SpriteNone || int(s) >= len(a.regions) {
		return magentaRegion()
	}
	return a.regions[s]
}

// Len returns the number of registered sprites.
func (a *SpriteAtlas) Len() int {
	return len(a.names)
}

// page resolves the page image for a region.
func (a *SpriteAtlas) page(r TextureRegion) *ebiten.Image {
	if r.Page == magentaPlaceholderPage {
		return ensureMagentaImage()
	}
	if int(r.Page) < len(a.Pages) {
		return a.Pages[r.Page]
	}
	return nil
}

// magenta placeholder singleton; the UI is single-threaded
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// magentaPlaceholderPage is a sentinel page index used for magenta placeholders.
// It's high enough to never collide with real atlas pages.
const magentaPlaceholderPage = 0xFFFF

func magentaRegion() TextureRegion {
	return TextureRegion{
		Page:      magentaPlaceholderPage,
		Width:     1,
		Height:    1,
		OriginalW: 1,
		OriginalH: 1,
	}
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*SpriteAtlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("batchui: failed to parse atlas JSON: %w", err)
	}

	found := make(map[string]TextureRegion)
	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, found); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := parseHashFrames(probe.Frames, 0, found); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("batchui: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)

	atlas := &SpriteAtlas{
		Pages:   pages,
		names:   make(map[string]Sprite, len(names)),
		regions: make([]TextureRegion, 1, len(names)+1),
	}
	atlas.regions[0] = magentaRegion()
	for _, name := range names {
		atlas.names[name] = Sprite(len(atlas.regions))
		atlas.regions = append(atlas.regions, found[name])
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, pageIndex uint16, dst map[string]TextureRegion) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("batchui: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		dst[name] = frameToRegion(f, pageIndex)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, dst map[string]TextureRegion) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("batchui: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			dst[name] = frameToRegion(f, uint16(i))
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page uint16) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}
