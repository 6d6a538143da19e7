// Package batchui is a retained-mode render layer for immediate-mode tool
// UIs on [Ebitengine].
//
// Immediate-mode panels are cheap to write but expensive to redraw every
// frame. batchui records what a panel draws into a [Batch], caches it, and
// only replays the panel when something it depends on changes.
//
// # Batches
//
// A [Batch] holds the draw commands one panel produced during its last
// build: filled rectangles, sprites from the shared [SpriteAtlas], custom
// [Renderable] content such as text labels, and nested batches for child
// panels that cache independently. Marking a batch dirty with
// [Batch.SetDirty] also marks its ancestors, so the next [Batch.Present]
// rebuilds exactly the stale part of the tree:
//
//	list := batchui.NewBatch(panel)
//	root.DrawSubBatch(batchui.Rect{X: 0, Y: 40, Width: 300, Height: 400}, list, nil)
//	...
//	list.SetDirty() // rebuilds list (and root) on the next present
//
// Present walks the tree depth-first, culls everything outside the clip
// rectangle, and coalesces color changes. [Batch.Raycast] answers "which
// interactive element is under this point" against the same cached data.
//
// # Gui
//
// [Gui] is the immediate-mode builder most code uses instead of calling the
// batch directly. Its build function runs for build passes, which record
// draw commands, and for pointer event passes, which only lay out. The same
// layout code therefore answers pointer queries against the rectangles it
// drew, and drives drag and drop through [Gui.InitiateDrag] and
// [Gui.ConsumeDrag].
//
// # Window
//
// [Window] hosts a root Gui as an [ebiten.Game]: it rebuilds the root batch
// when dirty or resized, presents it through a [Screen], and dispatches
// mouse input to [Handle] callbacks and tracked Guis. Input can be injected
// and scripted with a [TestRunner] for headless visual tests.
//
// [Ebitengine]: https://ebitengine.org
package batchui
