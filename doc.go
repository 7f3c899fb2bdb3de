// Package gesture recognizes long presses and double taps on a retained node
// tree driven by [Ebitengine] pointer input.
//
// Nodes form a document rooted at [Scene.Root]. Pointer presses and releases
// are hit-tested against node hit shapes and dispatched as touchstart and
// touchend events that bubble from the touched node to the root. Recognizers
// listen for those events on the node they are bound to.
//
// # Quick start
//
//	scene := gesture.NewScene()
//	list := gesture.NewBox("ul", "list", 0, 0, 320, 480)
//	scene.Root().AddChild(list)
//
//	ev := scene.Events()
//	ev.LongTap(list, gesture.LongTapHandlers{
//		LongPress: func(e *gesture.Event) { fmt.Println("long press") },
//		ShortTap:  func(e *gesture.Event) { fmt.Println("tap") },
//	}, "li.item")
//	ev.DoubleTap(list, func(e *gesture.Event) { fmt.Println("double tap") }, "")
//
//	gesture.Run(scene, gesture.RunConfig{Title: "Gestures", Width: 320, Height: 480})
//
// # Delegation
//
// When a delegate selector is given, an event only counts if a node between
// the touched node and the bound node (excluding the bound node) matches the
// selector. See [Resolve]. Selectors support type, "*", "#name" and ".class"
// compounds with descendant and child combinators.
//
// # Timing
//
// Time only advances through [Scene.Update] (one Ebitengine tick) or
// [Scene.UpdateWithDelta]. Timers, injected input ([Scene.InjectTap]) and
// JSON scripts ([LoadTestScript]) make gesture behavior reproducible in
// tests. Thresholds come from [Config], loadable from TOML with [LoadConfig].
//
// Pointer positions are screen pixels. A [Camera] set on the scene maps them
// into scene coordinates for scrolled or zoomed views.
//
// Recognized gestures are also reported to [Scene.OnGesture] observers and,
// through an [EntityStore], to the Donburi adapter in gesture/ecs.
//
// [Ebitengine]: https://ebitengine.org
package gesture
