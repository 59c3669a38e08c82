// Package polaroid renders an interactive stack of framed photos with
// [Ebitengine].
//
// Photos rest on top of each other, each one [StackConfig.DepthStep] closer to
// a perspective [Camera]. Pressing on a photo lifts it in front of the stack;
// dragging moves it across a plane at that depth, where it stays when
// released. A press and release that travel less than the click threshold
// reveal the photo's message for a fixed delay and send the photo back to
// its place in the stack.
//
// # Scene state
//
// An [App] owns the state and passes it explicitly to the parts that use it:
//
//   - [Stack] holds the photos and maps every intersectable [Surface] back to
//     the photo that owns it.
//   - [Picker] casts a ray through a screen point and returns the nearest hit.
//     It never mutates the scene.
//   - [DragController] is the only thing that mutates photos in response to
//     pointer input.
//   - [Presenter] shows messages from a [Catalog] and hides them with a
//     cancellable [Timer] from a cooperative [Scheduler].
//
// Animations are explicit per-photo transitions built on gween and advanced
// by the game loop tick. Nothing runs concurrently with the loop except image
// fetching, whose results are handed over on a channel and attached between
// frames.
//
// # Running
//
//	cfg, _ := polaroid.LoadConfig()
//	err := polaroid.Run(ctx, cfg, polaroid.DefaultAlbum(), nil)
//
// For automated runs, attach a [TestRunner] built from a JSON script of
// clicks, drags, waits, message checks and screenshots.
//
// [Ebitengine]: https://ebitengine.org
package polaroid
