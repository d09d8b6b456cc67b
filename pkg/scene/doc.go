// Package scene implements artboards: fixed-size canvases holding an ordered
// list of shape instances.
//
// # Paint order
//
// Elements are painted in slice order, first element at the bottom.
// Compilation of stale instances runs concurrently, but assembly into markup
// or document pages always follows element order, so the output does not
// depend on which compile finishes first.
//
// # Configuration
//
// [Scene.Configure] fans one config object out to every element
// concurrently and returns once all of them are done. Each element derives
// its props from its own defaults, so configuring is idempotent.
//
// # Export
//
// A scene exports to SVG, PNG, JPEG, WEBP, PDF and JSON. With configs every
// format renders once per config. PDF additionally supports a merged mode
// where each config becomes one page of a single document; graphics of
// elements a config did not invalidate are reused across pages.
//
// Scenes derived from a loaded PDF page can only be exported as PDF or JSON.
package scene
