// Package shape provides shape methods, their registry and placed shape
// instances.
//
// # Methods and Registries
//
// A [Method] binds a name to a [Compiler] (props to vector fragment) and an
// optional [Configurer] (defaults plus config to new props). Methods live in
// an explicit [Registry] value; there is no process-wide registry.
//
//	reg := shape.NewRegistry()
//	err := reg.Register(shape.Method{Name: "dot", Compiler: compileDot})
//
// # Instances
//
// An [Instance] is one placed occurrence of a method. It keeps the props it
// was created with (never mutated), a working copy, a position, a scale,
// an [Anchor] and a compiled fragment cache.
//
// The cache is a two-state machine:
//
//	Stale --Compile()--> Fresh
//	Fresh --Configure(cfg) / SetProps / Transform / Reset--> Stale
//
// Reads that need compiled output (Size, Nodes, exports) compile first when
// the instance is Stale.
//
// # Exports
//
// Instances export themselves standalone (canvas sized to the scaled
// viewBox) as SVG, PNG, JPEG, WEBP, PDF or JSON. Every export accepts a list
// of configs and produces one output per entry.
package shape
