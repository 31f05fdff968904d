// Package export serializes generated clouds.
//
// A [Document] carries the quantum state, the generation parameters and the
// samples. It can be written as JSON, CSV, MessagePack or a projected SVG
// scatter plot; see [Write].
package export
