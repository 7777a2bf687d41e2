// Package render groups the output stages for Mondrian layouts.
//
// Rendering is split from generation: [layout.Build] produces a frame and
// the [sink] subpackage turns that frame into SVG, PNG, JSON or terminal
// text. Sinks never mutate a layout and never consume randomness, so a
// frame renders identically in every format.
//
// [layout.Build]: github.com/matzehuels/mondrian/pkg/layout.Build
// [sink]: github.com/matzehuels/mondrian/pkg/render/sink
package render
