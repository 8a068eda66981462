// Package pipeline implements the stages of an icon font build:
//   - Resolve turns the mapping table into glyph names and vector ids
//   - Normalize repairs the source SVGs into scratch files, in parallel
//   - Merge streams the repaired icons into one SVG font and assigns code points
//   - Transcode converts the SVG font into WOFF
//   - Descriptor renders the JSON icon theme descriptor
//
// Stages exchange plain values: no stage reads state written by another
// except through its arguments. Writing the final outputs is left to the
// caller so that nothing reaches the output directory unless every stage
// succeeded.
package pipeline
