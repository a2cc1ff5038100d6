// Package filter provides the convolution kernels used to analyze glyph
// rasters and distance fields:
//   - Gaussian blur on float planes (separable, edge-extended)
//   - 3x3 Sobel derivatives with mirrored ("reflect") boundaries
//
// All functions allocate their outputs and never modify their inputs, so
// they are safe to call concurrently on shared data.
package filter
