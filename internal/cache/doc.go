// Package cache provides a small LRU cache for rendered glyph data that is
// shared between engine passes.
package cache
