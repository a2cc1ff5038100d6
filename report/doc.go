// Package report writes glyphfit results and diagnostic artifacts:
// distance-field images, step-scan traces and result documents.
package report
