// Package sanitizer provides input normalization functions for venue and
// booking data.
//
// All normalization functions are idempotent and handle invalid input
// gracefully, typically by returning empty strings or empty slices rather
// than errors. Phone numbers are converted to E.164, city and sport labels
// are lowercased with special characters stripped, and numeric values are
// clamped to valid ranges.
package sanitizer
