// Package sanitizer normalizes guest input before validation and storage.
//
// All functions are idempotent and never fail: invalid input comes back
// trimmed or empty and is rejected later by the validators.
//
// Normalization includes:
//   - Emails: trimmed and lower-cased, so ownership checks compare like with like
//   - Text: whitespace collapsed, leading/trailing spaces removed
//   - URLs: trimmed, scheme and host lower-cased, tracking parameters dropped
//   - Dates: YYYY-MM-DD kept as is, RFC 3339 timestamps reduced to their UTC date
package sanitizer
