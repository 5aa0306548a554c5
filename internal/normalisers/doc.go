// Package normalisers turns admin uploads into stored documents. Each
// sub-package handles a family of MIME types; the Registry picks the
// highest-priority normaliser for an upload and falls back to the data
// URL encoder for anything else.
//
// Normalisers are registered with the Registry at startup via
// RegisterDefaults.
package normalisers
