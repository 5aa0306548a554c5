// Package html provides a Normaliser implementation for HTML pages.
// It keeps the readable text, dropping tags, scripts and styles and
// decoding entities, so linked pages are stored as plain text.
package html
