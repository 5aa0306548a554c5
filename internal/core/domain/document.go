package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// StoredDocument is an admin-uploaded document held in the local store.
// It is separate from the reference library and never consulted by the
// citation pipeline.
type StoredDocument struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the file name, link title or admin-supplied label.
	Name string

	// Type is the MIME type recorded at intake.
	Type string

	// Size is the original size in bytes.
	Size int64

	// Content is text for text-like types and a base64 data URL otherwise.
	Content string

	// UploadedAt is when the document was added.
	UploadedAt time.Time

	// RoleIDs tags the document with the roles it is relevant to.
	RoleIDs []string
}

// HasRole returns true if the document is tagged with the role.
func (d StoredDocument) HasRole(roleID string) bool {
	for _, id := range d.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// IsDataURL returns true if Content holds an encoded binary payload.
func (d StoredDocument) IsDataURL() bool {
	return strings.HasPrefix(d.Content, "data:")
}

// Role is a job role documents can be tagged with.
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Upload is raw intake before normalisation.
type Upload struct {
	// Name is the file name or link URL.
	Name string

	// MIMEType is the declared or detected content type.
	MIMEType string

	// Content is the raw payload.
	Content []byte

	// RoleIDs are applied to the stored document.
	RoleIDs []string
}

// AcceptedExtensions lists the file extensions the admin intake accepts.
func AcceptedExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".txt", ".md", ".json", ".csv"}
}

// IsAcceptedFile returns true if the file name has an accepted extension.
func IsAcceptedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range AcceptedExtensions() {
		if ext == accepted {
			return true
		}
	}
	return false
}

// MIMETypeForFile maps an accepted file name to its MIME type.
func MIMETypeForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

// FormatSize renders a byte count as Bytes, KB, MB or GB with up to two decimals.
func FormatSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	value := float64(size)
	exp := 0
	for value >= 1024 && exp < len(units)-1 {
		value /= 1024
		exp++
	}
	formatted := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
	return formatted + " " + units[exp]
}
