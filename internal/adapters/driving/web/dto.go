package web

import (
	"time"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// MessageResponse is one transcript entry.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// CitationResponse is a resolved citation. Document is 1-based.
type CitationResponse struct {
	Document int    `json:"document"`
	Index    int    `json:"index"`
	Quote    string `json:"quote"`
}

// TranscriptResponse is the conversation state.
type TranscriptResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Awaiting   bool              `json:"awaiting"`
	Configured bool              `json:"configured"`
	Model      string            `json:"model,omitempty"`
}

// SubmitRequest is a question from the user.
type SubmitRequest struct {
	Text string `json:"text" binding:"required"`
}

// TurnResponse is the outcome of one turn.
type TurnResponse struct {
	User      MessageResponse   `json:"user"`
	Assistant MessageResponse   `json:"assistant"`
	Citation  *CitationResponse `json:"citation,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// ReferenceResponse describes one reference document.
type ReferenceResponse struct {
	Index    int    `json:"index"`
	Document int    `json:"document"`
	Title    string `json:"title"`
}

// HighlightResponse is a reference rendered with the quote marked.
type HighlightResponse struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Quote       string `json:"quote"`
	Found       bool   `json:"found"`
	Highlighted string `json:"highlighted,omitempty"`
	HTML        string `json:"html"`
}

// DocumentResponse is a stored admin document. Content is omitted from listings.
type DocumentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	SizeLabel  string    `json:"size_label"`
	Content    string    `json:"content,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
	RoleIDs    []string  `json:"role_ids"`
}

// CreateDocumentRequest adds pasted text or a link.
type CreateDocumentRequest struct {
	Name    string   `json:"name"`
	Text    string   `json:"text"`
	URL     string   `json:"url"`
	RoleIDs []string `json:"role_ids"`
}

// RoleResponse is a job role.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRoleRequest creates a role.
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func toMessageResponse(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Text:      m.Text,
		Sender:    m.Sender.String(),
		Timestamp: m.Timestamp,
	}
}

func toCitationResponse(ref *domain.CitationReference) *CitationResponse {
	if ref == nil {
		return nil
	}
	return &CitationResponse{
		Document: ref.DocumentIndex + 1,
		Index:    ref.DocumentIndex,
		Quote:    ref.QuotedText,
	}
}

func toDocumentResponse(d domain.StoredDocument, withContent bool) DocumentResponse {
	resp := DocumentResponse{
		ID:         d.ID,
		Name:       d.Name,
		Type:       d.Type,
		Size:       d.Size,
		SizeLabel:  domain.FormatSize(d.Size),
		UploadedAt: d.UploadedAt,
		RoleIDs:    d.RoleIDs,
	}
	if resp.RoleIDs == nil {
		resp.RoleIDs = []string{}
	}
	if withContent {
		resp.Content = d.Content
	}
	return resp
}

func toRoleResponse(r domain.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
