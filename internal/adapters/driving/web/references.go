package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) listReferences(c *gin.Context) {
	docs, err := s.ports.References.List(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	refs := make([]ReferenceResponse, len(docs))
	for i, d := range docs {
		refs[i] = ReferenceResponse{Index: d.Index, Document: d.Ordinal(), Title: d.Title}
	}
	c.JSON(http.StatusOK, gin.H{"references": refs})
}

// highlightReference renders the reference at the 0-based :index with the
// quote query parameter marked.
func (s *Server) highlightReference(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a non-negative integer"})
		return
	}

	quote := c.Query("quote")
	doc, err := s.ports.Citation.Highlight(c.Request.Context(), index, quote)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, HighlightResponse{
		Index:       doc.Document.Index,
		Title:       doc.Document.Title,
		Quote:       quote,
		Found:       doc.Highlighted(),
		Highlighted: doc.HighlightedText(),
		HTML:        doc.HTML,
	})
}
