package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

func (s *Server) listDocuments(c *gin.Context) {
	docs, err := s.ports.Documents.ListByRole(c.Request.Context(), c.Query("role"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := make([]DocumentResponse, len(docs))
	for i := range docs {
		resp[i] = toDocumentResponse(docs[i], false)
	}
	c.JSON(http.StatusOK, gin.H{"documents": resp})
}

func (s *Server) getDocument(c *gin.Context) {
	doc, err := s.ports.Documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(*doc, true))
}

// createDocument accepts a multipart file upload or a JSON body with
// either text or a url.
func (s *Server) createDocument(c *gin.Context) {
	var (
		doc *domain.StoredDocument
		err error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		doc, err = s.uploadDocument(c)
	} else {
		var req CreateDocumentRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindErr.Error()})
			return
		}
		switch {
		case req.URL != "":
			doc, err = s.ports.Documents.AddLink(c.Request.Context(), req.URL, req.RoleIDs)
		case req.Text != "":
			doc, err = s.ports.Documents.AddText(c.Request.Context(), req.Name, req.Text, req.RoleIDs)
		default:
			err = fmt.Errorf("%w: text or url is required", domain.ErrInvalidInput)
		}
	}

	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toDocumentResponse(*doc, false))
}

func (s *Server) uploadDocument(c *gin.Context) (*domain.StoredDocument, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: file exceeds %s", domain.ErrInvalidInput, domain.FormatSize(maxErr.Limit))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return s.ports.Documents.Upload(c.Request.Context(), domain.Upload{
		Name:     header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Content:  content,
		RoleIDs:  c.PostFormArray("role_ids"),
	})
}

func (s *Server) deleteDocument(c *gin.Context) {
	if err := s.ports.Documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listRoles(c *gin.Context) {
	roles, err := s.ports.Documents.ListRoles(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := make([]RoleResponse, len(roles))
	for i, r := range roles {
		resp[i] = toRoleResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"roles": resp})
}

func (s *Server) createRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := s.ports.Documents.AddRole(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toRoleResponse(*role))
}

func (s *Server) deleteRole(c *gin.Context) {
	if err := s.ports.Documents.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
