package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for onboarding resources.
	uriScheme = "onboard://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "references",
		Name:        "references",
		Description: "The ordered reference library the assistant cites from",
		MIMEType:    "application/json",
	}, s.handleReferencesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "references/{number}",
		Name:        "reference-document",
		Description: "Markdown body of a reference document, numbered from 1",
		MIMEType:    "text/markdown",
	}, s.handleReferenceResource)
}

// handleReferencesResource returns the reference library index.
func (s *Server) handleReferencesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.References.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	type referenceInfo struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		URI    string `json:"uri"`
	}

	infos := make([]referenceInfo, len(docs))
	for i, doc := range docs {
		infos[i] = referenceInfo{
			Number: doc.Ordinal(),
			Title:  doc.Title,
			URI:    fmt.Sprintf("%sreferences/%d", uriScheme, doc.Ordinal()),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling references: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleReferenceResource returns the markdown body of one reference document.
func (s *Server) handleReferenceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	number := extractReferenceNumber(req.Params.URI)
	if number < 1 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.References.Get(ctx, number-1)
	if err != nil {
		if errors.Is(err, domain.ErrReferenceOutOfRange) || errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting reference: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     doc.Body,
		}},
	}, nil
}

// extractReferenceNumber extracts N from a URI like onboard://references/{N}.
// Returns 0 when the URI does not match.
func extractReferenceNumber(uri string) int {
	const prefix = uriScheme + "references/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}

	n, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
