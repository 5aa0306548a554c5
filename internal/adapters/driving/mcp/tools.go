package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// ExtractCitationInput is the input schema for the extract_citation tool.
type ExtractCitationInput struct {
	Text string `json:"text" jsonschema:"an assistant reply that may contain a [N][\"quote\"] marker"`
}

// ExtractCitationOutput is the output schema for the extract_citation tool.
type ExtractCitationOutput struct {
	Found    bool   `json:"found"`
	Document int    `json:"document,omitempty"`
	Quote    string `json:"quote,omitempty"`
	Resolves bool   `json:"resolves"`
}

// HighlightInput is the input schema for the highlight_quote tool.
type HighlightInput struct {
	Document int    `json:"document" jsonschema:"1-based reference document number"`
	Quote    string `json:"quote" jsonschema:"passage to highlight"`
}

// HighlightOutput is the output schema for the highlight_quote tool.
type HighlightOutput struct {
	Title       string `json:"title"`
	Found       bool   `json:"found"`
	Highlighted string `json:"highlighted,omitempty"`
	HTML        string `json:"html"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"question for the onboarding assistant"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Reply    string                 `json:"reply"`
	Citation *ExtractCitationOutput `json:"citation,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_citation",
		Description: "Parse the first citation marker from an assistant reply",
	}, s.handleExtractCitation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_quote",
		Description: "Render a reference document with a quoted passage highlighted",
	}, s.handleHighlight)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask the onboarding assistant a question",
	}, s.handleAsk)
}

// handleExtractCitation handles the extract_citation tool invocation.
func (s *Server) handleExtractCitation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractCitationInput,
) (*mcp.CallToolResult, ExtractCitationOutput, error) {
	ref, ok := s.ports.Citation.Extract(input.Text)
	if !ok {
		return nil, ExtractCitationOutput{}, nil
	}

	count, err := s.ports.References.Count(ctx)
	if err != nil {
		return nil, ExtractCitationOutput{}, fmt.Errorf("counting references: %w", err)
	}

	return nil, citationOutput(ref, count), nil
}

// handleHighlight handles the highlight_quote tool invocation.
func (s *Server) handleHighlight(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HighlightInput,
) (*mcp.CallToolResult, HighlightOutput, error) {
	if input.Document < 1 {
		return nil, HighlightOutput{}, fmt.Errorf("%w: document numbers start at 1", domain.ErrInvalidInput)
	}

	doc, err := s.ports.Citation.Highlight(ctx, input.Document-1, input.Quote)
	if err != nil {
		return nil, HighlightOutput{}, err
	}

	return nil, HighlightOutput{
		Title:       doc.Document.Title,
		Found:       doc.Highlighted(),
		Highlighted: doc.HighlightedText(),
		HTML:        doc.HTML,
	}, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Chat == nil {
		return nil, AskOutput{}, domain.ErrLLMUnavailable
	}

	result, err := s.ports.Chat.Submit(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	out := AskOutput{Reply: result.Assistant.Text}
	if result.Err != nil {
		out.Error = result.Err.Error()
	}
	// Chat only reports citations that already resolved.
	if result.Citation != nil {
		out.Citation = &ExtractCitationOutput{
			Found:    true,
			Document: result.Citation.DocumentIndex + 1,
			Quote:    result.Citation.QuotedText,
			Resolves: true,
		}
	}
	return nil, out, nil
}

// citationOutput converts a reference to its 1-based wire form.
func citationOutput(ref domain.CitationReference, count int) ExtractCitationOutput {
	return ExtractCitationOutput{
		Found:    true,
		Document: ref.DocumentIndex + 1,
		Quote:    ref.QuotedText,
		Resolves: ref.InRange(count),
	}
}
