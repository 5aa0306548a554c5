package services

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
)

// fallbackSystemPrompt is used when no PromptStore is configured.
const fallbackSystemPrompt = `You are an AI onboarding assistant helping a new {{.RoleTitle}}.
{{.RoleDescription}}
Be friendly, helpful, and concise. Keep responses under 200 words unless more detail is requested.
{{if .Documents}}
When you use one of the reference documents below, cite it once as [N]["exact quote"],
where N is the document number and the quote is copied word for word from it.
{{range .Documents}}
[{{.Number}}] {{.Title}}
{{.Body}}
{{end}}{{end}}`

// PromptBuilder renders the system prompt from a template with named slots.
type PromptBuilder struct {
	store      driven.PromptStore
	references driving.ReferenceService
}

// NewPromptBuilder creates a prompt builder. store may be nil.
func NewPromptBuilder(store driven.PromptStore, references driving.ReferenceService) *PromptBuilder {
	return &PromptBuilder{
		store:      store,
		references: references,
	}
}

// Build renders the system prompt for the given assistant role.
func (b *PromptBuilder) Build(ctx context.Context, assistant domain.AssistantSettings) (string, error) {
	var docs []domain.ReferenceDocument
	if b.references != nil {
		var err error
		docs, err = b.references.List(ctx)
		if err != nil {
			return "", err
		}
	}

	tmpl, err := template.New(driven.PromptChatSystem).
		Option("missingkey=error").
		Parse(b.loadTemplate())
	if err != nil {
		return "", fmt.Errorf("parse %s prompt: %w", driven.PromptChatSystem, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, domain.NewPromptSlots(assistant, docs)); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", driven.PromptChatSystem, err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// loadTemplate loads the template from the store, falling back to the default if unavailable.
func (b *PromptBuilder) loadTemplate() string {
	if b.store == nil {
		return fallbackSystemPrompt
	}
	tmpl, err := b.store.Load(driven.PromptChatSystem)
	if err != nil || strings.TrimSpace(tmpl) == "" {
		return fallbackSystemPrompt
	}
	return tmpl
}
