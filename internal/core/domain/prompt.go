package domain

// PromptSlots are the named values substituted into the system prompt template.
type PromptSlots struct {
	RoleTitle       string
	RoleDescription string
	Documents       []PromptDocument
}

// PromptDocument lists one reference document in the system prompt.
type PromptDocument struct {
	// Number is the 1-based ordinal the assistant must cite.
	Number int
	Title  string
	Body   string
}

// NewPromptSlots builds slots from assistant settings and the reference library.
func NewPromptSlots(assistant AssistantSettings, docs []ReferenceDocument) PromptSlots {
	slots := PromptSlots{
		RoleTitle:       assistant.RoleTitle,
		RoleDescription: assistant.RoleDescription,
		Documents:       make([]PromptDocument, 0, len(docs)),
	}
	for _, d := range docs {
		slots.Documents = append(slots.Documents, PromptDocument{
			Number: d.Ordinal(),
			Title:  d.Title,
			Body:   d.Body,
		})
	}
	return slots
}
