// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ReferenceSource: The fixed, ordered reference documents
//   - MarkdownRenderer: Renders markdown into text and highlighted HTML
//   - PromptStore: System prompt templates
//   - DocumentStore: Admin-uploaded document persistence
//   - RoleStore: Role tag persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Chat completions. Without it, every question gets a canned answer.
//   - LinkFetcher: Link intake. Without it, documents can only be added from files or text.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
