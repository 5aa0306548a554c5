// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The citation pipeline lives here: ExtractCitation parses a marker from a
// reply, FindQuote locates the quoted passage in rendered text, and
// ChatService wires both into one turn of a conversation.
//
// Services are pure Go with no CGO.
package services
