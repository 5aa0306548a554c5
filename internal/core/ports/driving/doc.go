// Package driving defines the interfaces the presentation adapters (TUI,
// CLI, HTTP API, MCP server) call into: the chat turn, citation resolution,
// the reference library, admin documents and settings.
//
// Implementations live in internal/core/services.
package driving
