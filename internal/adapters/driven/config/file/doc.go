// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.onboard.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable prompt templates, reloaded on change
package file
