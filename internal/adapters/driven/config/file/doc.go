// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the shopdesk config directory (~/.shopdesk).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable synthesis prompts
package file
