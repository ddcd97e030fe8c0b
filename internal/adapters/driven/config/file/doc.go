// Package file provides file-based configuration and prompt storage.
//
// Configuration lives in a TOML file with nested tables flattened to
// dot-notation keys. Prompts live as user-editable text files with
// embedded defaults as fallback.
package file
