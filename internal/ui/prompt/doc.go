// Package prompt provides simple interactive prompts.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input with default and validation
//   - [Select]: Single selection from a list
//
// [Prompter] bundles the three behind the question-asking interface the
// development team resolution uses, turning cancellation into
// [ErrCancelled] and refusing to prompt without a terminal.
//
// All prompts render on stderr.
package prompt
