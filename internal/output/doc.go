// Package output handles everything clickup-export writes to the terminal.
//
// Commands never print directly. They build a Printer for the command's
// writer and route results, warnings and errors through it, so every command
// works both for people at a terminal and for scripts reading --json.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), isJSON, output.IsTTY(cmd.OutOrStdout()))
//	printer.WithStderr(cmd.ErrOrStderr())
//
//	printer.Success(map[string]any{"message": "Exported 12 pages"})
//	printer.Warn("name collision in %s", dir)
//	printer.Error(err)
//
// In JSON mode, success payloads and errors are written as single JSON
// objects on stdout. In human mode, errors, warnings and progress lines go to
// the stderr writer and are styled with lipgloss when the output is a TTY.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: export completed
//	output.ExitUserError   // 1: bad flags, missing credentials, invalid input
//	output.ExitSystemError // 2: filesystem or ClickUp API failure
//	output.ExitConflict    // 3: sanitized name collision under --on-collision=fail
//
// Errors built with NewUserError, NewSystemError, NewSystemErrorWithCause and
// NewConflictError carry their exit code; GetExitCode recovers it in main.
package output
