//go:build windows

package progress

// The Windows console does not support the ANSI rewrite sequence reliably;
// always use line mode.
func isTerminal() bool { return false }
