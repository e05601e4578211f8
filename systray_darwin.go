package main

import "context"

// The tray icon is skipped on macOS; the dock and app menu cover the same
// show/hide/quit actions.
func runSystray(ctx context.Context) {}
