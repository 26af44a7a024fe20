// Package ui renders git command lifecycle events as console log lines.
//
// It is enabled when the console log format is selected, so operators see which
// object is being read while the report itself stays on stdout.
package ui
