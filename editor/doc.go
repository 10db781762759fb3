// Package editor provides a Bubble Tea mention field backed by the buffer and
// mention packages.
//
// The Model owns a buffer for keystroke editing and a mention.Engine that
// turns "@query" fragments into inline mentions. It handles input routing,
// the suggestion popup, viewport scrolling and rendering of mention labels,
// and reports changes to the host through callbacks.
package editor
