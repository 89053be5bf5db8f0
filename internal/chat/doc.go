// Package chat projects a moose into text channels.
//
// RenderIRC turns rows of palette colours into mIRC-coloured lines, one "@"
// block per painted cell and a blank per transparent cell. RenderTerminal
// does the same for an ANSI terminal. Pacer sends those lines to a
// rate-limited channel in small batches, and Bot ties lookup, trim,
// render, pacing and the global cooldown together for a chat command.
//
// # Flood Control
//
// IRC servers kick clients that send too many lines at once, so a moose is
// sent at most LinesPerBatch lines at a time with Interval between batches.
// Sends to the same target never interleave: a second Say on a target
// waits until the first one has finished or been cancelled.
//
// # Cancellation
//
// Say stops at the next batch boundary when its context is cancelled (for
// example when the connection drops) and reports how many lines were sent,
// so the caller can resume with the remaining lines.
package chat
