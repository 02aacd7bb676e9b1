// Package history keeps a linear undo/redo log of code snapshots.
package history

// Log is a linear history of code snapshots with a cursor.
//
// Recording after an undo discards every snapshot after the cursor, so
// there is never more than one branch. A Log is not safe for concurrent use;
// callers that share one must serialize access.
type Log struct {
	snapshots []string
	pos       int
	limit     int
}

// New returns an empty log. A positive limit caps the number of retained
// snapshots; the oldest are dropped first. Zero means unbounded.
func New(limit int) *Log {
	if limit < 0 {
		limit = 0
	}
	return &Log{pos: -1, limit: limit}
}

// Record truncates any redo branch, then appends snapshot unless it equals
// the tip. It reports whether an entry was appended.
func (l *Log) Record(snapshot string) bool {
	l.snapshots = l.snapshots[:l.pos+1]
	if n := len(l.snapshots); n > 0 && l.snapshots[n-1] == snapshot {
		return false
	}

	l.snapshots = append(l.snapshots, snapshot)
	l.pos = len(l.snapshots) - 1

	if l.limit > 0 && len(l.snapshots) > l.limit {
		drop := len(l.snapshots) - l.limit
		l.snapshots = append([]string(nil), l.snapshots[drop:]...)
		l.pos -= drop
	}
	return true
}

// Undo moves the cursor back one step and returns the snapshot there.
// It reports false when there is nothing to undo.
func (l *Log) Undo() (string, bool) {
	if !l.CanUndo() {
		return "", false
	}
	l.pos--
	return l.snapshots[l.pos], true
}

// Redo moves the cursor forward one step and returns the snapshot there.
// It reports false at the tip of the log.
func (l *Log) Redo() (string, bool) {
	if !l.CanRedo() {
		return "", false
	}
	l.pos++
	return l.snapshots[l.pos], true
}

// CanUndo reports whether an earlier snapshot exists.
func (l *Log) CanUndo() bool { return l.pos > 0 }

// CanRedo reports whether a later snapshot exists.
func (l *Log) CanRedo() bool { return l.pos >= 0 && l.pos < len(l.snapshots)-1 }

// Current returns the snapshot at the cursor.
func (l *Log) Current() (string, bool) {
	if l.pos < 0 {
		return "", false
	}
	return l.snapshots[l.pos], true
}

// Position returns the cursor index, or -1 for an empty log.
func (l *Log) Position() int { return l.pos }

// Len returns the number of retained snapshots.
func (l *Log) Len() int { return len(l.snapshots) }

// Snapshots returns a copy of the retained snapshots, oldest first.
func (l *Log) Snapshots() []string {
	return append([]string(nil), l.snapshots...)
}

// State is a serializable view of a log.
type State struct {
	Snapshots []string `json:"snapshots"`
	Position  int      `json:"position"`
	CanUndo   bool     `json:"canUndo"`
	CanRedo   bool     `json:"canRedo"`
}

// State returns a copy of the log's contents and cursor.
func (l *Log) State() State {
	return State{
		Snapshots: l.Snapshots(),
		Position:  l.pos,
		CanUndo:   l.CanUndo(),
		CanRedo:   l.CanRedo(),
	}
}
