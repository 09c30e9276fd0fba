package main

const historyLimit = 50

// EditHistory is the linear undo/redo log of the open quiz. Every entry is a
// full deep copy; pos indexes the snapshot that matches the working copy and
// is -1 while the log is empty.
type EditHistory struct {
	snapshots []Quiz
	pos       int
}

func NewEditHistory() *EditHistory {
	return &EditHistory{pos: -1}
}

// Reset discards the log and reseeds it with q. A nil quiz leaves it empty.
func (h *EditHistory) Reset(q *Quiz) {
	h.snapshots = nil
	h.pos = -1
	if q != nil {
		h.snapshots = []Quiz{q.Clone()}
		h.pos = 0
	}
}

// Record appends a snapshot of q, dropping any redo branch first.
func (h *EditHistory) Record(q *Quiz) {
	if q == nil {
		return
	}
	h.snapshots = append(h.snapshots[:h.pos+1], q.Clone())
	if len(h.snapshots) > historyLimit {
		// evict the oldest; copy so the backing array does not grow forever
		h.snapshots = append([]Quiz(nil), h.snapshots[len(h.snapshots)-historyLimit:]...)
	}
	h.pos = min(h.pos+1, historyLimit-1)
}

func (h *EditHistory) Undo() (Quiz, bool) {
	if !h.CanUndo() {
		return Quiz{}, false
	}
	h.pos--
	return h.snapshots[h.pos].Clone(), true
}

func (h *EditHistory) Redo() (Quiz, bool) {
	if !h.CanRedo() {
		return Quiz{}, false
	}
	h.pos++
	return h.snapshots[h.pos].Clone(), true
}

func (h *EditHistory) CanUndo() bool { return h.pos > 0 }

func (h *EditHistory) CanRedo() bool { return h.pos < len(h.snapshots)-1 }

func (h *EditHistory) Len() int { return len(h.snapshots) }

func (h *EditHistory) Position() int { return h.pos }
