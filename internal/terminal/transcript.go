package terminal

import "sync"

// #region transcript
// Transcript is an append-only, arrival-ordered list of messages. Entries are
// never reordered or deduplicated.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// Append adds m at the end.
func (t *Transcript) Append(m Message) {
	t.mu.Lock()
	t.messages = append(t.messages, m)
	t.mu.Unlock()
}

// Messages returns a copy of all entries in arrival order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
// #endregion transcript
