package payrollrun

import "sync"

// Progress is one per-employee completion tick emitted by a running batch.
type Progress struct {
	SessionID      string `json:"session_id"`
	Status         string `json:"status"`
	TotalEmployees int    `json:"total_employees"`
	ProcessedCount int    `json:"processed_count"`
	EmployeeID     string `json:"employee_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ProgressBroker fans out batch progress to in-process subscribers, so the
// status endpoint can stream without polling the session row.
type ProgressBroker struct {
	mu   sync.RWMutex
	subs map[string]map[chan Progress]struct{}
}

func NewProgressBroker() *ProgressBroker {
	return &ProgressBroker{subs: make(map[string]map[chan Progress]struct{})}
}

// Subscribe returns a channel of progress ticks for one session and a cancel
// func the caller must invoke when done.
func (b *ProgressBroker) Subscribe(sessionID string) (<-chan Progress, func()) {
	ch := make(chan Progress, 16)

	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan Progress]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[sessionID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(b.subs, sessionID)
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a tick to every subscriber. A slow subscriber drops ticks
// rather than blocking the batch.
func (b *ProgressBroker) Publish(p Progress) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[p.SessionID] {
		select {
		case ch <- p:
		default:
		}
	}
}
