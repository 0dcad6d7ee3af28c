package commerce

import (
	"sync"
	"time"
)

type NoticeKind string

const (
	// NoticeNetwork: transport failure, the operation was rolled back and
	// can be retried as-is.
	NoticeNetwork NoticeKind = "network"
	// NoticeRejected: the upstream gave a definitive answer (out of stock,
	// invalid request); the upstream message is shown verbatim.
	NoticeRejected NoticeKind = "rejected"
	// NoticeLoginRequired: local rejection of an unauthenticated mutation.
	NoticeLoginRequired NoticeKind = "loginRequired"
	// NoticeInvalid: local validation rejection (e.g. quantity < 1).
	NoticeInvalid NoticeKind = "invalid"
)

type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
}

// Notifier receives user-visible notices raised by store operations.
type Notifier interface {
	Notify(kind NoticeKind, message string)
}

const maxNotices = 20

// MemoryNotifier buffers notices per visitor until the frontend drains them.
type MemoryNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

func (n *MemoryNotifier) Notify(kind NoticeKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice{Kind: kind, Message: message, Timestamp: time.Now()})
	if len(n.notices) > maxNotices {
		n.notices = n.notices[len(n.notices)-maxNotices:]
	}
}

// Drain returns buffered notices and empties the buffer.
func (n *MemoryNotifier) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.notices
	n.notices = nil
	return out
}
