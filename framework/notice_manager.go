package framework

import (
	"sync"
)

type NoticeKind int

const (
	NoticeTurnInstructions NoticeKind = iota + 1
	NoticeScaleBar
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeTurnInstructions:
		return "turn_instructions"
	case NoticeScaleBar:
		return "scale_bar"
	default:
		return "unknown"
	}
}

// Notice is something drawn over the map, such as a legend.
type Notice interface {
	Serial() uint64
}

// NoticeManager holds the notices drawn over a map. It keeps them alive for as long as the map is.
type NoticeManager struct {
	mu      sync.RWMutex
	notices map[NoticeKind]Notice
}

func NewNoticeManager() *NoticeManager {
	return &NoticeManager{
		notices: make(map[NoticeKind]Notice),
	}
}

// Set replaces the notice of this kind. A nil notice removes it.
func (nm *NoticeManager) Set(kind NoticeKind, notice Notice) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	if notice == nil {
		delete(nm.notices, kind)
		return
	}
	nm.notices[kind] = notice
}

// Get returns nil if there is no notice of this kind
func (nm *NoticeManager) Get(kind NoticeKind) Notice {
	nm.mu.RLock()
	defer nm.mu.RUnlock()

	return nm.notices[kind]
}

func (nm *NoticeManager) Len() int {
	nm.mu.RLock()
	defer nm.mu.RUnlock()

	return len(nm.notices)
}
