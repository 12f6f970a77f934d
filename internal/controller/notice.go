package controller

import "fmt"

// Notice reports a failed store call.
type Notice struct {
	Op  string
	ID  string // empty for list and create
	Err error
}

func (n Notice) String() string {
	return fmt.Sprintf("%s failed: %v", n.Op, n.Err)
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type NopNotifier struct{}

func (NopNotifier) Notify(Notice) {}

// ChanNotifier forwards notices to a channel without blocking; notices are
// dropped while the channel is full.
type ChanNotifier chan Notice

func (ch ChanNotifier) Notify(n Notice) { ch.TryNotify(n) }

// TryNotify reports whether n was queued.
func (ch ChanNotifier) TryNotify(n Notice) bool {
	select {
	case ch <- n:
		return true
	default:
		return false
	}
}

// tryNotifier is a Notifier that can tell when a notice was not delivered.
type tryNotifier interface {
	TryNotify(Notice) bool
}
