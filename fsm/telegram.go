package fsm

import (
	"fmt"
	"log/slog"
)

// MessageKind is the fixed vocabulary of inter-agent messages.
type MessageKind int

const (
	// MsgGoHome orders a player back to its home region.
	MsgGoHome MessageKind = iota
	// MsgReceiveBall tells a player a pass is on its way to a target point.
	MsgReceiveBall
	// MsgSupportAttacker asks the best supporting player to make a run.
	MsgSupportAttacker
	// MsgPassToMe asks the ball carrier for an immediate pass.
	MsgPassToMe
	// MsgWait freezes a player in place (used while the keeper puts the
	// ball back into play).
	MsgWait
)

// String returns the message kind name for logs.
func (k MessageKind) String() string {
	switch k {
	case MsgGoHome:
		return "go_home"
	case MsgReceiveBall:
		return "receive_ball"
	case MsgSupportAttacker:
		return "support_attacker"
	case MsgPassToMe:
		return "pass_to_me"
	case MsgWait:
		return "wait"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Telegram is an immutable message value delivered synchronously between
// registered entities. It is never stored beyond the delivery call.
type Telegram struct {
	Sender   int
	Receiver int
	Kind     MessageKind
	Info     any
}

// Receiver is anything that can be registered with a Dispatcher.
type Receiver interface {
	ID() int
	HandleMessage(msg Telegram) bool
}

// Dispatcher delivers telegrams point-to-point, synchronously. There is
// exactly one logical thread of control per tick, so no locking.
type Dispatcher struct {
	entities map[int]Receiver
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{entities: make(map[int]Receiver)}
}

// Register adds an entity. Registering the same id twice is a
// programming error.
func (d *Dispatcher) Register(r Receiver) {
	if _, ok := d.entities[r.ID()]; ok {
		panic(fmt.Sprintf("fsm: duplicate dispatcher registration for id %d", r.ID()))
	}
	d.entities[r.ID()] = r
}

// Dispatch delivers a telegram to the receiver immediately. Unconsumed
// or unroutable messages are dropped; there is no dead-letter queue.
func (d *Dispatcher) Dispatch(sender, receiver int, kind MessageKind, info any) {
	target, ok := d.entities[receiver]
	if !ok {
		slog.Debug("telegram to unknown receiver dropped",
			"sender", sender, "receiver", receiver, "kind", kind.String())
		return
	}

	msg := Telegram{Sender: sender, Receiver: receiver, Kind: kind, Info: info}
	if !target.HandleMessage(msg) {
		slog.Debug("telegram not consumed",
			"sender", sender, "receiver", receiver, "kind", kind.String())
	}
}
