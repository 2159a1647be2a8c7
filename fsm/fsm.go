// Package fsm provides the generic finite-state-machine runtime and the
// synchronous telegram messaging used by the tactical layer. States are
// stateless singletons shared by every machine of the same owner type;
// a Machine only holds references, never per-machine state copies.
package fsm

// State is the lifecycle contract of a single FSM state. Implementations
// carry no per-owner data; everything they need arrives via the owner.
type State[T any] interface {
	Enter(owner T)
	Execute(owner T)
	Exit(owner T)
	OnMessage(owner T, msg Telegram) bool
}

// Machine drives an owner through shared singleton states. The optional
// global state executes every update before the current state and gets
// first refusal on messages.
type Machine[T any] struct {
	owner    T
	current  State[T]
	previous State[T]
	global   State[T]
}

// New creates a machine for the given owner. Current/global states are
// installed by the owner's constructor before the first update.
func New[T any](owner T) *Machine[T] {
	return &Machine[T]{owner: owner}
}

// SetCurrent installs the current state without running Enter. Used only
// during construction.
func (m *Machine[T]) SetCurrent(s State[T]) { m.current = s }

// SetGlobal installs the global state.
func (m *Machine[T]) SetGlobal(s State[T]) { m.global = s }

// Current returns the current state.
func (m *Machine[T]) Current() State[T] { return m.current }

// Previous returns the state active before the last transition.
func (m *Machine[T]) Previous() State[T] { return m.previous }

// Update executes the global state (if any) followed by the current one.
func (m *Machine[T]) Update() {
	if m.global != nil {
		m.global.Execute(m.owner)
	}
	if m.current != nil {
		m.current.Execute(m.owner)
	}
}

// ChangeState exits the current state, records it as previous and enters
// the new one. Each hook runs exactly once. A nil state is a programming
// error.
func (m *Machine[T]) ChangeState(next State[T]) {
	if next == nil {
		panic("fsm: ChangeState called with nil state")
	}
	m.previous = m.current
	if m.current != nil {
		m.current.Exit(m.owner)
	}
	m.current = next
	m.current.Enter(m.owner)
}

// RevertToPrevious switches back to the previous state through the
// normal exit/enter cycle.
func (m *Machine[T]) RevertToPrevious() {
	m.ChangeState(m.previous)
}

// InState reports whether the current state is s. States are singletons,
// so identity comparison is sufficient.
func (m *Machine[T]) InState(s State[T]) bool {
	return m.current == s
}

// HandleMessage offers the telegram to the global state first, then the
// current state. It reports whether the message was consumed.
func (m *Machine[T]) HandleMessage(msg Telegram) bool {
	if m.global != nil && m.global.OnMessage(m.owner, msg) {
		return true
	}
	if m.current != nil && m.current.OnMessage(m.owner, msg) {
		return true
	}
	return false
}
