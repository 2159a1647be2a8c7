package fsm

import "testing"

type fakeReceiver struct {
	id       int
	consumes bool
	got      []Telegram
}

func (f *fakeReceiver) ID() int { return f.id }
func (f *fakeReceiver) HandleMessage(msg Telegram) bool {
	f.got = append(f.got, msg)
	return f.consumes
}

func TestDispatchDeliversSynchronously(t *testing.T) {
	d := NewDispatcher()
	rcv := &fakeReceiver{id: 4, consumes: true}
	d.Register(rcv)

	d.Dispatch(1, 4, MsgPassToMe, nil)

	if len(rcv.got) != 1 {
		t.Fatalf("received %d telegrams, want 1", len(rcv.got))
	}
	msg := rcv.got[0]
	if msg.Sender != 1 || msg.Receiver != 4 || msg.Kind != MsgPassToMe {
		t.Errorf("telegram = %+v", msg)
	}
}

func TestDispatchUnknownReceiverDropped(t *testing.T) {
	d := NewDispatcher()
	// Must not panic, just drop.
	d.Dispatch(1, 99, MsgGoHome, nil)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	d := NewDispatcher()
	d.Register(&fakeReceiver{id: 2})
	d.Register(&fakeReceiver{id: 2})
}
