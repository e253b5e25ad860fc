// internal/event/event_test.go
package event

import "testing"

type countingListener struct {
	calls int
	last  Event
}

func (c *countingListener) OnEvent(e Event) {
	c.calls++
	c.last = e
}

func TestDispatchKeepsOrderAndPayload(t *testing.T) {
	d := NewDispatcher()

	var order []string
	d.Subscribe(EnemyKilled, ListenerFunc(func(e Event) {
		order = append(order, "first")
		if data, ok := e.Data.(KillData); !ok || data.Reward != 25 {
			t.Errorf("payload = %+v, want KillData with reward 25", e.Data)
		}
	}))
	d.Subscribe(EnemyKilled, ListenerFunc(func(Event) {
		order = append(order, "second")
	}))

	stranger := &countingListener{}
	d.Subscribe(WaveEnded, stranger)

	d.Dispatch(Event{Type: EnemyKilled, Data: KillData{ID: 7, Reward: 25}})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("call order = %v, want [first second]", order)
	}
	if stranger.calls != 0 {
		t.Errorf("listener of another type fired %d times", stranger.calls)
	}
}

func TestDispatchWithoutListenersIsNoop(t *testing.T) {
	d := NewDispatcher()
	d.Dispatch(Event{Type: GameDefeat})
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	d := NewDispatcher()
	kept := &countingListener{}
	dropped := &countingListener{}
	d.Subscribe(TowerPlaced, kept)
	d.Subscribe(TowerPlaced, dropped)

	d.Unsubscribe(TowerPlaced, dropped)
	d.Unsubscribe(WaveStarted, dropped) // тип без подписчиков — тихий no-op

	d.Dispatch(Event{Type: TowerPlaced})

	if kept.calls != 1 {
		t.Errorf("kept listener calls = %d, want 1", kept.calls)
	}
	if dropped.calls != 0 {
		t.Errorf("dropped listener calls = %d, want 0", dropped.calls)
	}
}

// Подписка изнутри обработчика не должна получать текущее событие:
// рассылка идёт по снимку списка.
func TestSubscribeInsideHandlerWaitsForNextDispatch(t *testing.T) {
	d := NewDispatcher()
	late := &countingListener{}
	added := false
	d.Subscribe(WaveStarted, ListenerFunc(func(Event) {
		if !added {
			added = true
			d.Subscribe(WaveStarted, late)
		}
	}))

	d.Dispatch(Event{Type: WaveStarted})
	if late.calls != 0 {
		t.Fatalf("late listener fired during the dispatch that added it")
	}

	d.Dispatch(Event{Type: WaveStarted})
	if late.calls != 1 {
		t.Errorf("late listener calls = %d, want 1 after the next dispatch", late.calls)
	}
}
