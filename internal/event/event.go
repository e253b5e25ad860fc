// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — событие симуляции. Data несёт полезную нагрузку из types.go,
// если подписчику нужно больше, чем сам факт события.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener — интерфейс подписчика на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc адаптирует функцию под интерфейс Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher — синхронный диспетчер событий. Всё происходит в потоке
// симуляции, поэтому блокировок нет.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher создаёт пустой диспетчер.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe — подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe — отписка от события
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners, exists := d.listeners[eventType]
	if !exists {
		return
	}
	for i, l := range listeners {
		if l == listener {
			d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// Dispatch — отправка события всем подписчикам. Список копируется,
// чтобы подписка изнутри обработчика не ломала итерацию.
func (d *Dispatcher) Dispatch(event Event) {
	listeners, exists := d.listeners[event.Type]
	if !exists {
		return
	}
	snapshot := make([]Listener, len(listeners))
	copy(snapshot, listeners)
	for _, listener := range snapshot {
		listener.OnEvent(event)
	}
}
