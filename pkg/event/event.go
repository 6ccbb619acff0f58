// pkg/event/event.go
package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	ObjectAdded        Type = "object_added"
	ObjectUpdated      Type = "object_updated"
	DirectionUndefined Type = "direction_undefined"
	LoopStarted        Type = "loop_started"
	LoopStopped        Type = "loop_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, reg := range handlers {
		if reg.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers synchronously
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, reg := range handlers {
		reg.handler(event)
	}
}

// Specific event implementations

// ObjectEvent reports the state of one object after a frame update
type ObjectEvent struct {
	BaseEvent
	ObjectID uint64
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Heading  float32
}

// NewObjectEvent creates a new object event
func NewObjectEvent(eventType Type, source interface{}, objectID uint64, position, velocity mgl32.Vec3, heading float32) *ObjectEvent {
	return &ObjectEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ObjectID: objectID,
		Position: position,
		Velocity: velocity,
		Heading:  heading,
	}
}

// DirectionEvent reports a target that gave no direction to turn toward
type DirectionEvent struct {
	BaseEvent
	ObjectID uint64
	Target   mgl32.Vec3
	Err      error
}

// NewDirectionEvent creates a new undefined-direction event
func NewDirectionEvent(source interface{}, objectID uint64, target mgl32.Vec3, err error) *DirectionEvent {
	return &DirectionEvent{
		BaseEvent: BaseEvent{
			EventType: DirectionUndefined,
			Source:    source,
		},
		ObjectID: objectID,
		Target:   target,
		Err:      err,
	}
}

// LoopEvent marks the start or end of a frame loop
type LoopEvent struct {
	BaseEvent
	Frames uint64
	Err    error
}

// NewLoopEvent creates a new loop lifecycle event
func NewLoopEvent(eventType Type, source interface{}, frames uint64, err error) *LoopEvent {
	return &LoopEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Frames: frames,
		Err:    err,
	}
}
