package events

import (
	"encoding/json"
	"time"
)

const (
	TypeDatasetReloaded       = "dataset.reloaded"
	TypeCombinationsGenerated = "combinations.generated"
	TypeFeaturedDrawUpdated   = "featured_draw.updated"
)

type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

type DatasetReloaded struct {
	Source   string `json:"source"`
	Loaded   int    `json:"loaded"`
	Rejected int    `json:"rejected"`
	Latest   int    `json:"latestDrawNumber"`
}

type CombinationsGenerated struct {
	Mode   string `json:"mode"`
	Count  int    `json:"count"`
	Window int    `json:"window"`
	Seeded bool   `json:"seeded"`
}

// Publisher sends raw payloads to a subject
type Publisher interface {
	Publish(subject string, data []byte) error
	Close()
}

type Emitter interface {
	EmitDatasetReloaded(e DatasetReloaded) error
	EmitCombinationsGenerated(e CombinationsGenerated) error
	Emit(event Event) error
	Close()
}

type emitter struct {
	pub           Publisher
	subjectPrefix string
}

// NewEmitter publishes every event to "<prefix>.<type>"
func NewEmitter(pub Publisher, subjectPrefix string) Emitter {
	return &emitter{
		pub:           pub,
		subjectPrefix: subjectPrefix,
	}
}

func (e *emitter) EmitDatasetReloaded(ev DatasetReloaded) error {
	return e.Emit(Event{
		Type:      TypeDatasetReloaded,
		Data:      ev,
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (e *emitter) EmitCombinationsGenerated(ev CombinationsGenerated) error {
	return e.Emit(Event{
		Type:      TypeCombinationsGenerated,
		Data:      ev,
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (e *emitter) Emit(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return e.pub.Publish(e.subject(event.Type), data)
}

func (e *emitter) subject(eventType string) string {
	if e.subjectPrefix == "" {
		return eventType
	}
	return e.subjectPrefix + "." + eventType
}

func (e *emitter) Close() {
	if e.pub != nil {
		e.pub.Close()
	}
}

// Nop discards everything; used when no broker is configured
type Nop struct{}

func (Nop) Publish(string, []byte) error { return nil }
func (Nop) Close()                       {}
