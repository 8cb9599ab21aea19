package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/websocket"
	"notes-repository-be/pkg/events"

	"github.com/google/uuid"
)

type capturePublisher struct {
	mu       sync.Mutex
	messages []dto.CatalogEventMessage
	err      error
}

func (p *capturePublisher) Publish(_ context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	var msg dto.CatalogEventMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *capturePublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Kind)
	}
	return out
}

type captureEvents struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (c *captureEvents) Publish(_ context.Context, evt events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return c.err
}

func (c *captureEvents) all() []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]events.Event(nil), c.events...)
}

type captureBroadcaster struct {
	mu   sync.Mutex
	sent []websocket.Message
}

func (b *captureBroadcaster) Broadcast(msg websocket.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, msg)
}

func (b *captureBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

type memoryStores struct {
	subjects map[uuid.UUID]*entity.Subject
	notes    []*entity.Note
	noteErr  error
}

func newMemoryStores(subjects ...*entity.Subject) *memoryStores {
	s := &memoryStores{subjects: map[uuid.UUID]*entity.Subject{}}
	for _, subject := range subjects {
		s.subjects[subject.Id] = subject
	}
	return s
}

func (s *memoryStores) FindSubject(_ context.Context, id uuid.UUID) (*entity.Subject, error) {
	return s.subjects[id], nil
}

func (s *memoryStores) CreateSubject(_ context.Context, subject *entity.Subject) error {
	s.subjects[subject.Id] = subject
	return nil
}

func (s *memoryStores) CreateNote(_ context.Context, note *entity.Note) error {
	if s.noteErr != nil {
		return s.noteErr
	}
	s.notes = append(s.notes, note)
	return nil
}

type fixedExtractor struct {
	text string
	err  error
	urls []string
}

func (e *fixedExtractor) ExtractText(_ context.Context, imageURL string) (string, error) {
	e.urls = append(e.urls, imageURL)
	return e.text, e.err
}

type fakeEngine struct {
	text string
	err  error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) ExtractText(context.Context, string) (string, error) {
	return f.text, f.err
}

var errBoom = errors.New("boom")
