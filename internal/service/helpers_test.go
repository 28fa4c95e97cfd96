package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/repository/memory"
	"feature-prioritizer/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

var fixedTime = time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)

type logEntry struct {
	Level   string
	Module  string
	Message string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

var _ logger.ILogger = (*recordingLogger)(nil)

func (l *recordingLogger) record(level, module, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{Level: level, Module: module, Message: message})
}

func (l *recordingLogger) Debug(module, message string, _ map[string]interface{}) {
	l.record("debug", module, message)
}
func (l *recordingLogger) Info(module, message string, _ map[string]interface{}) {
	l.record("info", module, message)
}
func (l *recordingLogger) Warn(module, message string, _ map[string]interface{}) {
	l.record("warn", module, message)
}
func (l *recordingLogger) Error(module, message string, _ map[string]interface{}) {
	l.record("error", module, message)
}
func (l *recordingLogger) Sync() error { return nil }

func (l *recordingLogger) warnings() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.Level == "warn" {
			out = append(out, e)
		}
	}
	return out
}

var errStoreDown = errors.New("store unavailable")

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errStoreDown }
func (failingStore) Set(context.Context, string, []byte) error         { return errStoreDown }
func (failingStore) Delete(context.Context, string) error              { return errStoreDown }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Payload()["kind"].(string)
	}
	return out
}

func newTestStorage(log logger.ILogger) (IStorageService, *memoryStoreHandle) {
	store := memory.NewBlobStore()
	svc := NewStorageService(store, DefaultStorageKey, log, nil)
	svc.(*storageService).now = func() time.Time { return fixedTime }
	return svc, &memoryStoreHandle{store: store}
}

type memoryStoreHandle struct {
	store interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		Set(ctx context.Context, key string, value []byte) error
	}
}

func (h *memoryStoreHandle) put(s string) {
	_ = h.store.Set(context.Background(), DefaultStorageKey, []byte(s))
}

func (h *memoryStoreHandle) raw() string {
	data, _, _ := h.store.Get(context.Background(), DefaultStorageKey)
	return string(data)
}

func newRawMessage(payload string) *message.Message {
	return message.NewMessage(watermill.NewUUID(), []byte(payload))
}
