package cafeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{
		gate: make(chan struct{}),
	}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func TestDispatcherDeliversToSink(t *testing.T) {
	sink := &countingSink{}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: auditEventLoginSuccess})
	}
	d.Close()

	if got := sink.Count(); got != 5 {
		t.Fatalf("delivered = %d, want 5", got)
	}
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, &countingSink{})
	if d != nil {
		t.Fatal("disabled audit produced a dispatcher")
	}
	// nil dispatcher methods are no-ops
	d.Emit(context.Background(), AuditEvent{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := newGateSink()
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// The gated sink blocks the worker, so the buffer fills and later
	// events are dropped instead of blocking the caller.
	deadline := time.After(2 * time.Second)
	for d.Dropped() == 0 {
		d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
		select {
		case <-deadline:
			t.Fatal("no event was ever dropped")
		default:
		}
	}

	close(sink.gate)
	d.Close()
}

func TestDispatcherEmitAfterClose(t *testing.T) {
	sink := &countingSink{}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8}, sink)
	d.Close()

	d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})

	if got := sink.Count(); got != 0 {
		t.Fatalf("delivered after close = %d", got)
	}
}

func TestJSONWriterSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{EventType: auditEventLoginSuccess, UserID: "42", Success: true})
	sink.Emit(context.Background(), AuditEvent{EventType: auditEventLogout, Success: true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	var event AuditEvent
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event.EventType != auditEventLoginSuccess || event.UserID != "42" {
		t.Fatalf("event = %+v", event)
	}
}
