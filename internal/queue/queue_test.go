package queue

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryPublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := NewInMemory(4)

	msgs, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	msg, err := NewMessage("dtr.submitted", map[string]int{"minutes": 540})
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	if err := q.Publish(ctx, msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-msgs:
		var body map[string]int
		if err := got.Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Type != "dtr.submitted" || body["minutes"] != 540 {
			t.Fatalf("unexpected message %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
	}

	cancel()
	select {
	case _, ok := <-msgs:
		if ok {
			t.Fatalf("expected closed channel after cancel")
		}
	case <-time.After(time.Second):
		t.Fatalf("consumer did not stop after cancel")
	}
}

func TestInMemoryPublishHonoursContext(t *testing.T) {
	q := NewInMemory(1)
	_ = q.Publish(context.Background(), Message{Type: "a"})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := q.Publish(ctx, Message{Type: "b"}); err == nil {
		t.Fatalf("expected publish on a full queue to fail when ctx ends")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	in := Message{Type: "dtr.submitted", Body: []byte(`{"note":"a|b"}`)}
	out := deserialize(serialize(in))
	if out.Type != in.Type || string(out.Body) != string(in.Body) {
		t.Fatalf("unexpected round trip %+v", out)
	}
	if raw := deserialize("plain"); raw.Type != "" || string(raw.Body) != "plain" {
		t.Fatalf("unexpected untyped message %+v", raw)
	}
}
