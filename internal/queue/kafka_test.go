package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"vetclinic/config"
	"vetclinic/internal/domain"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestBuildMessage(t *testing.T) {
	n := domain.Notification{
		Type:           domain.NotificationTypeClinicalRecord,
		Message:        "adjunto",
		Recipient:      "ana@example.com",
		Attachment:     "JVBERi0=",
		AttachmentName: "Historia_Luna2024-06-10.pdf",
	}

	msg, err := buildMessage(n, "evt-1")
	if err != nil {
		t.Fatalf("buildMessage returned error: %v", err)
	}
	if string(msg.Key) != "ana@example.com" {
		t.Errorf("key = %q", msg.Key)
	}

	var body map[string]string
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		t.Fatalf("value is not JSON: %v", err)
	}
	for field, want := range map[string]string{
		"tipo":          n.Type,
		"mensaje":       n.Message,
		"destinatario":  n.Recipient,
		"adjunto":       n.Attachment,
		"nombreAdjunto": n.AttachmentName,
	} {
		if body[field] != want {
			t.Errorf("%s = %q, want %q", field, body[field], want)
		}
	}

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers["event-id"] != "evt-1" || headers["event-type"] != n.Type {
		t.Errorf("unexpected headers: %v", headers)
	}
}

func TestKafkaPublisher_Send(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, logger: zap.NewNop()}

	if err := p.Send(context.Background(), domain.Notification{Type: "cita", Recipient: "ana@example.com", Message: "hola"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	if id := w.msgs[0].Headers[0].Value; len(id) != 36 {
		t.Errorf("event id %q is not a uuid", id)
	}

	w.err = errors.New("broker down")
	if err := p.Send(context.Background(), domain.Notification{Recipient: "ana@example.com"}); err == nil {
		t.Fatal("expected write error")
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Fatal("Close should close the writer")
	}
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	if _, err := NewKafkaPublisher(config.KafkaConfig{Topic: "notifications"}, zap.NewNop()); err == nil {
		t.Error("expected error without brokers")
	}
	if _, err := NewKafkaPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}}, zap.NewNop()); err == nil {
		t.Error("expected error without topic")
	}
}
