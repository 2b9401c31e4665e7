package events_test

import (
	"context"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/segmentio/kafka-go"

	"github.com/agate-ltd/agency-crm/internal/events"
)

type recordingWriter struct {
	messages []kafka.Message
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

var _ = Describe("KafkaSink", func() {
	It("writes events as JSON keyed by entity id", func() {
		writer := &recordingWriter{}
		sink := events.NewKafkaSink(writer, "agency-crm.audit")

		event := events.Event{
			ID:        "evt-1",
			Type:      events.EventClientDeleted,
			EntityID:  "client-1",
			Actor:     events.Actor{StaffID: "123456"},
			Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
			Payload:   events.ClientDeletedPayload{CampaignsDeleted: 2},
		}
		Expect(sink.Write(context.Background(), event)).To(Succeed())

		Expect(writer.messages).To(HaveLen(1))
		msg := writer.messages[0]
		Expect(msg.Topic).To(Equal("agency-crm.audit"))
		Expect(string(msg.Key)).To(Equal("client-1"))
		Expect(msg.Headers).To(ContainElement(kafka.Header{Key: "event_type", Value: []byte("client_deleted")}))

		var decoded map[string]any
		Expect(json.Unmarshal(msg.Value, &decoded)).To(Succeed())
		Expect(decoded["type"]).To(Equal("client_deleted"))
		Expect(decoded["payload"]).To(HaveKeyWithValue("campaigns_deleted", BeNumerically("==", 2)))

		Expect(sink.Close()).To(Succeed())
		Expect(writer.closed).To(BeTrue())
	})
})
