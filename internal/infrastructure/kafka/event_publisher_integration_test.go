//go:build integration

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truecost/mortgage-service/internal/domain/event"
	pkgkafka "github.com/truecost/mortgage-service/pkg/kafka"
	"github.com/truecost/mortgage-service/pkg/testutil"
)

func TestKafkaEventPublisher_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kc := testutil.NewKafkaContainer(ctx, t)

	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: kc.Brokers})
	t.Cleanup(func() { _ = producer.Close() })

	const topic = "truecost-events-it"
	kc.CreateTopic(t, topic)

	pub := NewKafkaEventPublisher(producer, topic, nil)
	reminderID := uuid.New()

	require.NoError(t, pub.Publish(ctx,
		event.NewReminderNotified(reminderID, testutil.TestUserID1, testutil.FixedNow, testutil.FixedNow)))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   kc.Brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	t.Cleanup(func() { _ = reader.Close() })

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, reminderID.String(), string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, event.TypeReminderNotified, headers["event_type"])
}
