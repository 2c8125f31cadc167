package kafka

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"testing"
	"time"

	"social-service/internal/models"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventProducerEmit(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event models.RelationshipEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		assert.Equal(t, models.EventRequestSent, event.Type)
		assert.Equal(t, "andrew", event.Emitter)
		assert.Equal(t, "bobby", event.Receiver)
		return nil
	})

	producer := NewEventProducer(mock, "relationship-events")
	err := producer.Emit(context.Background(), models.RelationshipEvent{
		Type:       models.EventRequestSent,
		EmitterID:  1,
		Emitter:    "andrew",
		ReceiverID: 2,
		Receiver:   "bobby",
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestEventProducerEmitFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(assert.AnError)

	producer := NewEventProducer(mock, "relationship-events")
	err := producer.Emit(context.Background(), models.RelationshipEvent{
		Type:       models.EventUnfriended,
		ReceiverID: 2,
	})
	require.Error(t, err)
	require.NoError(t, producer.Close())
}

// Events are keyed by the receiver so one user's notification stream keeps
// its order within a partition.
func TestEmitKeyFollowsReceiver(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "relationship-events", msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, uint64(42), binary.BigEndian.Uint64(key))
		return nil
	})

	producer := NewEventProducer(mock, "relationship-events")
	err := producer.Emit(context.Background(), models.RelationshipEvent{
		Type:       models.EventRequestAccepted,
		ReceiverID: 42,
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}
