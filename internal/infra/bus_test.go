package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeEnum(t *testing.T) {
	t.Run("EventType.String() returns correct values", func(t *testing.T) {
		assert.Equal(t, "RunStarted", RunStarted.String())
		assert.Equal(t, "RecordsValidated", RecordsValidated.String())
		assert.Equal(t, "TableUploaded", TableUploaded.String())
		assert.Equal(t, "RunCompleted", RunCompleted.String())
		assert.Equal(t, "Unknown", EventType(999).String())
	})
}

func TestBusWithEnumEventTypes(t *testing.T) {
	t.Run("can subscribe to and publish events using enum types", func(t *testing.T) {
		// Arrange
		bus := NewBus()
		var receivedEvents []Event

		handler := func(e Event) {
			receivedEvents = append(receivedEvents, e)
		}

		bus.Subscribe(RunStarted, handler)
		bus.Subscribe(RecordsValidated, handler)

		startedEvent := RunStartedEvent{RunID: "run-123", RawRows: 500}
		validatedEvent := RecordsValidatedEvent{
			RunID:        "run-123",
			CleanRows:    480,
			RejectedRows: 20,
			RejectionCounts: map[string]int{
				"InvalidPrice": 20,
			},
		}

		// Act
		bus.Publish(startedEvent)
		bus.Publish(validatedEvent)

		// Assert
		assert.Len(t, receivedEvents, 2)
		assert.Equal(t, RunStarted, receivedEvents[0].EventType())
		assert.Equal(t, RecordsValidated, receivedEvents[1].EventType())
	})

	t.Run("handlers only receive events they subscribed to", func(t *testing.T) {
		// Arrange
		bus := NewBus()
		var startedEvents []Event
		var uploadedEvents []Event

		startedHandler := func(e Event) {
			startedEvents = append(startedEvents, e)
		}

		uploadedHandler := func(e Event) {
			uploadedEvents = append(uploadedEvents, e)
		}

		bus.Subscribe(RunStarted, startedHandler)
		bus.Subscribe(TableUploaded, uploadedHandler)

		startedEvent := RunStartedEvent{RunID: "run-123", RawRows: 500}
		uploadedEvent := TableUploadedEvent{RunID: "run-123", Table: "sales_data", Rows: 480}

		// Act
		bus.Publish(startedEvent)
		bus.Publish(uploadedEvent)

		// Assert
		assert.Len(t, startedEvents, 1)
		assert.Len(t, uploadedEvents, 1)
		assert.Equal(t, RunStarted, startedEvents[0].EventType())
		assert.Equal(t, TableUploaded, uploadedEvents[0].EventType())
	})

	t.Run("SubscribeAll receives every lifecycle event", func(t *testing.T) {
		// Arrange
		bus := NewBus()
		var received []Event

		bus.SubscribeAll(func(e Event) {
			received = append(received, e)
		})

		// Act
		bus.Publish(RunStartedEvent{RunID: "run-1", RawRows: 10})
		bus.Publish(KPIsAggregatedEvent{RunID: "run-1", Granularity: "day", Buckets: 3})
		bus.Publish(RunCompletedEvent{RunID: "run-1"})

		// Assert
		assert.Len(t, received, 3)
	})
}
