package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/mocks"
)

func publish(t *testing.T, mq *mocks.MockMessageQueue, event domain.DatasetEvent) {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	require.NoError(t, mq.Publish(string(event.Type), data))
}

func TestSubscribeDatasetEvents(t *testing.T) {
	// Arrange
	mq := mocks.NewMockMessageQueue()
	notifier := mocks.NewMockNotifier()
	var invalidated []string
	analytics := &mocks.MockAnalyticsService{
		InvalidateFunc: func(ctx context.Context, userID, datasetID string) error {
			invalidated = append(invalidated, userID+"/"+datasetID)
			return nil
		},
	}
	require.NoError(t, subscribeDatasetEvents(mq, notifier, analytics, zap.NewNop()))

	// Act
	publish(t, mq, domain.DatasetEvent{Type: domain.DatasetCreated, DatasetID: "ds-1", UserID: "u1"})
	publish(t, mq, domain.DatasetEvent{Type: domain.DatasetDeleted, DatasetID: "ds-1", UserID: "u1"})

	// Assert
	assert.Len(t, notifier.Sent["u1"], 2)
	assert.Equal(t, []string{"u1/ds-1"}, invalidated)
}

func TestSubscribeDatasetEvents_IgnoresMalformed(t *testing.T) {
	mq := mocks.NewMockMessageQueue()
	notifier := mocks.NewMockNotifier()
	require.NoError(t, subscribeDatasetEvents(mq, notifier, &mocks.MockAnalyticsService{}, zap.NewNop()))

	require.NoError(t, mq.Publish(string(domain.DatasetCreated), []byte("{not json")))

	assert.Empty(t, notifier.Sent)
}
