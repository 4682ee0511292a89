package main

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/ports"
)

// subscribeDatasetEvents forwards dataset events to the owner's websocket
// clients and drops cached analytics of deleted datasets.
func subscribeDatasetEvents(mq ports.MessageQueue, notifier ports.Notifier, analytics ports.AnalyticsService, logger *zap.Logger) error {
	handle := func(data []byte) error {
		var event domain.DatasetEvent
		if err := json.Unmarshal(data, &event); err != nil {
			logger.Warn("Dropping malformed dataset event", zap.Error(err))
			return err
		}

		if event.Type == domain.DatasetDeleted {
			if err := analytics.Invalidate(context.Background(), event.UserID, event.DatasetID); err != nil {
				logger.Warn("Failed to invalidate analytics cache",
					zap.String("dataset_id", event.DatasetID),
					zap.Error(err),
				)
			}
		}

		notifier.SendToUser(event.UserID, event)
		return nil
	}

	for _, subject := range []domain.DatasetEventType{domain.DatasetCreated, domain.DatasetDeleted} {
		if err := mq.Subscribe(string(subject), handle); err != nil {
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
	}
	logger.Info("Subscribed to dataset events")
	return nil
}
