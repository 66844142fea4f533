package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"vetclinic/config"
	"vetclinic/internal/domain"
)

const notifyPath = "/notificar"

// HTTPNotifier delivers notifications to the external notification service.
type HTTPNotifier struct {
	http    *Client
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *zap.Logger
}

func NewHTTPNotifier(cfg config.NotificationsConfig, breaker config.BreakerConfig, observer BreakerObserver, logger *zap.Logger) (*HTTPNotifier, error) {
	httpClient, err := NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("notification client: %w", err)
	}

	return &HTTPNotifier{
		http:    httpClient,
		breaker: NewBreaker[struct{}]("notifications", breaker, observer, logger),
		logger:  logger,
	}, nil
}

func (n *HTTPNotifier) Send(ctx context.Context, notification domain.Notification) error {
	_, err := n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.http.DoJSON(ctx, http.MethodPost, notifyPath, nil, notification, nil)
	})
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}

	n.logger.Debug("notification posted", zap.String("type", notification.Type))
	return nil
}
