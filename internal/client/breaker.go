package client

import (
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"vetclinic/config"
)

// BreakerObserver is notified on every breaker state transition.
type BreakerObserver interface {
	BreakerStateChanged(name string, state int)
}

// NewBreaker trips after cfg.MaxFailures consecutive failures. 4xx responses
// count as successes.
func NewBreaker[T any](name string, cfg config.BreakerConfig, observer BreakerObserver, logger *zap.Logger) *gobreaker.CircuitBreaker[T] {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsClientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if observer != nil {
				observer.BreakerStateChanged(name, int(to))
			}
		},
	})
}
