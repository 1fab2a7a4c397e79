package httpclient

import (
	"backoffice-service/config"
	"time"

	circuit "github.com/rubyist/circuitbreaker"
)

func InitCircuitBreaker(cfg *config.HttpClientConfig, breakerType string) *circuit.Breaker {
	switch breakerType {
	case "rate":
		return circuit.NewRateBreaker(cfg.ErrorRate, cfg.MinSamples)
	case "threshold":
		return circuit.NewThresholdBreaker(cfg.Threshold)
	default:
		return circuit.NewConsecutiveBreaker(cfg.ConsecutiveFailures)
	}
}

func InitHttpClient(cfg *config.HttpClientConfig, cb *circuit.Breaker) *circuit.HTTPClient {
	client := circuit.NewHTTPClient(time.Duration(cfg.TimeoutSeconds)*time.Second, 0, nil)
	client.BreakerLookup = func(c *circuit.HTTPClient, val interface{}) *circuit.Breaker {
		return cb
	}
	return client
}
