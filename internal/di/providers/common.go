package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// rateLimiterIdleTTL is how long a client's bucket survives without requests.
	rateLimiterIdleTTL = 10 * time.Minute
)
