package intent

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/baskit-app/baskit/internal/domain"
)

// translateStatus maps an upstream HTTP status to the error taxonomy. Rate
// limiting, auth, and timeout failures each carry a distinct user-facing
// message; everything else degrades to the generic upstream error.
func translateStatus(status int) error {
	switch status {
	case http.StatusTooManyRequests:
		return domain.Upstream(domain.MsgUpstreamRateLimited, domain.SuggestWaitAndRetry)
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.Upstream(domain.MsgUpstreamAuth, domain.SuggestContactAdmin)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return domain.Upstream(domain.MsgUpstreamTimeout, domain.SuggestRetry, domain.SuggestCheckConnection)
	default:
		return domain.Upstream(domain.MsgUpstreamGeneric, domain.SuggestWaitAndRetry)
	}
}

// translateTransportError maps network-level failures (timeouts, broken
// connections, open circuit breaker) to the error taxonomy.
func translateTransportError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.Upstream(domain.MsgUpstreamGeneric, domain.SuggestWaitAndRetry)
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.Upstream(domain.MsgUpstreamTimeout, domain.SuggestRetry, domain.SuggestCheckConnection)
	case errors.As(err, &netErr) && netErr.Timeout():
		return domain.Upstream(domain.MsgUpstreamTimeout, domain.SuggestRetry, domain.SuggestCheckConnection)
	default:
		return domain.Upstream(domain.MsgUpstreamGeneric, domain.SuggestWaitAndRetry)
	}
}
