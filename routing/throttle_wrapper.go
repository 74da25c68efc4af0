package routing

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zeptools/gw-invoice/requests"
	"github.com/zeptools/gw-invoice/responses"
	"github.com/zeptools/gw-invoice/throttle"
)

// ThrottleWrapper limits requests per client IP with a token bucket group.
// A rejected request carries Retry-After with the seconds until the client's
// next token.
type ThrottleWrapper struct {
	Store   *throttle.BucketStore[string]
	GroupID string
	Now     func() time.Time
}

func (t ThrottleWrapper) Wrap(inner http.Handler) http.Handler {
	now := t.Now
	if now == nil {
		now = time.Now
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := t.Store.Take(t.GroupID, requests.ClientIP(r), now())
		if !ok {
			if wait > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int((wait+time.Second-1)/time.Second)))
			}
			responses.WriteErrorJSON(w, http.StatusTooManyRequests, responses.CodeThrottled, "too many requests")
			return
		}
		inner.ServeHTTP(w, r)
	})
}
