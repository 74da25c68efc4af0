package routing

import (
	"log"
	"net/http"
	"time"

	"github.com/zeptools/gw-invoice/requests"
	"github.com/zeptools/gw-invoice/rw"
)

// LogWrapper logs one line per request with status, size and latency
type LogWrapper struct {
	Quiet bool
}

func (l LogWrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		cw := rw.NewResponseWriter(w)
		inner.ServeHTTP(cw, r)
		if l.Quiet {
			return
		}
		log.Printf("[INFO][HTTP] %s %s %d %dB %v ip=%s",
			r.Method, requests.FullURL(r), cw.Status(), cw.BytesWritten(),
			time.Since(start).Round(time.Microsecond), requests.ClientIP(r))
	})
}
