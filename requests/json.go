package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBodyBytes bounds JSON request bodies
const DefaultMaxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes one JSON value from the request body into dst.
// Bodies larger than maxBytes (0 = DefaultMaxBodyBytes) are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer body.Close()
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}
