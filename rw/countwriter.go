package rw

import (
	"io"
	"net/http"
)

type CountWriter struct {
	w io.Writer
	n int64
}

func NewCountWriter(w io.Writer) *CountWriter {
	return &CountWriter{w: w}
}

// Write implements io.Writer
func (cw *CountWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n) // cuz Write() can be called multiple times internally
	return n, err
}

// BytesWritten returns the total number of bytes written
func (cw *CountWriter) BytesWritten() int64 {
	return cw.n
}

// ResponseWriter records the status code and body size of a response
type ResponseWriter struct {
	http.ResponseWriter
	count  CountWriter
	status int
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	rw := &ResponseWriter{ResponseWriter: w}
	rw.count.w = w
	return rw
}

func (rw *ResponseWriter) WriteHeader(status int) {
	if rw.status == 0 {
		rw.status = status
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *ResponseWriter) Write(p []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.count.Write(p)
}

// Status is 200 when the handler wrote a body without a header
func (rw *ResponseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

func (rw *ResponseWriter) BytesWritten() int64 {
	return rw.count.BytesWritten()
}

// Unwrap lets http.ResponseController reach the underlying writer
func (rw *ResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
