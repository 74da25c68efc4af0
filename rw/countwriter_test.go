package rw

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCountWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := NewCountWriter(&buf)
	_, _ = cw.Write([]byte("%PDF-"))
	_, _ = cw.Write([]byte("1.3"))
	if cw.BytesWritten() != 8 || buf.String() != "%PDF-1.3" {
		t.Errorf("n = %d buf = %q", cw.BytesWritten(), buf.String())
	}
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewResponseWriter(rec)
	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusTeapot)
	_, _ = w.Write([]byte("hello"))
	if w.Status() != http.StatusCreated || w.BytesWritten() != 5 {
		t.Errorf("status %d bytes %d", w.Status(), w.BytesWritten())
	}
	if rec.Body.String() != "hello" {
		t.Errorf("body %q", rec.Body.String())
	}

	implicit := NewResponseWriter(httptest.NewRecorder())
	_, _ = implicit.Write([]byte("x"))
	if implicit.Status() != http.StatusOK {
		t.Errorf("implicit status %d", implicit.Status())
	}
}
