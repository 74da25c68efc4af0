package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zeptools/gw-invoice/storages"
)

func TestPut(t *testing.T) {
	var (
		method, path, contentType string
		body                      []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewStore(&storages.Conf{
		Type:            "s3",
		Bucket:          "invoices",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		PathStyle:       true,
		Prefix:          "/rendered/",
	})
	if err != nil {
		t.Fatal(err)
	}
	loc, err := store.Put(context.Background(), "invoice_INV-1.pdf", []byte("%PDF-1.3"), "application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if method != http.MethodPut || path != "/invoices/rendered/invoice_INV-1.pdf" {
		t.Errorf("request %s %s", method, path)
	}
	if string(body) != "%PDF-1.3" || contentType != "application/pdf" {
		t.Errorf("body %q type %q", body, contentType)
	}
	if !strings.HasSuffix(loc, "/invoices/rendered/invoice_INV-1.pdf") {
		t.Errorf("location = %s", loc)
	}
}

func TestNewStore_NeedsBucket(t *testing.T) {
	if _, err := NewStore(&storages.Conf{Type: "s3"}); err == nil {
		t.Error("expected error")
	}
}

func TestPut_RejectsPathNames(t *testing.T) {
	store, err := NewStore(&storages.Conf{Type: "s3", Bucket: "invoices", Region: "us-east-1", Endpoint: "http://127.0.0.1:1", Prefix: "rendered"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Put(context.Background(), "invoice_/../../other.pdf", []byte("x"), "application/pdf"); !errors.Is(err, storages.ErrInvalidName) {
		t.Errorf("err = %v", err)
	}
}
