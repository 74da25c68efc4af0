package redis

import (
	"context"
	"testing"

	"github.com/zeptools/gw-invoice/db/kvdb"
)

func TestRegister(t *testing.T) {
	Register()
	c, err := kvdb.New(&kvdb.Conf{Type: "redis", Host: "127.0.0.1", Port: 6379})
	if err != nil {
		t.Fatal(err)
	}
	rc, ok := c.(*Client)
	if !ok {
		t.Fatalf("got %T", c)
	}
	if rc.Conf().Addr() != "127.0.0.1:6379" {
		t.Errorf("addr = %s", rc.Conf().Addr())
	}
	if err := rc.Close(); err != nil {
		t.Error(err)
	}
}

func TestScanKeys_BadCursor(t *testing.T) {
	c := NewClient(&kvdb.Conf{Host: "127.0.0.1", Port: 6379})
	if _, _, err := c.ScanKeys(context.Background(), "zero", "*", 10); err == nil {
		t.Error("expected cursor type error")
	}
}
