package db

import (
	"errors"
	"testing"
)

type closer struct {
	calls int
	err   error
}

func (c *closer) Close() error {
	c.calls++
	return c.err
}

func TestCloseClient(t *testing.T) {
	ok := &closer{}
	CloseClient("ok", ok)
	failing := &closer{err: errors.New("boom")}
	CloseClient("failing", failing)
	CloseClient("nil", nil)
	if ok.calls != 1 || failing.calls != 1 {
		t.Errorf("calls = %d, %d", ok.calls, failing.calls)
	}
}
