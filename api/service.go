// Package api exposes invoice rendering over HTTP and the admin socket.
package api

import (
	"context"
	"log"
	"time"

	"github.com/zeptools/gw-invoice/archive"
	"github.com/zeptools/gw-invoice/cache"
	"github.com/zeptools/gw-invoice/composer"
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/storages"
)

// Service renders requests and feeds the optional cache, storage and ledger.
// Only render failures are returned; the side stores log and carry on.
type Service struct {
	Composer *composer.Composer
	Cache    *cache.Cache    // optional
	Ledger   *archive.Ledger // optional
	Storage  storages.Store  // optional
	Defaults invoice.Defaults
	Now      func() time.Time
}

// Result of one render
type Result struct {
	Invoice    invoice.Invoice
	PDF        []byte
	Cached     bool
	StorageURL string
	Record     *archive.Record // nil when no ledger or it failed
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Build normalizes req with the service defaults
func (s *Service) Build(req *invoice.Request) invoice.Invoice {
	return req.Build(s.Defaults, s.now())
}

func (s *Service) Render(ctx context.Context, req *invoice.Request) (*Result, error) {
	inv := s.Build(req)
	res := &Result{Invoice: inv}
	render := func() ([]byte, error) {
		return s.Composer.Generate(ctx, &inv)
	}

	var err error
	if s.Cache != nil {
		res.PDF, res.Cached, err = s.Cache.Fetch(ctx, &inv, render)
	} else {
		res.PDF, err = render()
	}
	if err != nil {
		return nil, err
	}
	if res.Cached {
		// stored and recorded on the first render
		return res, nil
	}

	if s.Storage != nil {
		if res.StorageURL, err = s.Storage.Put(ctx, inv.Filename(), res.PDF, "application/pdf"); err != nil {
			log.Printf("[WARN][API] storage copy of %q failed: %v", inv.Number, err)
		}
	}
	if s.Ledger != nil {
		if res.Record, err = s.Ledger.Record(ctx, &inv, res.PDF, res.StorageURL); err != nil {
			log.Printf("[WARN][API] archive of %q failed: %v", inv.Number, err)
		}
	}
	return res, nil
}
