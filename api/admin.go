package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/locks/keyonlylocks"
	"github.com/zeptools/gw-invoice/uds"
)

var ErrBusy = errors.New("another run is in progress")

const cachePurgeLock = "cache-purge"

// AdminCommands are the admin socket commands. actionLocks keeps two purges
// from running at once
func AdminCommands(svc *Service, actionLocks *sync.Map) map[string]uds.CmdHnd {
	cmds := map[string]uds.CmdHnd{
		"templates": {
			Desc: "list the registered templates",
			Fn: func(_ context.Context, _ []string, w io.Writer) error {
				for _, t := range svc.Composer.Registry().Templates() {
					if _, err := fmt.Fprintln(w, t); err != nil {
						return err
					}
				}
				return nil
			},
		},
		"totals": {
			Desc:    "summarize an invoice request given as one-line JSON",
			Usage:   `totals {"items":[{"description":"x","quantity":1,"unitPrice":10}],"taxRate":10}`,
			RawArgs: true,
			Fn: func(_ context.Context, args []string, w io.Writer) error {
				if len(args) != 1 {
					return errors.New("missing JSON")
				}
				req := &invoice.Request{}
				if err := json.Unmarshal([]byte(args[0]), req); err != nil {
					return err
				}
				inv := svc.Build(req)
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(invoice.NewSummary(&inv))
			},
		},
	}

	if svc.Cache != nil {
		cmds["cache-recent"] = uds.CmdHnd{
			Desc:  "list recently cached renders",
			Usage: "cache-recent [n]",
			Fn: func(ctx context.Context, args []string, w io.Writer) error {
				n := 10
				if len(args) > 0 {
					var err error
					if n, err = strconv.Atoi(args[0]); err != nil || n <= 0 {
						return fmt.Errorf("bad count %q", args[0])
					}
				}
				entries, err := svc.Cache.Recent(ctx, n)
				if err != nil {
					return err
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(w, "%s  %-20s %-10s %8d  %s\n",
						e.CreatedAt.Format("2006-01-02T15:04:05Z"), e.Number, e.Template, e.Bytes, e.Key[:12])
				}
				return nil
			},
		}
		cmds["cache-purge"] = uds.CmdHnd{
			Desc: "drop every cached render",
			Fn: func(ctx context.Context, _ []string, w io.Writer) error {
				ran, err := keyonlylocks.TryWith(actionLocks, []string{cachePurgeLock}, func() error {
					n, err := svc.Cache.Purge(ctx)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(w, "purged %d keys\n", n)
					return err
				})
				if !ran {
					return ErrBusy
				}
				return err
			},
		}
	}

	if svc.Ledger != nil {
		cmds["records"] = uds.CmdHnd{
			Desc:  "list archived renders of an invoice number",
			Usage: "records <invoice-number>",
			Fn: func(ctx context.Context, args []string, w io.Writer) error {
				if len(args) != 1 {
					return errors.New("need exactly one invoice number")
				}
				records, err := svc.Ledger.ByNumber(ctx, args[0])
				if err != nil {
					return err
				}
				for _, r := range records {
					_, _ = fmt.Fprintf(w, "%s  %s  %-10s %s  %s\n",
						r.ID, r.CreatedAt.Format("2006-01-02T15:04:05Z"), r.Template,
						invoice.FormatAmount(r.Currency, r.Total), r.StorageURL)
				}
				return nil
			},
		}
	}
	return cmds
}
