// Command invoicegw serves invoice rendering over HTTP and renders invoices
// from JSON files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/zeptools/gw-invoice/api"
	"github.com/zeptools/gw-invoice/archive"
	"github.com/zeptools/gw-invoice/cache"
	"github.com/zeptools/gw-invoice/composer"
	"github.com/zeptools/gw-invoice/conf"
	"github.com/zeptools/gw-invoice/invoice"
)

func main() {
	app := &cli.App{
		Name:  "invoicegw",
		Usage: "invoice PDF rendering gateway",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API and the admin socket",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Value: ".", Usage: "app root holding config/"},
				},
				Action: serve,
			},
			{
				Name:  "render",
				Usage: "render an invoice request file to PDF",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Value: "-", Usage: "request JSON, - for stdin"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output PDF (default invoice_<number>.pdf)"},
					&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: "override the request template"},
				},
				Action: render,
			},
			{
				Name:  "totals",
				Usage: "print the summary of an invoice request file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Value: "-", Usage: "request JSON, - for stdin"},
				},
				Action: totals,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func serve(cliCtx *cli.Context) error {
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	core := &conf.Core{}
	if err := core.BaseInit(cliCtx.String("root"), rootCtx, rootCancel); err != nil {
		return err
	}
	defer core.ResourceCleanUp()

	steps := []func() error{
		core.PrepareThrottleBucketStore,
		core.PrepareKVDatabase,
		core.PrepareSQLDatabases,
		core.PrepareStorage,
		core.PrepareScheduler,
	}
	if core.DebugOpts.AuthBreak {
		log.Print("[WARN] auth_break is on: /v1/ is open")
	} else {
		steps = append(steps, core.PrepareAuth)
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	comp := composer.New()
	comp.Quiet = core.DebugOpts.QuietRenders
	service := &api.Service{
		Composer: comp,
		Storage:  core.Storage,
		Defaults: core.Render,
	}
	if core.BackendKVDBClient != nil {
		c, err := cache.New(core.BackendKVDBClient, core.KVDBConf.CacheConf)
		if err != nil {
			return err
		}
		service.Cache = c
	}
	if archiveDB, ok := core.ArchiveDB(); ok {
		ledger, err := archive.NewLedger(archiveDB)
		if err != nil {
			return err
		}
		if err = ledger.Migrate(rootCtx); err != nil {
			return err
		}
		service.Ledger = ledger
	}

	if core.Scheduler != nil {
		if err := addJobs(core, service); err != nil {
			return err
		}
	}

	opts := api.RouterOpts{QuietHTTP: core.DebugOpts.QuietHTTP, AppName: core.AppName}
	if core.Verifier != nil {
		opts.Verifier = core.Verifier
	}
	if core.ThrottleBucketStore != nil {
		opts.Throttle = core.ThrottleBucketStore
		opts.ThrottleID = conf.ThrottleGroupRender
	}
	core.PrepareWebService(api.NewRouter(service, opts))
	core.PrepareUDSService(api.AdminCommands(service, core.ActionLocks))

	if err := core.StartServices(); err != nil {
		core.StopServices()
		return err
	}
	err := core.WaitServicesDone()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Printf("[INFO] %s stopped", core.AppName)
	return nil
}

func addJobs(core *conf.Core, service *api.Service) error {
	if c := core.JobsConf.ArchivePrune; c != nil {
		job, err := api.ArchivePruneJob(service, c.Schedule, c.Retention())
		if err != nil {
			return err
		}
		core.Scheduler.AddCronJob(job)
	}
	if sch := core.JobsConf.CachePurge; sch != nil {
		job, err := api.CachePurgeJob(service, *sch, core.ActionLocks)
		if err != nil {
			return err
		}
		core.Scheduler.AddCronJob(job)
	}
	return nil
}

func readRequest(path string) (*invoice.Request, error) {
	var (
		src io.Reader = os.Stdin
		err error
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}
	req := &invoice.Request{}
	if err = json.NewDecoder(src).Decode(req); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

func render(cliCtx *cli.Context) error {
	req, err := readRequest(cliCtx.String("in"))
	if err != nil {
		return err
	}
	if t := cliCtx.String("template"); t != "" {
		req.Template = invoice.Template(t)
	}
	inv := req.Build(invoice.StandardDefaults, time.Now())
	out := cliCtx.String("out")
	if out == "" {
		out = inv.Filename()
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	n, err := composer.New().GenerateTo(cliCtx.Context, &inv, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(out)
		return err
	}
	log.Printf("[INFO] wrote %s (%d bytes)", out, n)
	return nil
}

func totals(cliCtx *cli.Context) error {
	req, err := readRequest(cliCtx.String("in"))
	if err != nil {
		return err
	}
	inv := req.Build(invoice.StandardDefaults, time.Now())
	enc := json.NewEncoder(cliCtx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(invoice.NewSummary(&inv))
}
