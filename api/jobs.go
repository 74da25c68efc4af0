package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/zeptools/gw-invoice/locks/keyonlylocks"
	"github.com/zeptools/gw-invoice/schedjobs"
)

// DefaultRetention applies when an archive prune job has no retention set
const DefaultRetention = 365 * 24 * time.Hour

// ArchivePruneJob deletes ledger records older than retention
func ArchivePruneJob(svc *Service, sch schedjobs.Schedule, retention time.Duration) (*schedjobs.CronJob, error) {
	if svc.Ledger == nil {
		return nil, errors.New("archive-prune: archive not configured")
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return schedjobs.NewCronJob("archive-prune", sch, func(ctx context.Context) error {
		_, err := svc.Ledger.Prune(ctx, svc.now().Add(-retention))
		return err
	}), nil
}

// CachePurgeJob empties the render cache. It shares the admin purge lock
func CachePurgeJob(svc *Service, sch schedjobs.Schedule, actionLocks *sync.Map) (*schedjobs.CronJob, error) {
	if svc.Cache == nil {
		return nil, errors.New("cache-purge: cache not configured")
	}
	return schedjobs.NewCronJob("cache-purge", sch, func(ctx context.Context) error {
		ran, err := keyonlylocks.TryWith(actionLocks, []string{cachePurgeLock}, func() error {
			_, err := svc.Cache.Purge(ctx)
			return err
		})
		if !ran {
			log.Print("[WARN][Jobs] cache purge already running, skipped")
		}
		return err
	}), nil
}
