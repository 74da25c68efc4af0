// Package schedjobs runs maintenance tasks on minute-resolution cron schedules.
package schedjobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/zeptools/gw-invoice/locks/keyonlylocks"
	"github.com/zeptools/gw-invoice/svc"
)

type Scheduler struct {
	Ctx    context.Context    // Service Context
	cancel context.CancelFunc // Service Context CancelFunc
	state  int
	done   chan error

	mu       sync.Mutex
	cronJobs []*CronJob
	wg       sync.WaitGroup
	locks    *sync.Map // a job still running from the last minute is skipped

	OnCronJobFinished func(job *CronJob, err error) // default callback for every job
}

// Ensure Scheduler implements svc.Service
var _ svc.Service = (*Scheduler)(nil)

func NewScheduler(parentCtx context.Context, actionLocks *sync.Map) *Scheduler {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	if actionLocks == nil {
		actionLocks = &sync.Map{}
	}
	return &Scheduler{
		Ctx:    svcCtx,
		cancel: svcCancel,
		state:  svc.StateREADY,
		done:   make(chan error, 1),
		locks:  actionLocks,
		OnCronJobFinished: func(job *CronJob, err error) {
			if err != nil {
				log.Printf("[ERROR][Jobs] %s: %v", job.ID, err)
			}
		},
	}
}

func (s *Scheduler) Name() string {
	return "JobScheduler"
}

func (s *Scheduler) Start() error {
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	s.state = svc.StateRUNNING
	go s.loop()
	log.Printf("[INFO][Jobs] scheduler started with %d jobs", len(s.CronJobs()))
	return nil
}

func (s *Scheduler) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][Jobs] cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
}

func (s *Scheduler) Done() <-chan error {
	return s.done
}

func (s *Scheduler) loop() {
	// align ticks to the minute
	timer := time.NewTimer(time.Until(time.Now().Truncate(time.Minute).Add(time.Minute)))
	defer timer.Stop()
	for {
		select {
		case <-s.Ctx.Done():
			s.wg.Wait() // let running tasks see the cancellation and return
			log.Println("[INFO][Jobs] scheduler stopped")
			s.done <- nil
			return
		case now := <-timer.C:
			s.RunDue(now)
			timer.Reset(time.Until(now.Truncate(time.Minute).Add(time.Minute)))
		}
	}
}

// RunDue starts every job matching now and returns how many were started
func (s *Scheduler) RunDue(now time.Time) int {
	started := 0
	for _, job := range s.CronJobs() {
		if job.Matches(now) && s.runCronJob(job) {
			started++
		}
	}
	return started
}

func (s *Scheduler) runCronJob(job *CronJob) bool {
	key := "job:" + job.ID
	if _, ok := keyonlylocks.AcquireLocks(s.locks, []string{key}); !ok {
		log.Printf("[WARN][Jobs] %s still running, skipped", job.ID)
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer keyonlylocks.ReleaseLocks(s.locks, []string{key})
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			err = job.Task(s.Ctx)
		}()
		if job.OnFinished != nil {
			job.OnFinished(err)
		}
		if s.OnCronJobFinished != nil {
			s.OnCronJobFinished(job, err)
		}
	}()
	return true
}

// Wait blocks until the started jobs return
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) AddCronJob(job *CronJob) {
	s.mu.Lock()
	s.cronJobs = append(s.cronJobs, job)
	s.mu.Unlock()
	log.Printf("[INFO][Jobs] cron job added: %s", job.ID)
}

// CronJobs returns a copy of all registered cron jobs
func (s *Scheduler) CronJobs() []*CronJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*CronJob(nil), s.cronJobs...)
}

// DeleteCronJob removes a cron job by its ID
func (s *Scheduler) DeleteCronJob(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cronJobs[:0]
	for _, job := range s.cronJobs {
		if job.ID != jobID {
			kept = append(kept, job)
		}
	}
	s.cronJobs = kept
}
