package conf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/zeptools/gw-invoice/cache"
	"github.com/zeptools/gw-invoice/db"
	"github.com/zeptools/gw-invoice/db/kvdb"
	"github.com/zeptools/gw-invoice/db/kvdb/impls/memory"
	"github.com/zeptools/gw-invoice/db/kvdb/impls/redis"
	"github.com/zeptools/gw-invoice/db/sqldb"
	"github.com/zeptools/gw-invoice/db/sqldb/impls/mysql"
	"github.com/zeptools/gw-invoice/db/sqldb/impls/pgsql"
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/schedjobs"
	"github.com/zeptools/gw-invoice/sec"
	"github.com/zeptools/gw-invoice/storages"
	"github.com/zeptools/gw-invoice/storages/impls/local"
	"github.com/zeptools/gw-invoice/storages/impls/s3"
	"github.com/zeptools/gw-invoice/svc"
	"github.com/zeptools/gw-invoice/throttle"
	"github.com/zeptools/gw-invoice/uds"
	"github.com/zeptools/gw-invoice/web"
)

// DebugOpts - .core.json debug_opts
type DebugOpts struct {
	AuthBreak    bool `json:"auth_break"`    // serve /v1/ without token checks
	QuietRenders bool `json:"quiet_renders"` // no log line per render
	QuietHTTP    bool `json:"quiet_http"`    // no log line per request
}

// CacheConf names the render cache part of KVConf
type CacheConf = cache.Conf

// KVConf - .kv-databases.json, backend and cache settings side by side
type KVConf struct {
	kvdb.Conf
	CacheConf
}

// ThrottleConf - .throttle.json
type ThrottleConf struct {
	Render              throttle.BucketConf `json:"render"`
	CleanupCycleSec     int                 `json:"cleanup_cycle_sec"`      // 0 = 60
	CleanupOlderThanSec int                 `json:"cleanup_older_than_sec"` // 0 = 600
}

// JobsConf - .jobs.json, maintenance jobs. A nil entry disables the job
type JobsConf struct {
	ArchivePrune *ArchivePruneConf   `json:"archive_prune"`
	CachePurge   *schedjobs.Schedule `json:"cache_purge"`
}

type ArchivePruneConf struct {
	schedjobs.Schedule
	RetentionDays int `json:"retention_days"` // 0 = 365
}

func (c *ArchivePruneConf) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// ThrottleGroupRender is the bucket group guarding the render routes
const ThrottleGroupRender = "render"

// Core - common config and the long-lived pieces built from it
type Core struct {
	AppName     string           `json:"app_name"`
	Listen      string           `json:"listen"`       // HTTP Server Listen IP:PORT Address
	Host        string           `json:"host"`         // HTTP Host. Can be used to generate public url endpoints
	AdminSocket string           `json:"admin_socket"` // optional unix socket path for admin commands
	DebugOpts   DebugOpts        `json:"debug_opts"`   // Debug Options
	Render      invoice.Defaults `json:"render"`       // defaults for fields a request leaves empty

	AppRoot    string             `json:"-"` // Filled from compiled paths
	RootCtx    context.Context    `json:"-"` // Global Context with RootCancel
	RootCancel context.CancelFunc `json:"-"` // CancelFunc for RootCtx

	WebService          *web.Service                  `json:"-"` // PrepareWebService
	UDSService          *uds.Service                  `json:"-"` // PrepareUDSService
	ThrottleConf        *ThrottleConf                 `json:"-"` // PrepareThrottleBucketStore
	ThrottleBucketStore *throttle.BucketStore[string] `json:"-"` // PrepareThrottleBucketStore
	ActionLocks         *sync.Map                     `json:"-"` // map[string]struct{}, see keyonlylocks
	KVDBConf            *KVConf                       `json:"-"` // PrepareKVDatabase
	BackendKVDBClient   kvdb.Client                   `json:"-"` // PrepareKVDatabase
	SQLDBConfs          map[string]*sqldb.Conf        `json:"-"` // PrepareSQLDatabases
	BackendSQLDBClients map[string]sqldb.Client       `json:"-"` // PrepareSQLDatabases
	StorageConf         *storages.Conf                `json:"-"` // PrepareStorage
	Storage             storages.Store                `json:"-"` // PrepareStorage
	AuthConf            *sec.VerifierConf             `json:"-"` // PrepareAuth
	Verifier            *sec.Verifier                 `json:"-"` // PrepareAuth
	JobsConf            *JobsConf                     `json:"-"` // PrepareScheduler
	Scheduler           *schedjobs.Scheduler          `json:"-"` // PrepareScheduler

	services []svc.Service // Services to Manage
	done     chan error
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. prepare base fields
// 4. Start ShutdownSignalListener
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	found, err := c.loadJSON(".core.json", c)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s is required", c.configPath(".core.json"))
	}
	if c.AppName == "" {
		c.AppName = "gw-invoice"
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.ActionLocks = &sync.Map{}
	c.startShutdownSignalListener()
	return nil
}

func (c *Core) configPath(name string) string {
	return filepath.Join(c.AppRoot, "config", name)
}

// loadJSON decodes config/<name> into dst. A missing file is not an error
func (c *Core) loadJSON(name string, dst any) (bool, error) {
	confBytes, err := os.ReadFile(c.configPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[INFO][CORE] %s not found, skipped", name)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = json.Unmarshal(confBytes, dst); err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return true, nil
}

func (c *Core) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
	log.Printf("[INFO] total services: %d", len(c.services))
}

func (c *Core) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		err := s.Start()
		if err != nil {
			return err
		}
		go func(s svc.Service) {
			err := <-s.Done()
			c.done <- err
		}(s)
	}
	return nil
}

// WaitServicesDone blocks until every service has reported, returning the first error
func (c *Core) WaitServicesDone() error {
	var first error
	for i := 0; i < len(c.services); i++ {
		if err := <-c.done; err != nil && first == nil {
			first = err
			// one failure takes the rest down
			c.RootCancel()
		}
	}
	return first
}

func (c *Core) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

var once sync.Once

func (c *Core) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

func (c *Core) PrepareWebService(router http.Handler) {
	c.WebService = web.NewService(c.RootCtx, c.Listen, router)
	c.AddService(c.WebService)
}

// PrepareUDSService starts the admin socket when admin_socket is configured
func (c *Core) PrepareUDSService(cmdMap map[string]uds.CmdHnd) {
	if c.AdminSocket == "" {
		return
	}
	c.UDSService = uds.NewService(c.RootCtx, c.AdminSocket, cmdMap)
	c.AddService(c.UDSService)
}

// PrepareThrottleBucketStore sets up per-IP throttling from .throttle.json
func (c *Core) PrepareThrottleBucketStore() error {
	conf := &ThrottleConf{}
	found, err := c.loadJSON(".throttle.json", conf)
	if err != nil || !found {
		return err
	}
	cycle := time.Duration(conf.CleanupCycleSec) * time.Second
	if cycle <= 0 {
		cycle = time.Minute
	}
	olderThan := time.Duration(conf.CleanupOlderThanSec) * time.Second
	if olderThan <= 0 {
		olderThan = 10 * time.Minute
	}
	c.ThrottleConf = conf
	c.ThrottleBucketStore = throttle.NewBucketStore[string](c.RootCtx, cycle, olderThan)
	c.ThrottleBucketStore.SetBucketGroup(ThrottleGroupRender, &conf.Render)
	c.AddService(c.ThrottleBucketStore)
	return nil
}

// PrepareKVDatabase connects the render cache backend from .kv-databases.json
func (c *Core) PrepareKVDatabase() error {
	conf := &KVConf{}
	found, err := c.loadJSON(".kv-databases.json", conf)
	if err != nil || !found {
		return err
	}
	redis.Register()
	memory.Register()
	client, err := kvdb.New(&conf.Conf)
	if err != nil {
		return err
	}
	if err = client.Init(); err != nil {
		return err
	}
	c.KVDBConf = conf
	c.BackendKVDBClient = client
	return nil
}

// PrepareSQLDatabases builds & inits the clients in .sql-databases.json
func (c *Core) PrepareSQLDatabases() error {
	confs := make(map[string]*sqldb.Conf)
	found, err := c.loadJSON(".sql-databases.json", &confs)
	if err != nil || !found {
		return err
	}
	// Registering Supported Implementations
	pgsql.Register()
	mysql.Register()

	c.SQLDBConfs = confs
	c.BackendSQLDBClients = make(map[string]sqldb.Client, len(confs))
	for dbName, sqlDBConf := range confs {
		dbClient, err := sqldb.New(sqlDBConf)
		if err != nil {
			return fmt.Errorf("%s: %w", dbName, err)
		}
		if err = dbClient.Init(); err != nil {
			return fmt.Errorf("%s: %w", dbName, err)
		}
		c.BackendSQLDBClients[dbName] = dbClient
	}
	return nil
}

// ArchiveDB picks the client named "archive", or the only one configured
func (c *Core) ArchiveDB() (sqldb.Client, bool) {
	if client, ok := c.BackendSQLDBClients["archive"]; ok {
		return client, true
	}
	if len(c.BackendSQLDBClients) == 1 {
		for _, client := range c.BackendSQLDBClients {
			return client, true
		}
	}
	return nil, false
}

// PrepareStorage sets up the document copy target from .storages.json
func (c *Core) PrepareStorage() error {
	conf := &storages.Conf{}
	found, err := c.loadJSON(".storages.json", conf)
	if err != nil || !found {
		return err
	}
	s3.Register()
	local.Register()
	store, err := storages.New(conf)
	if err != nil {
		return err
	}
	c.StorageConf = conf
	c.Storage = store
	return nil
}

// PrepareAuth loads the token verifier from .auth.json
func (c *Core) PrepareAuth() error {
	conf := &sec.VerifierConf{}
	found, err := c.loadJSON(".auth.json", conf)
	if err != nil || !found {
		return err
	}
	for _, p := range []*string{&conf.PublicKeyPath, &conf.KeyDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(c.AppRoot, *p)
		}
	}
	verifier, err := sec.NewVerifier(*conf)
	if err != nil {
		return err
	}
	c.AuthConf = conf
	c.Verifier = verifier
	return nil
}

// PrepareScheduler sets up the maintenance job runner from .jobs.json.
// Jobs are added by the caller once their targets exist
func (c *Core) PrepareScheduler() error {
	conf := &JobsConf{}
	found, err := c.loadJSON(".jobs.json", conf)
	if err != nil || !found {
		return err
	}
	c.JobsConf = conf
	c.Scheduler = schedjobs.NewScheduler(c.RootCtx, c.ActionLocks)
	c.AddService(c.Scheduler)
	return nil
}

func (c *Core) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	if c.BackendKVDBClient != nil {
		db.CloseClient("kvdb:"+c.KVDBConf.Type, c.BackendKVDBClient)
	}
	names := make([]string, 0, len(c.BackendSQLDBClients))
	for name := range c.BackendSQLDBClients {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		db.CloseClient("sqldb:"+name, c.BackendSQLDBClients[name])
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}
