package conf

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zeptools/gw-invoice/db/kvdb/impls/memory"
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/sec"
)

func writeConfig(t *testing.T, root string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, "config")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func initCore(t *testing.T, root string) *Core {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	c := &Core{}
	if err := c.BaseInit(root, ctx, cancel); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestBaseInit(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, map[string]string{
		".core.json": `{"app_name":"billing","render":{"default_template":"classic","currency":"€"},"debug_opts":{"quiet_http":true}}`,
	})
	c := initCore(t, root)
	if c.AppName != "billing" || c.Listen != ":8080" {
		t.Errorf("core = %+v", c)
	}
	if c.Render.Template != invoice.TemplateClassic || c.Render.Currency != "€" || !c.DebugOpts.QuietHTTP {
		t.Errorf("render = %+v debug = %+v", c.Render, c.DebugOpts)
	}
	if c.ActionLocks == nil {
		t.Error("action locks not prepared")
	}
}

func TestBaseInit_RequiresCoreFile(t *testing.T) {
	c := &Core{}
	if err := c.BaseInit(t.TempDir(), context.Background(), func() {}); err == nil {
		t.Error("expected error")
	}
}

func TestOptionalFilesSkipped(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, map[string]string{".core.json": `{}`})
	c := initCore(t, root)
	for name, prepare := range map[string]func() error{
		"kv":       c.PrepareKVDatabase,
		"sql":      c.PrepareSQLDatabases,
		"storage":  c.PrepareStorage,
		"auth":     c.PrepareAuth,
		"throttle": c.PrepareThrottleBucketStore,
		"jobs":     c.PrepareScheduler,
	} {
		if err := prepare(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if c.BackendKVDBClient != nil || c.Storage != nil || c.Verifier != nil || c.ThrottleBucketStore != nil || c.Scheduler != nil {
		t.Error("optional pieces built without config")
	}
	if _, ok := c.ArchiveDB(); ok {
		t.Error("archive db without config")
	}
	c.PrepareUDSService(nil)
	if c.UDSService != nil {
		t.Error("admin socket without path")
	}
	c.ResourceCleanUp()
}

func TestPrepareConfigured(t *testing.T) {
	root := t.TempDir()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "keys"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := sec.SavePublicPEMKeyLocal(filepath.Join(root, "keys", "main_public.pem"), &key.PublicKey); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, root, map[string]string{
		".core.json":         `{"listen":"127.0.0.1:0"}`,
		".kv-databases.json": `{"type":"memory","cache_ttl_sec":30,"encryption_key":"0123456789abcdef0123456789abcdef"}`,
		".storages.json":     `{"type":"local","dir":"` + filepath.ToSlash(filepath.Join(root, "out")) + `"}`,
		".auth.json":         `{"key_dir":"keys","audience":"invoices"}`,
		".throttle.json":     `{"render":{"burst":5,"increment":1,"period_sec":2}}`,
		".jobs.json":         `{"archive_prune":{"hours":[3],"minutes":[15],"retention_days":90}}`,
	})
	c := initCore(t, root)
	for name, prepare := range map[string]func() error{
		"kv":       c.PrepareKVDatabase,
		"storage":  c.PrepareStorage,
		"auth":     c.PrepareAuth,
		"throttle": c.PrepareThrottleBucketStore,
		"jobs":     c.PrepareScheduler,
	} {
		if err := prepare(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	if _, ok := c.BackendKVDBClient.(*memory.Client); !ok {
		t.Errorf("kv client %T", c.BackendKVDBClient)
	}
	if c.KVDBConf.TTL() != 30*time.Second || c.KVDBConf.EncryptionKey == "" {
		t.Errorf("cache conf = %+v", c.KVDBConf.CacheConf)
	}
	if c.Storage == nil || c.Verifier == nil {
		t.Error("storage or verifier missing")
	}
	if c.ThrottleConf.Render.Period != 2*time.Second {
		t.Errorf("throttle period = %v", c.ThrottleConf.Render.Period)
	}
	if !c.ThrottleBucketStore.Allow(ThrottleGroupRender, "ip", time.Now()) {
		t.Error("render group not registered")
	}
	if c.Scheduler == nil || c.JobsConf.CachePurge != nil {
		t.Errorf("jobs = %+v", c.JobsConf)
	}
	if p := c.JobsConf.ArchivePrune; p == nil || p.Retention() != 90*24*time.Hour || len(p.Hours) != 1 {
		t.Errorf("archive prune = %+v", p)
	}
}

func TestPrepareSQLDatabases_Unsupported(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, map[string]string{
		".core.json":          `{}`,
		".sql-databases.json": `{"archive":{"type":"oracle"}}`,
	})
	c := initCore(t, root)
	if err := c.PrepareSQLDatabases(); err == nil {
		t.Error("expected error")
	}
}

func TestServicesLifecycle(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, map[string]string{
		".core.json":     `{"listen":"127.0.0.1:0"}`,
		".throttle.json": `{"render":{"burst":1},"cleanup_cycle_sec":1}`,
	})
	c := initCore(t, root)
	if err := c.PrepareThrottleBucketStore(); err != nil {
		t.Fatal(err)
	}
	c.PrepareWebService(nil)
	if err := c.StartServices(); err != nil {
		t.Fatal(err)
	}
	c.RootCancel()
	done := make(chan error, 1)
	go func() { done <- c.WaitServicesDone() }()
	select {
	case err := <-done:
		if err != nil {
			t.Error(err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("services did not finish")
	}
}
