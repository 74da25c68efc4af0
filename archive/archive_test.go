package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/zeptools/gw-invoice/db/sqldb"
	"github.com/zeptools/gw-invoice/invoice"
)

var ctx = context.Background()

type exec struct {
	query string
	args  []any
}

type result int64

func (r result) RowsAffected() (int64, error) { return int64(r), nil }
func (r result) LastInsertId() (int64, error) { return 0, nil }

// fakeDB keeps inserted rows in memory and serves them back in insert order
type fakeDB struct {
	conf  sqldb.Conf
	execs []exec
	rows  [][]any
}

func (f *fakeDB) Init() error { return nil }
func (f *fakeDB) Open(context.Context) error { return nil }
func (f *fakeDB) Close() error { return nil }
func (f *fakeDB) Conf() *sqldb.Conf { return &f.conf }
func (f *fakeDB) DSN() string { return "" }
func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) BeginTx(context.Context) (sqldb.Tx, error) { return nil, errors.New("no tx") }

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (sqldb.Result, error) {
	f.execs = append(f.execs, exec{query, args})
	switch {
	case strings.HasPrefix(query, "INSERT"):
		for _, row := range f.rows {
			if row[0] == args[0] {
				return nil, fmt.Errorf("%w: id %v", sqldb.ErrDuplicateKey, args[0])
			}
		}
		f.rows = append(f.rows, args)
		return result(1), nil
	case strings.HasPrefix(query, "UPDATE"):
		for _, row := range f.rows {
			if row[0] == args[1] {
				row[10] = args[0]
				return result(1), nil
			}
		}
		return result(0), nil
	case strings.HasPrefix(query, "DELETE"):
		cutoff := args[0].(time.Time)
		kept := f.rows[:0]
		for _, row := range f.rows {
			if row[11].(time.Time).Before(cutoff) {
				continue
			}
			kept = append(kept, row)
		}
		n := len(f.rows) - len(kept)
		f.rows = kept
		return result(n), nil
	}
	return result(0), nil
}

func (f *fakeDB) matching(query string, args []any) [][]any {
	var out [][]any
	for _, row := range f.rows {
		switch {
		case strings.Contains(query, "WHERE id ="):
			if row[0] == args[0] {
				out = append(out, row)
			}
		case strings.Contains(query, "WHERE number ="):
			if row[1] == args[0] {
				out = append(out, row)
			}
		default:
			out = append(out, row)
		}
	}
	return out
}

func (f *fakeDB) QueryRows(_ context.Context, query string, args ...any) (sqldb.Rows, error) {
	return &fakeRows{data: f.matching(query, args)}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, query string, args ...any) sqldb.Row {
	rows := f.matching(query, args)
	if len(rows) == 0 {
		return fakeRow{}
	}
	return fakeRow{rows[0]}
}

type fakeRows struct {
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return assign(r.data[r.i-1], dest) }
func (r *fakeRows) Close() error { return nil }
func (r *fakeRows) Err() error { return nil }

type fakeRow struct {
	vals []any
}

func (r fakeRow) Scan(dest ...any) error {
	if r.vals == nil {
		return sqldb.ErrNoRows
	}
	return assign(r.vals, dest)
}

func assign(vals []any, dest []any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = vals[i].(string)
		case *invoice.Template:
			*p = invoice.Template(vals[i].(string))
		case *int:
			*p = vals[i].(int)
		case *float64:
			*p = vals[i].(float64)
		case *time.Time:
			*p = vals[i].(time.Time)
		default:
			return errors.New("unexpected scan target")
		}
	}
	return nil
}

var fixedNow = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

func newLedger(t *testing.T, dbType string) (*Ledger, *fakeDB) {
	t.Helper()
	db := &fakeDB{conf: sqldb.Conf{Type: dbType}}
	l, err := NewLedger(db)
	if err != nil {
		t.Fatal(err)
	}
	l.Now = func() time.Time { return fixedNow }
	ids := 0
	l.NewID = func() string {
		ids++
		return "id-" + string(rune('0'+ids))
	}
	return l, db
}

func sample(number string) *invoice.Invoice {
	return &invoice.Invoice{
		Template: "bogus",
		Number:   number,
		Currency: "$",
		Items:    []invoice.LineItem{{Description: "Design", Quantity: 2, UnitPrice: 150}, {Description: "Hosting", Quantity: 1, UnitPrice: 50}},
		TaxRate:  10,
	}
}

func TestNewLedger_Dialects(t *testing.T) {
	pg, _ := newLedger(t, "pgsql")
	if q := pg.stmt("insert"); !strings.Contains(q, "$12") || strings.Contains(q, "?") {
		t.Errorf("pgsql insert = %s", q)
	}
	my, _ := newLedger(t, "mysql")
	if q := my.stmt("insert"); strings.Contains(q, "$1") || strings.Count(q, "?") != 12 {
		t.Errorf("mysql insert = %s", q)
	}
	if !strings.Contains(my.stmt("schema"), "ENGINE=InnoDB") {
		t.Error("mysql got the wrong schema")
	}
	if _, err := NewLedger(&fakeDB{conf: sqldb.Conf{Type: "sqlite"}}); !errors.Is(err, sqldb.ErrUnsupportedType) {
		t.Errorf("err = %v", err)
	}
}

func TestMigrate_SplitsStatements(t *testing.T) {
	l, db := newLedger(t, "pgsql")
	if err := l.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	if len(db.execs) != 2 {
		t.Fatalf("ran %d statements", len(db.execs))
	}
	if !strings.Contains(db.execs[1].query, "CREATE INDEX") {
		t.Errorf("second statement = %s", db.execs[1].query)
	}
}

func TestRecordAndQuery(t *testing.T) {
	l, _ := newLedger(t, "pgsql")
	pdf := []byte("%PDF-1.3")
	r, err := l.Record(ctx, sample("INV-9"), pdf, "")
	if err != nil {
		t.Fatal(err)
	}
	if r.Template != invoice.TemplateModern {
		t.Errorf("template = %s", r.Template)
	}
	if r.Subtotal != 350 || r.Tax != 35 || r.Total != 385 || r.ItemCount != 2 {
		t.Errorf("figures = %+v", r)
	}
	if r.Bytes != len(pdf) || len(r.SHA256) != 64 {
		t.Errorf("size/hash = %d %s", r.Bytes, r.SHA256)
	}
	if _, err := l.Record(ctx, sample("INV-9"), pdf, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Record(ctx, sample("INV-10"), pdf, ""); err != nil {
		t.Fatal(err)
	}

	got, err := l.Get(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Number != "INV-9" || !got.CreatedAt.Equal(fixedNow) {
		t.Errorf("got %+v", got)
	}
	if _, err := l.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}

	list, err := l.ByNumber(ctx, "INV-9")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("by number = %d records", len(list))
	}
	recent, err := l.Recent(ctx, 0)
	if err != nil || len(recent) != 3 {
		t.Errorf("recent = %d, %v", len(recent), err)
	}
}

func TestInsert_RetriesTakenID(t *testing.T) {
	l, db := newLedger(t, "mysql")
	ids := []string{"same", "same", "fresh", "same", "same"}
	l.NewID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	pdf := []byte("%PDF-1.3")
	if _, err := l.Record(ctx, sample("INV-1"), pdf, ""); err != nil {
		t.Fatal(err)
	}
	r, err := l.Record(ctx, sample("INV-2"), pdf, "")
	if err != nil {
		t.Fatal(err)
	}
	if r.ID != "fresh" || len(db.rows) != 2 {
		t.Errorf("id = %s, rows = %d", r.ID, len(db.rows))
	}

	// one retry only
	_, err = l.Record(ctx, sample("INV-3"), pdf, "")
	if !errors.Is(err, sqldb.ErrDuplicateKey) {
		t.Errorf("second collision err = %v", err)
	}
}

func TestSetStorageURL(t *testing.T) {
	l, _ := newLedger(t, "mysql")
	r, _ := l.Record(ctx, sample("INV-1"), []byte("x"), "")
	if err := l.SetStorageURL(ctx, r.ID, "s3://bucket/invoice_INV-1.pdf"); err != nil {
		t.Fatal(err)
	}
	got, _ := l.Get(ctx, r.ID)
	if got.StorageURL != "s3://bucket/invoice_INV-1.pdf" {
		t.Errorf("url = %q", got.StorageURL)
	}
	if err := l.SetStorageURL(ctx, "nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestPrune(t *testing.T) {
	l, db := newLedger(t, "pgsql")
	_, _ = l.Record(ctx, sample("INV-1"), []byte("x"), "")
	l.Now = func() time.Time { return fixedNow.Add(48 * time.Hour) }
	_, _ = l.Record(ctx, sample("INV-2"), []byte("y"), "")

	n, err := l.Prune(ctx, fixedNow.Add(24*time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("pruned %d, err %v", n, err)
	}
	if len(db.rows) != 1 || db.rows[0][1] != "INV-2" {
		t.Errorf("rows left = %v", db.rows)
	}
}
