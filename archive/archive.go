// Package archive keeps a ledger row for every generated invoice.
package archive

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zeptools/gw-invoice/db/sqldb"
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/sec"
)

//go:embed sql
var sqlFS embed.FS

const stmtGroup = "archive"

var ErrNotFound = errors.New("archive: record not found")

// Record is one ledger row
type Record struct {
	ID         string           `json:"id"`
	Number     string           `json:"invoiceNumber"`
	Template   invoice.Template `json:"template"`
	Currency   string           `json:"currency"`
	ItemCount  int              `json:"itemCount"`
	Subtotal   float64          `json:"subtotal"`
	Tax        float64          `json:"tax"`
	Total      float64          `json:"total"`
	Bytes      int              `json:"bytes"`
	SHA256     string           `json:"sha256"`
	StorageURL string           `json:"storageUrl,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

func (r *Record) TargetFields() []any {
	return []any{
		&r.ID, &r.Number, &r.Template, &r.Currency, &r.ItemCount,
		&r.Subtotal, &r.Tax, &r.Total, &r.Bytes, &r.SHA256, &r.StorageURL, &r.CreatedAt,
	}
}

type Ledger struct {
	db    sqldb.Client
	stmts *sqldb.RawStore
	Now   func() time.Time
	NewID func() string
}

// NewLedger loads the statements for the client's database type
func NewLedger(db sqldb.Client) (*Ledger, error) {
	stmts := sqldb.NewRawStore()
	n, err := stmts.Load(sqlFS, "sql", stmtGroup, db.Conf().Type)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	if _, ok := stmts.Get(stmtKey("schema")); !ok {
		return nil, fmt.Errorf("archive: %w: %q", sqldb.ErrUnsupportedType, db.Conf().Type)
	}
	log.Printf("[INFO][Archive] %d statements loaded for %s", n, db.Conf().Type)
	return &Ledger{
		db:    db,
		stmts: stmts,
		Now:   time.Now,
		NewID: func() string { return uuid.NewString() },
	}, nil
}

func stmtKey(name string) string {
	return sqldb.StoreGroupedStmtKey{Group: stmtGroup, StmtName: name}.String()
}

func (l *Ledger) stmt(name string) string {
	return l.stmts.MustGet(stmtKey(name))
}

// Migrate creates the table and its index when missing
func (l *Ledger) Migrate(ctx context.Context) error {
	for _, s := range strings.Split(l.stmt("schema"), ";") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, err := l.db.Exec(ctx, s); err != nil {
			return fmt.Errorf("archive: migrate: %w", err)
		}
	}
	return nil
}

// NewRecord describes pdf rendered from inv
func (l *Ledger) NewRecord(inv *invoice.Invoice, pdf []byte, storageURL string) *Record {
	t := inv.Totals()
	return &Record{
		ID:         l.NewID(),
		Number:     inv.Number,
		Template:   inv.Template.Resolve(),
		Currency:   inv.Currency,
		ItemCount:  len(inv.Items),
		Subtotal:   t.Subtotal,
		Tax:        t.Tax,
		Total:      t.Total,
		Bytes:      len(pdf),
		SHA256:     sec.HashHexSHA256(pdf),
		StorageURL: storageURL,
		CreatedAt:  l.Now().UTC().Truncate(time.Microsecond),
	}
}

// Record inserts a row for pdf and returns it
func (l *Ledger) Record(ctx context.Context, inv *invoice.Invoice, pdf []byte, storageURL string) (*Record, error) {
	r := l.NewRecord(inv, pdf, storageURL)
	if err := l.Insert(ctx, l.db, r); err != nil {
		return nil, err
	}
	log.Printf("[INFO][Archive] recorded %q id=%s bytes=%d", r.Number, r.ID, r.Bytes)
	return r, nil
}

// Insert writes r through h, which may be a transaction. An id that is
// already taken is replaced by a fresh one once.
func (l *Ledger) Insert(ctx context.Context, h sqldb.Handle, r *Record) error {
	err := l.insert(ctx, h, r)
	if errors.Is(err, sqldb.ErrDuplicateKey) {
		log.Printf("[WARN][Archive] id %s taken, retrying %q with a new id", r.ID, r.Number)
		r.ID = l.NewID()
		err = l.insert(ctx, h, r)
	}
	if err != nil {
		return fmt.Errorf("archive: insert %q: %w", r.Number, err)
	}
	return nil
}

func (l *Ledger) insert(ctx context.Context, h sqldb.Handle, r *Record) error {
	_, err := h.Exec(ctx, l.stmt("insert"),
		r.ID, r.Number, string(r.Template), r.Currency, r.ItemCount,
		r.Subtotal, r.Tax, r.Total, r.Bytes, r.SHA256, r.StorageURL, r.CreatedAt,
	)
	return err
}

// SetStorageURL attaches the uploaded copy's location
func (l *Ledger) SetStorageURL(ctx context.Context, id string, url string) error {
	res, err := l.db.Exec(ctx, l.stmt("set_storage_url"), url, id)
	if err != nil {
		return fmt.Errorf("archive: set storage url: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (l *Ledger) Get(ctx context.Context, id string) (*Record, error) {
	r, err := sqldb.QueryItem[Record, *Record](ctx, l.db, l.stmt("get"), id)
	if errors.Is(err, sqldb.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("archive: get %s: %w", id, err)
	}
	return r, nil
}

// ByNumber lists the records of one invoice number, newest first
func (l *Ledger) ByNumber(ctx context.Context, number string) ([]*Record, error) {
	records, err := sqldb.QueryItems[Record, *Record](ctx, l.db, l.stmt("list_by_number"), number)
	if err != nil {
		return nil, fmt.Errorf("archive: list %q: %w", number, err)
	}
	return records, nil
}

func (l *Ledger) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}
	records, err := sqldb.QueryItems[Record, *Record](ctx, l.db, l.stmt("list_recent"), limit)
	if err != nil {
		return nil, fmt.Errorf("archive: recent: %w", err)
	}
	return records, nil
}

// Prune deletes the records created before cutoff and returns how many went
func (l *Ledger) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := l.db.Exec(ctx, l.stmt("delete_before"), cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("archive: prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("archive: prune: %w", err)
	}
	log.Printf("[INFO][Archive] pruned %d records before %s", n, cutoff.UTC().Format(time.RFC3339))
	return n, nil
}
