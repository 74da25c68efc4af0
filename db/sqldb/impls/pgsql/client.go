package pgsql

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zeptools/gw-invoice/db/sqldb"
)

type Client struct {
	Handle // [Embedded] for Promoted Methods
	conf   *sqldb.Conf
	dsn    string
}

// Ensure pgsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

// Register makes "pgsql" available to sqldb.New
func Register() {
	sqldb.RegisterFactory("pgsql", func(conf *sqldb.Conf) (sqldb.Client, error) {
		return NewClient(conf), nil
	})
}

func NewClient(conf *sqldb.Conf) *Client {
	return &Client{conf: conf, dsn: BuildDSN(conf)}
}

// BuildDSN returns conf.DSN when set, a keyword/value DSN otherwise
func BuildDSN(conf *sqldb.Conf) string {
	if conf.DSN != "" {
		return conf.DSN
	}
	// NOTE: sslmode=disable is often used for local dev, adjust with conf.DSN
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		conf.Host,
		conf.Port,
		conf.User,
		conf.PW,
		conf.DB,
		conf.Zone(),
	)
}

func (c *Client) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		return err
	}
	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	log.Print("[INFO][pgsql] client initialized")
	return nil
}

func (c *Client) Conf() *sqldb.Conf {
	return c.conf
}

func (c *Client) DSN() string {
	return c.dsn
}

func (c *Client) Open(ctx context.Context) error {
	config, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return fmt.Errorf("failed to parse pgx config: %w", err)
	}
	config.MaxConns = int32(c.conf.PoolMax())
	config.MinConns = int32(c.conf.PoolMin())
	config.MaxConnLifetime = c.conf.ConnMaxLifetime()
	c.Pool, err = pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect pgx Pool: %w", err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return fmt.Errorf("pgsql client not initialized")
	}
	return c.Pool.Ping(ctx)
}

func (c *Client) Close() error {
	if c.Pool == nil {
		return nil
	}
	log.Println("[INFO][pgsql] closing client")
	c.Pool.Close()
	return nil
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.Pool == nil {
		return nil, fmt.Errorf("pgsql client not initialized")
	}
	tx, err := c.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction failed: %w", err)
	}
	return &Tx{tx: tx}, nil
}
