package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/zeptools/gw-invoice/db/sqldb"
)

type Client struct {
	Handle // [Embedded] for Promoted Methods
	conf   *sqldb.Conf
	dsn    string
}

// Ensure mysql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

// Register makes "mysql" available to sqldb.New
func Register() {
	sqldb.RegisterFactory("mysql", func(conf *sqldb.Conf) (sqldb.Client, error) {
		return NewClient(conf), nil
	})
}

func NewClient(conf *sqldb.Conf) *Client {
	return &Client{conf: conf, dsn: BuildDSN(conf)}
}

// BuildDSN returns conf.DSN when set, otherwise formats one with the driver's Config
func BuildDSN(conf *sqldb.Conf) string {
	if conf.DSN != "" {
		return conf.DSN
	}
	cfg := mysql.NewConfig()
	cfg.User = conf.User
	cfg.Passwd = conf.PW
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", conf.Host, conf.Port)
	cfg.DBName = conf.DB
	cfg.ParseTime = true
	if loc, err := time.LoadLocation(conf.Zone()); err == nil {
		cfg.Loc = loc
	}
	return cfg.FormatDSN()
}

func (c *Client) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		return err
	}
	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("mysql ping failed: %w", err)
	}
	log.Println("[INFO][mysql] client initialized")
	return nil
}

func (c *Client) Open(_ context.Context) error {
	db, err := sql.Open("mysql", c.dsn)
	if err != nil {
		return err
	}
	db.SetConnMaxLifetime(c.conf.ConnMaxLifetime())
	db.SetMaxOpenConns(c.conf.PoolMax())
	db.SetMaxIdleConns(c.conf.PoolMax())
	c.DB = db
	return nil
}

func (c *Client) Conf() *sqldb.Conf {
	return c.conf
}

func (c *Client) DSN() string {
	return c.dsn
}

func (c *Client) Ping(ctx context.Context) error {
	if c.DB == nil {
		return fmt.Errorf("mysql client not initialized")
	}
	return c.DB.PingContext(ctx)
}

func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	log.Println("[INFO][mysql] closing client")
	return c.DB.Close()
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.DB == nil {
		return nil, fmt.Errorf("mysql client not initialized")
	}
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}
