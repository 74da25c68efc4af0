package sqldb

import "time"

type Conf struct {
	Type string `json:"type"` // pgsql, mysql
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"`
	DB   string `json:"db"`
	TZ   string `json:"tz"`  // Connection Timezone
	DSN  string `json:"dsn"` // To Overwrite Default DSN

	MaxConns           int `json:"max_conns"`             // 0 = 10
	MinConns           int `json:"min_conns"`             // pgsql only. 0 = 2
	ConnMaxLifetimeSec int `json:"conn_max_lifetime_sec"` // 0 = 180
}

func (c *Conf) PoolMax() int {
	if c.MaxConns > 0 {
		return c.MaxConns
	}
	return 10
}

func (c *Conf) PoolMin() int {
	if c.MinConns > 0 {
		return c.MinConns
	}
	return 2
}

func (c *Conf) ConnMaxLifetime() time.Duration {
	if c.ConnMaxLifetimeSec > 0 {
		return time.Duration(c.ConnMaxLifetimeSec) * time.Second
	}
	return 3 * time.Minute
}

// Zone returns TZ, UTC when empty
func (c *Conf) Zone() string {
	if c.TZ == "" {
		return "UTC"
	}
	return c.TZ
}
