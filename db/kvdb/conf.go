package kvdb

import (
	"fmt"
	"time"
)

type Conf struct {
	Type string `json:"type"` // redis, memory
	Host string `json:"host"`
	Port int    `json:"port"`
	PW   string `json:"pw"`
	DB   int    `json:"db"` // optional db number e.g. redis

	DialTimeoutSec int `json:"dial_timeout_sec"` // 0 = 5
}

func (c *Conf) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Conf) DialTimeout() time.Duration {
	if c.DialTimeoutSec > 0 {
		return time.Duration(c.DialTimeoutSec) * time.Second
	}
	return 5 * time.Second
}
