package throttle

import "time"

type BucketConf struct {
	Burst     int           `json:"burst"`      // maximum number of tokens in the bucket
	Increment int           `json:"increment"`  // how many tokens to add each period
	PeriodSec float64       `json:"period_sec"` // how often to add Increment, in seconds
	Period    time.Duration `json:"-"`          // PeriodSec resolved by Normalize
}

// Normalize fills Period from PeriodSec and floors the counts at 1
func (c *BucketConf) Normalize() {
	if c.Period <= 0 {
		c.Period = time.Duration(c.PeriodSec * float64(time.Second))
	}
	if c.Period <= 0 {
		c.Period = time.Second
	}
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.Increment < 1 {
		c.Increment = 1
	}
}
