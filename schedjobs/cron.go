package schedjobs

import (
	"context"
	"time"
)

type CronJob struct {
	ID          string
	Minutes     uint64 // 60 bits
	Hours       uint32 // 24 bits
	DaysOfMonth uint32 // 31 bits
	Weekdays    uint8  // 7 bits
	Task        func(ctx context.Context) error
	OnFinished  func(err error) // optional, after each run
}

// NewEveryMinEmptyCronJob provides a cronjob matching every minute without a task as a template
// Assign a Task, and Modify its time condition
func NewEveryMinEmptyCronJob(jobID string) *CronJob {
	return &CronJob{
		ID:          jobID,
		Minutes:     AllMinutes,
		Hours:       AllHours,
		DaysOfMonth: AllDaysOfMonth,
		Weekdays:    AllWeekdays,
	}
}

const (
	AllMinutes     uint64 = 0xFFFFFFFFFFFFFFF // 60 bits set
	AllHours       uint32 = 0xFFFFFF          // 24 bits set
	AllWeekdays    uint8  = 0b01111111        // sun:0b00000001, mon:0b00000010, ..., sat:0b01000000
	AllDaysOfMonth uint32 = 0x7FFFFFFF        // 31 bits set
)

func (job *CronJob) Matches(now time.Time) bool {
	if (job.Minutes & (1 << now.Minute())) == 0 {
		return false
	}
	if (job.Hours & (1 << now.Hour())) == 0 {
		return false
	}
	if (job.DaysOfMonth & (1 << (now.Day() - 1))) == 0 { // now.Day() = 1..31 -> bit 0 = day 1
		return false
	}
	return (job.Weekdays & (1 << now.Weekday())) != 0
}

// Schedule is the JSON form of a job's time condition. An empty list matches every value
type Schedule struct {
	Minutes     []int `json:"minutes"`
	Hours       []int `json:"hours"`
	DaysOfMonth []int `json:"days_of_month"` // 1..31
	Weekdays    []int `json:"weekdays"`      // 0 = sunday
}

// NewCronJob builds a job running task on sch
func NewCronJob(jobID string, sch Schedule, task func(ctx context.Context) error) *CronJob {
	job := NewEveryMinEmptyCronJob(jobID)
	if len(sch.Minutes) > 0 {
		job.Minutes = BitsFromMinutes(sch.Minutes)
	}
	if len(sch.Hours) > 0 {
		job.Hours = BitsFromHours(sch.Hours)
	}
	if len(sch.DaysOfMonth) > 0 {
		job.DaysOfMonth = BitsFromDaysOfMonth(sch.DaysOfMonth)
	}
	if len(sch.Weekdays) > 0 {
		job.Weekdays = BitsFromWeekdays(sch.Weekdays)
	}
	job.Task = task
	return job
}

func BitsFromMinutes(list []int) uint64 {
	var bits uint64
	for _, v := range list {
		if v >= 0 && v < 60 {
			bits |= 1 << v
		}
	}
	return bits
}

func BitsFromHours(list []int) uint32 {
	var bits uint32
	for _, v := range list {
		if v >= 0 && v < 24 {
			bits |= 1 << v
		}
	}
	return bits
}

func BitsFromWeekdays(list []int) uint8 {
	var bits uint8
	for _, v := range list {
		if v >= 0 && v < 7 {
			bits |= 1 << v
		}
	}
	return bits
}

func BitsFromDaysOfMonth(list []int) uint32 {
	var bits uint32
	for _, v := range list {
		if v >= 1 && v <= 31 { // day 1 = bit 0
			bits |= 1 << (v - 1)
		}
	}
	return bits
}
