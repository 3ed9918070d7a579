package model

import (
	"fmt"
	"time"
)

type Poll struct {
	ID          int32
	WeekNumber  int
	SeasonYear  int
	Title       string
	Description string
	// StartTime and EndTime describe the advisory voting window for the week.
	// Submissions are not gated by them; EndTime only drives the archive sweep.
	StartTime  time.Time
	EndTime    time.Time
	IsActive   bool
	IsArchived bool
	Created    time.Time
}

func (p *Poll) String() string {
	return fmt.Sprintf("%d week %d", p.SeasonYear, p.WeekNumber)
}
