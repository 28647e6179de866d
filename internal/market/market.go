// Package market describes exchange trading sessions.
package market

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// IST is India Standard Time, which has no daylight saving.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Session is a weekly trading session defined by an opening and a closing
// cron schedule evaluated in a fixed location.
type Session struct {
	Name      string
	Location  *time.Location
	TZLabel   string
	openSpec  string
	closeSpec string
	open      cron.Schedule
	close     cron.Schedule
	openAt    clock
	closeAt   clock
}

type clock struct{ hour, minute int }

func (c clock) String() string { return fmt.Sprintf("%02d:%02d", c.hour, c.minute) }

func (c clock) on(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.hour, c.minute, 0, 0, t.Location())
}

// NewSession builds a session that opens and closes at the given wall-clock
// times on weekdays (Monday to Friday) in loc.
func NewSession(name string, loc *time.Location, tzLabel string, openH, openM, closeH, closeM int) (*Session, error) {
	s := &Session{
		Name:      name,
		Location:  loc,
		TZLabel:   tzLabel,
		openSpec:  fmt.Sprintf("%d %d * * 1-5", openM, openH),
		closeSpec: fmt.Sprintf("%d %d * * 1-5", closeM, closeH),
		openAt:    clock{openH, openM},
		closeAt:   clock{closeH, closeM},
	}
	var err error
	if s.open, err = cron.ParseStandard(s.openSpec); err != nil {
		return nil, fmt.Errorf("parse open schedule %q: %w", s.openSpec, err)
	}
	if s.close, err = cron.ParseStandard(s.closeSpec); err != nil {
		return nil, fmt.Errorf("parse close schedule %q: %w", s.closeSpec, err)
	}
	return s, nil
}

// NSE is the Indian equity session, 09:15 to 15:30 IST.
func NSE() *Session {
	s, err := NewSession("NSE", IST, "IST (UTC+5:30)", 9, 15, 15, 30)
	if err != nil {
		panic(err)
	}
	return s
}

// Status is a snapshot of a session at one instant.
type Status struct {
	Exchange    string    `json:"exchange"`
	IsOpen      bool      `json:"is_open"`
	IsWeekday   bool      `json:"is_weekday"`
	CurrentTime string    `json:"current_time"`
	CurrentDate string    `json:"current_date"`
	MarketOpen  string    `json:"market_open"`
	MarketClose string    `json:"market_close"`
	Timezone    string    `json:"timezone"`
	NextOpen    time.Time `json:"next_open"`
	NextClose   time.Time `json:"next_close"`
}

// IsWeekday reports whether t falls on Monday to Friday in the session
// location.
func (s *Session) IsWeekday(t time.Time) bool {
	wd := t.In(s.Location).Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// IsOpen reports whether t lies within the session, both ends inclusive.
func (s *Session) IsOpen(t time.Time) bool {
	local := t.In(s.Location)
	if !s.IsWeekday(local) {
		return false
	}
	return !local.Before(s.openAt.on(local)) && !local.After(s.closeAt.on(local))
}

// NextOpen returns the first session opening strictly after t.
func (s *Session) NextOpen(t time.Time) time.Time {
	return s.open.Next(t.In(s.Location))
}

// NextClose returns the first session close strictly after t.
func (s *Session) NextClose(t time.Time) time.Time {
	return s.close.Next(t.In(s.Location))
}

// Status describes the session at now.
func (s *Session) Status(now time.Time) Status {
	local := now.In(s.Location)
	return Status{
		Exchange:    s.Name,
		IsOpen:      s.IsOpen(local),
		IsWeekday:   s.IsWeekday(local),
		CurrentTime: local.Format("15:04:05"),
		CurrentDate: local.Format("2006-01-02"),
		MarketOpen:  s.openAt.String(),
		MarketClose: s.closeAt.String(),
		Timezone:    s.TZLabel,
		NextOpen:    s.NextOpen(local),
		NextClose:   s.NextClose(local),
	}
}
