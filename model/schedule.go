package model

import "time"

// DefaultSeasonWeeks is the number of poll weeks in a regular season.
const DefaultSeasonWeeks = 17

// Schedule maps wall-clock time onto a (season, week) pair. Week 1 opens at
// SeasonStart and a new week begins every 7 days after that. The anchor is
// injected rather than hard-coded so tests can pick arbitrary seasons.
type Schedule struct {
	SeasonStart time.Time
	Weeks       int
}

func NewSchedule(seasonStart time.Time, weeks int) Schedule {
	if weeks <= 0 {
		weeks = DefaultSeasonWeeks
	}
	return Schedule{SeasonStart: seasonStart, Weeks: weeks}
}

// CurrentWeek returns the poll week for the given time, clamped to the number
// of weeks in the season. It returns 0 before the season starts.
func (s Schedule) CurrentWeek(now time.Time) int {
	if now.Before(s.SeasonStart) {
		return 0
	}

	week := int(now.Sub(s.SeasonStart)/(7*24*time.Hour)) + 1
	if week > s.Weeks {
		week = s.Weeks
	}
	return week
}

// CurrentSeason returns the season year for the given time. Before the season
// starts the previous season is still considered current.
func (s Schedule) CurrentSeason(now time.Time) int {
	if now.Before(s.SeasonStart) {
		return s.SeasonStart.Year() - 1
	}
	return s.SeasonStart.Year()
}

// PollWindow returns the advisory open and lock times for a week. Each poll
// opens 7 days after the previous one and locks 4 days later.
func (s Schedule) PollWindow(week int) (time.Time, time.Time) {
	start := s.SeasonStart.Add(time.Duration(week-1) * 7 * 24 * time.Hour)
	end := start.Add(4 * 24 * time.Hour)
	return start, end
}
