package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/devgreeny/wheredhego-v1/db"
	"github.com/devgreeny/wheredhego-v1/model"
)

var ErrNoCurrentPoll = errors.New("no current poll: the season has not started")

// C encapsulates business logic without worrying about any web layers
type C interface {
	// EnsureCurrentPoll resolves the current week from the schedule and
	// returns its poll, creating it if this is the first access of the week.
	// Any other still-active poll is deactivated on the way.
	EnsureCurrentPoll(ctx context.Context) (*model.Poll, error)
	GetPoll(ctx context.Context, id int32) (*model.Poll, error)

	// SubmitBallot validates and stores a voter's complete top-25. A second
	// submission from the same voter replaces the first.
	SubmitBallot(ctx context.Context, pollID int32, voter model.VoterIdentity, items []model.RankedItem) (*model.Ballot, error)
	GetBallot(ctx context.Context, pollID int32, voter model.VoterIdentity) (*model.Ballot, error)

	// GetResults aggregates a poll's ballots into the top-25 consensus with
	// week-over-week movement, plus the items that fell outside the top 25.
	GetResults(ctx context.Context, pollID int32) (*model.PollResults, error)

	// ArchivePoll freezes a poll's final ranking. Archiving an already
	// archived poll is a no-op that returns the existing snapshot.
	ArchivePoll(ctx context.Context, pollID int32) (*model.PollArchive, error)
	// SweepArchives archives every superseded poll whose end time has passed,
	// never touching the current poll. Returns the ids archived this run.
	SweepArchives(ctx context.Context) ([]int32, error)
	RunPeriodicArchiveSweeps(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type controller struct {
	clock    clock.Clock
	schedule model.Schedule
	db       db.DB
}

func New(clock clock.Clock, schedule model.Schedule, db db.DB) (C, error) {
	c := &controller{
		clock:    clock,
		schedule: schedule,
		db:       db,
	}
	return c, nil
}
