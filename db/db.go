package db

import (
	"context"
	"time"

	"github.com/devgreeny/wheredhego-v1/model"
)

type DB interface {
	GetPoll(ctx context.Context, id int32) (*model.Poll, error)
	GetPollByWeek(ctx context.Context, seasonYear, weekNumber int) (*model.Poll, error)
	// UpsertPoll returns the poll for (season_year, week_number), creating it
	// from the argument when missing. Safe under concurrent callers.
	UpsertPoll(ctx context.Context, poll model.Poll) (*model.Poll, error)
	// PreviousPoll returns the poll one week before the given one, crossing
	// into the last week of the prior season when needed. Returns nil with no
	// error when there is no earlier poll.
	PreviousPoll(ctx context.Context, poll *model.Poll) (*model.Poll, error)
	DeactivateOtherPolls(ctx context.Context, currentID int32) error
	ListArchivablePolls(ctx context.Context, now time.Time, excludeID int32) ([]model.Poll, error)

	// SaveBallot upserts the voter's ballot and replaces its vote rows in a
	// single transaction, so aggregation never sees a half-written ballot.
	SaveBallot(ctx context.Context, pollID int32, voter model.VoterIdentity, items []model.RankedItem) (*model.Ballot, error)
	GetBallot(ctx context.Context, pollID int32, voter model.VoterIdentity) (*model.Ballot, error)
	CountBallots(ctx context.Context, pollID int32) (int, error)
	// GetPollResults aggregates all vote rows for the poll, ordered by
	// ascending average rank with item name as the tie break.
	GetPollResults(ctx context.Context, pollID int32) ([]model.RankedResult, error)

	// SaveArchive upserts the snapshot and flips the poll to archived in a
	// single transaction.
	SaveArchive(ctx context.Context, archive *model.PollArchive) error
	GetArchive(ctx context.Context, pollID int32) (*model.PollArchive, error)
}
