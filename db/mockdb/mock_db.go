package mockdb

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/devgreeny/wheredhego-v1/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetPoll(ctx context.Context, id int32) (*model.Poll, error) {
	args := db.Called(ctx, id)

	var p *model.Poll
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Poll)
	}

	return p, args.Error(1)
}

func (db *DB) GetPollByWeek(ctx context.Context, seasonYear, weekNumber int) (*model.Poll, error) {
	args := db.Called(ctx, seasonYear, weekNumber)

	var p *model.Poll
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Poll)
	}

	return p, args.Error(1)
}

func (db *DB) UpsertPoll(ctx context.Context, poll model.Poll) (*model.Poll, error) {
	args := db.Called(ctx, poll)

	var p *model.Poll
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Poll)
	}

	return p, args.Error(1)
}

func (db *DB) PreviousPoll(ctx context.Context, poll *model.Poll) (*model.Poll, error) {
	args := db.Called(ctx, poll)

	var p *model.Poll
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Poll)
	}

	return p, args.Error(1)
}

func (db *DB) DeactivateOtherPolls(ctx context.Context, currentID int32) error {
	args := db.Called(ctx, currentID)
	return args.Error(0)
}

func (db *DB) ListArchivablePolls(ctx context.Context, now time.Time, excludeID int32) ([]model.Poll, error) {
	args := db.Called(ctx, now, excludeID)

	var polls []model.Poll
	if args.Get(0) != nil {
		polls = args.Get(0).([]model.Poll)
	}

	return polls, args.Error(1)
}

func (db *DB) SaveBallot(ctx context.Context, pollID int32, voter model.VoterIdentity, items []model.RankedItem) (*model.Ballot, error) {
	args := db.Called(ctx, pollID, voter, items)

	var b *model.Ballot
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Ballot)
	}

	return b, args.Error(1)
}

func (db *DB) GetBallot(ctx context.Context, pollID int32, voter model.VoterIdentity) (*model.Ballot, error) {
	args := db.Called(ctx, pollID, voter)

	var b *model.Ballot
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Ballot)
	}

	return b, args.Error(1)
}

func (db *DB) CountBallots(ctx context.Context, pollID int32) (int, error) {
	args := db.Called(ctx, pollID)
	return args.Int(0), args.Error(1)
}

func (db *DB) GetPollResults(ctx context.Context, pollID int32) ([]model.RankedResult, error) {
	args := db.Called(ctx, pollID)

	var r []model.RankedResult
	if args.Get(0) != nil {
		r = args.Get(0).([]model.RankedResult)
	}

	return r, args.Error(1)
}

func (db *DB) SaveArchive(ctx context.Context, archive *model.PollArchive) error {
	args := db.Called(ctx, archive)
	return args.Error(0)
}

func (db *DB) GetArchive(ctx context.Context, pollID int32) (*model.PollArchive, error) {
	args := db.Called(ctx, pollID)

	var a *model.PollArchive
	if args.Get(0) != nil {
		a = args.Get(0).(*model.PollArchive)
	}

	return a, args.Error(1)
}
