package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/devgreeny/wheredhego-v1/model"
)

type C struct {
	mock.Mock
}

func (c *C) EnsureCurrentPoll(ctx context.Context) (*model.Poll, error) {
	args := c.Called(ctx)

	var p *model.Poll
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Poll)
	}

	return p, args.Error(1)
}

func (c *C) GetPoll(ctx context.Context, id int32) (*model.Poll, error) {
	args := c.Called(ctx, id)

	var p *model.Poll
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Poll)
	}

	return p, args.Error(1)
}

func (c *C) SubmitBallot(ctx context.Context, pollID int32, voter model.VoterIdentity, items []model.RankedItem) (*model.Ballot, error) {
	args := c.Called(ctx, pollID, voter, items)

	var b *model.Ballot
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Ballot)
	}

	return b, args.Error(1)
}

func (c *C) GetBallot(ctx context.Context, pollID int32, voter model.VoterIdentity) (*model.Ballot, error) {
	args := c.Called(ctx, pollID, voter)

	var b *model.Ballot
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Ballot)
	}

	return b, args.Error(1)
}

func (c *C) GetResults(ctx context.Context, pollID int32) (*model.PollResults, error) {
	args := c.Called(ctx, pollID)

	var r *model.PollResults
	if args.Get(0) != nil {
		r = args.Get(0).(*model.PollResults)
	}

	return r, args.Error(1)
}

func (c *C) ArchivePoll(ctx context.Context, pollID int32) (*model.PollArchive, error) {
	args := c.Called(ctx, pollID)

	var a *model.PollArchive
	if args.Get(0) != nil {
		a = args.Get(0).(*model.PollArchive)
	}

	return a, args.Error(1)
}

func (c *C) SweepArchives(ctx context.Context) ([]int32, error) {
	args := c.Called(ctx)

	var ids []int32
	if args.Get(0) != nil {
		ids = args.Get(0).([]int32)
	}

	return ids, args.Error(1)
}

func (c *C) RunPeriodicArchiveSweeps(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}
