package controller

import (
	"context"
	"fmt"

	"github.com/devgreeny/wheredhego-v1/model"
)

// SubmitBallot rejects malformed submissions before anything is written, so
// a failed submit leaves the voter's previous ballot (if any) untouched.
func (c *controller) SubmitBallot(ctx context.Context, pollID int32, voter model.VoterIdentity, items []model.RankedItem) (*model.Ballot, error) {
	if voter.IsZero() {
		return nil, fmt.Errorf("%w: missing voter identity", model.ErrInvalidBallot)
	}
	if err := model.ValidateBallotItems(items); err != nil {
		return nil, err
	}

	// Resolve the poll first so an unknown poll id surfaces as not-found
	// rather than a foreign key violation.
	if _, err := c.db.GetPoll(ctx, pollID); err != nil {
		return nil, err
	}

	return c.db.SaveBallot(ctx, pollID, voter, items)
}

func (c *controller) GetBallot(ctx context.Context, pollID int32, voter model.VoterIdentity) (*model.Ballot, error) {
	return c.db.GetBallot(ctx, pollID, voter)
}
