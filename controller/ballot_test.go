package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/devgreeny/wheredhego-v1/db"
	"github.com/devgreeny/wheredhego-v1/model"
	"github.com/devgreeny/wheredhego-v1/testutils"
)

func TestSubmitBallot(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(t)

	poll, err := ctrl.EnsureCurrentPoll(ctx)
	if err != nil {
		t.Fatalf("error ensuring current poll: %v", err)
	}

	ballot, err := ctrl.SubmitBallot(ctx, poll.ID, testutils.VoterAlice, testutils.BallotFrom(testutils.RotatedTeams(0)))
	if err != nil {
		t.Fatalf("error submitting ballot: %v", err)
	}
	if len(ballot.Items) != model.BallotSize {
		t.Errorf("expected %d items, got %d", model.BallotSize, len(ballot.Items))
	}

	res, err := ctrl.GetBallot(ctx, poll.ID, testutils.VoterAlice)
	if err != nil {
		t.Fatalf("error getting ballot: %v", err)
	}
	if res.Items[0].ItemName != testutils.Teams[0] {
		t.Errorf("expected %s at rank 1, got %s", testutils.Teams[0], res.Items[0].ItemName)
	}

	// Guests submit independently of registered voters.
	if _, err := ctrl.SubmitBallot(ctx, poll.ID, testutils.VoterGuest, testutils.BallotFrom(testutils.RotatedTeams(3))); err != nil {
		t.Fatalf("error submitting guest ballot: %v", err)
	}
	if _, err := ctrl.GetBallot(ctx, poll.ID, testutils.VoterGuest); err != nil {
		t.Fatalf("error getting guest ballot: %v", err)
	}
}

func TestSubmitBallotInvalid(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(t)

	poll, err := ctrl.EnsureCurrentPoll(ctx)
	if err != nil {
		t.Fatalf("error ensuring current poll: %v", err)
	}

	// Establish a known-good ballot first.
	good := testutils.BallotFrom(testutils.RotatedTeams(0))
	if _, err := ctrl.SubmitBallot(ctx, poll.ID, testutils.VoterAlice, good); err != nil {
		t.Fatalf("error submitting good ballot: %v", err)
	}

	tests := map[string]func() []model.RankedItem{
		"too few items": func() []model.RankedItem {
			return good[:24]
		},
		"duplicate rank": func() []model.RankedItem {
			items := testutils.BallotFrom(testutils.RotatedTeams(0))
			items[1].Rank = 1
			return items
		},
		"duplicate team": func() []model.RankedItem {
			items := testutils.BallotFrom(testutils.RotatedTeams(0))
			items[1].ItemName = items[0].ItemName
			return items
		},
		"missing team name": func() []model.RankedItem {
			items := testutils.BallotFrom(testutils.RotatedTeams(0))
			items[10].ItemName = ""
			return items
		},
		"rank out of range": func() []model.RankedItem {
			items := testutils.BallotFrom(testutils.RotatedTeams(0))
			items[24].Rank = 26
			return items
		},
	}

	for name, makeItems := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ctrl.SubmitBallot(ctx, poll.ID, testutils.VoterAlice, makeItems())
			if !errors.Is(err, model.ErrInvalidBallot) {
				t.Fatalf("expected ErrInvalidBallot, got: %v", err)
			}

			// The rejected submission must not touch the stored ballot.
			res, err := ctrl.GetBallot(ctx, poll.ID, testutils.VoterAlice)
			if err != nil {
				t.Fatalf("error getting ballot: %v", err)
			}
			for i := range good {
				if res.Items[i].ItemName != good[i].ItemName {
					t.Fatalf("stored ballot changed at rank %d: %s", i+1, res.Items[i].ItemName)
				}
			}
		})
	}
}

func TestSubmitBallotMissingVoter(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(t)

	poll, err := ctrl.EnsureCurrentPoll(ctx)
	if err != nil {
		t.Fatalf("error ensuring current poll: %v", err)
	}

	_, err = ctrl.SubmitBallot(ctx, poll.ID, model.VoterIdentity{}, testutils.BallotFrom(testutils.RotatedTeams(0)))
	if !errors.Is(err, model.ErrInvalidBallot) {
		t.Fatalf("expected ErrInvalidBallot, got: %v", err)
	}
}

func TestSubmitBallotUnknownPoll(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(t)

	_, err := ctrl.SubmitBallot(ctx, 999999, testutils.VoterAlice, testutils.BallotFrom(testutils.RotatedTeams(0)))
	if !errors.Is(err, db.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got: %v", err)
	}
}

func TestGetBallotNotFound(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(t)

	poll, err := ctrl.EnsureCurrentPoll(ctx)
	if err != nil {
		t.Fatalf("error ensuring current poll: %v", err)
	}

	_, err = ctrl.GetBallot(ctx, poll.ID, testutils.VoterBob)
	if !errors.Is(err, db.ErrBallotNotFound) {
		t.Fatalf("expected ErrBallotNotFound, got: %v", err)
	}
}
