package controller

import (
	"context"
	"errors"

	"github.com/devgreeny/wheredhego-v1/db"
	"github.com/devgreeny/wheredhego-v1/model"
)

func (c *controller) GetResults(ctx context.Context, pollID int32) (*model.PollResults, error) {
	poll, err := c.db.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	results, err := c.db.GetPollResults(ctx, pollID)
	if err != nil {
		return nil, err
	}

	previousRanks, err := c.previousRankings(ctx, poll)
	if err != nil {
		return nil, err
	}

	total, err := c.db.CountBallots(ctx, pollID)
	if err != nil {
		return nil, err
	}

	ranked, others := applyMovement(results, previousRanks)
	return &model.PollResults{
		Poll:         *poll,
		Ranked:       ranked,
		Others:       others,
		TotalBallots: total,
	}, nil
}

// previousRankings resolves the movement baseline for a poll. An archived
// previous week always answers from its snapshot, so later edits to old vote
// rows can never shift historical movement; an unarchived one is aggregated
// live. A first-ever poll has no baseline and every item shows as new.
func (c *controller) previousRankings(ctx context.Context, poll *model.Poll) (map[string]int, error) {
	previous, err := c.db.PreviousPoll(ctx, poll)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return nil, nil
	}

	ranks := make(map[string]int, model.BallotSize)

	if previous.IsArchived {
		archive, err := c.db.GetArchive(ctx, previous.ID)
		if err == nil {
			for _, r := range archive.FinalRankings {
				ranks[r.ItemName] = r.Rank
			}
			return ranks, nil
		}
		if !errors.Is(err, db.ErrArchiveNotFound) {
			return nil, err
		}
		// Archived poll without a snapshot: fall back to live aggregation.
	}

	previousResults, err := c.db.GetPollResults(ctx, previous.ID)
	if err != nil {
		return nil, err
	}
	for i, r := range previousResults {
		ranks[r.ItemName] = i + 1
	}
	return ranks, nil
}

// applyMovement splits an aggregation into the ranked top 25, annotated with
// movement against the previous week, and the unranked remainder.
func applyMovement(results []model.RankedResult, previousRanks map[string]int) ([]model.RankedResultWithMovement, []model.OtherVotes) {
	ranked := make([]model.RankedResultWithMovement, 0, model.BallotSize)
	others := make([]model.OtherVotes, 0)

	for i, r := range results {
		rank := i + 1
		if rank > model.BallotSize {
			others = append(others, model.OtherVotes{
				ItemName:  r.ItemName,
				VoteCount: r.VoteCount,
			})
			continue
		}

		entry := model.RankedResultWithMovement{
			Rank:      rank,
			ItemName:  r.ItemName,
			VoteCount: r.VoteCount,
			AvgRank:   r.AvgRank,
			Points:    model.Points(r.AvgRank),
		}

		if previousRank, ok := previousRanks[r.ItemName]; ok {
			entry.PreviousRank = previousRank
			entry.Movement = previousRank - rank
			switch {
			case entry.Movement > 0:
				entry.MovementType = model.MovementUp
			case entry.Movement < 0:
				entry.MovementType = model.MovementDown
			default:
				entry.MovementType = model.MovementSame
			}
		} else {
			entry.MovementType = model.MovementNew
		}

		ranked = append(ranked, entry)
	}

	return ranked, others
}
