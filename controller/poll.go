package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/devgreeny/wheredhego-v1/db"
	"github.com/devgreeny/wheredhego-v1/model"
)

func (c *controller) EnsureCurrentPoll(ctx context.Context) (*model.Poll, error) {
	now := c.clock.Now().UTC()

	week := c.schedule.CurrentWeek(now)
	if week == 0 {
		return nil, ErrNoCurrentPoll
	}
	season := c.schedule.CurrentSeason(now)
	start, end := c.schedule.PollWindow(week)

	poll, err := c.db.UpsertPoll(ctx, model.Poll{
		WeekNumber:  week,
		SeasonYear:  season,
		Title:       fmt.Sprintf("Creator Poll - Week %d", week),
		Description: fmt.Sprintf("Rank your top %d teams for week %d of the %d season.", model.BallotSize, week, season),
		StartTime:   start,
		EndTime:     end,
		IsActive:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("error ensuring poll for %d week %d: %w", season, week, err)
	}

	// Guard against duplicate "current" polls left behind by clock skew or
	// manual edits.
	if err := c.db.DeactivateOtherPolls(ctx, poll.ID); err != nil {
		return nil, err
	}

	return poll, nil
}

func (c *controller) GetPoll(ctx context.Context, id int32) (*model.Poll, error) {
	return c.db.GetPoll(ctx, id)
}

func (c *controller) ArchivePoll(ctx context.Context, pollID int32) (*model.PollArchive, error) {
	poll, err := c.db.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if poll.IsArchived {
		// Already archived: keep the existing snapshot untouched so the
		// movement baseline stays frozen. A missing snapshot on an archived
		// poll means a legacy row; fall through and heal it.
		archive, err := c.db.GetArchive(ctx, pollID)
		if err == nil {
			return archive, nil
		}
		if !errors.Is(err, db.ErrArchiveNotFound) {
			return nil, err
		}
	}

	results, err := c.db.GetPollResults(ctx, pollID)
	if err != nil {
		return nil, err
	}

	total, err := c.db.CountBallots(ctx, pollID)
	if err != nil {
		return nil, err
	}

	archive := &model.PollArchive{
		PollID:        pollID,
		FinalRankings: buildFinalRankings(results),
		TotalBallots:  total,
	}
	if err := c.db.SaveArchive(ctx, archive); err != nil {
		return nil, err
	}

	return archive, nil
}

func (c *controller) SweepArchives(ctx context.Context) ([]int32, error) {
	var excludeID int32
	current, err := c.EnsureCurrentPoll(ctx)
	if err != nil && !errors.Is(err, ErrNoCurrentPoll) {
		return nil, err
	}
	if current != nil {
		excludeID = current.ID
	}

	now := c.clock.Now().UTC()
	polls, err := c.db.ListArchivablePolls(ctx, now, excludeID)
	if err != nil {
		return nil, err
	}

	archived := make([]int32, 0, len(polls))
	for _, p := range polls {
		if _, err := c.ArchivePoll(ctx, p.ID); err != nil {
			return archived, fmt.Errorf("error archiving poll %d (%s): %w", p.ID, p.String(), err)
		}
		archived = append(archived, p.ID)
	}

	return archived, nil
}

func (c *controller) RunPeriodicArchiveSweeps(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			ids, err := c.SweepArchives(ctx)
			if err != nil {
				log.Printf("%v", err)
			}
			if len(ids) > 0 {
				log.Printf("archived %d polls: %v", len(ids), ids)
			}
		}
	}
}

// buildFinalRankings assigns 1-indexed ranks and points to an aggregation,
// producing the frozen layout stored in the archive.
func buildFinalRankings(results []model.RankedResult) []model.ArchivedRanking {
	rankings := make([]model.ArchivedRanking, 0, len(results))
	for i, r := range results {
		rankings = append(rankings, model.ArchivedRanking{
			Rank:      i + 1,
			ItemName:  r.ItemName,
			VoteCount: r.VoteCount,
			AvgRank:   r.AvgRank,
			Points:    model.Points(r.AvgRank),
		})
	}
	return rankings
}
