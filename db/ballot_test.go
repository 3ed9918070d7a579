package db

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/devgreeny/wheredhego-v1/model"
)

func TestDB_ballotSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	poll := mustPoll(t, nextSeason(), 1)
	voter := model.RegisteredVoter("501")

	// Submit the items out of order, the stored ballot comes back sorted.
	items := ballotItems()
	items[0], items[24] = items[24], items[0]

	saved, err := testDB.SaveBallot(ctx, poll.ID, voter, items)
	assertFatalf(t, err == nil, "error saving ballot: %v", err)

	assertEquals(t, "PollID", poll.ID, saved.PollID)
	assertEquals(t, "Voter", voter, saved.Voter)
	assertEquals(t, "len(Items)", model.BallotSize, len(saved.Items))
	for i, item := range saved.Items {
		if item.Rank != i+1 {
			t.Fatalf("items not sorted by rank: position %d has rank %d", i, item.Rank)
		}
	}
	if saved.Submitted.IsZero() || saved.Updated.IsZero() {
		t.Errorf("expected submitted and updated to be set, got %v and %v", saved.Submitted, saved.Updated)
	}

	res, err := testDB.GetBallot(ctx, poll.ID, voter)
	assertFatalf(t, err == nil, "error getting ballot: %v", err)
	assertEquals(t, "len(res.Items)", model.BallotSize, len(res.Items))
	for i := range saved.Items {
		assertEquals(t, "item name", saved.Items[i].ItemName, res.Items[i].ItemName)
		assertEquals(t, "item rank", saved.Items[i].Rank, res.Items[i].Rank)
	}
}

func TestDB_ballotResubmitReplaces(t *testing.T) {
	ctx := context.Background()
	poll := mustPoll(t, nextSeason(), 1)
	voter := model.GuestVoter("fp-9a1c")

	first, err := testDB.SaveBallot(ctx, poll.ID, voter, ballotItems())
	assertFatalf(t, err == nil, "error saving first ballot: %v", err)

	// Resubmit later with the top two swapped.
	testClock.Add(2 * time.Hour)
	swapped := ballotItems()
	swapped[0].ItemName, swapped[1].ItemName = swapped[1].ItemName, swapped[0].ItemName

	second, err := testDB.SaveBallot(ctx, poll.ID, voter, swapped)
	assertFatalf(t, err == nil, "error resubmitting ballot: %v", err)

	// Still one ballot for the voter, with the original submitted time.
	count, err := testDB.CountBallots(ctx, poll.ID)
	assertFatalf(t, err == nil, "error counting ballots: %v", err)
	assertEquals(t, "count", 1, count)
	assertEquals(t, "Submitted", first.Submitted, second.Submitted)
	if !second.Updated.After(first.Updated) {
		t.Errorf("expected updated to advance, was %v then %v", first.Updated, second.Updated)
	}

	// The vote rows must reflect only the new ballot.
	results, err := testDB.GetPollResults(ctx, poll.ID)
	assertFatalf(t, err == nil, "error getting results: %v", err)
	assertEquals(t, "len(results)", model.BallotSize, len(results))
	assertEquals(t, "results[0].ItemName", swapped[0].ItemName, results[0].ItemName)
	assertEquals(t, "results[0].AvgRank", 1.0, results[0].AvgRank)
}

func TestDB_ballotNotFound(t *testing.T) {
	ctx := context.Background()
	poll := mustPoll(t, nextSeason(), 1)

	b, err := testDB.GetBallot(ctx, poll.ID, model.RegisteredVoter("nobody"))
	assertFatalf(t, err != nil, "expected an error getting a missing ballot")
	assertEquals(t, "error type", true, errors.Is(err, ErrBallotNotFound))
	if b != nil {
		t.Errorf("expected ballot to be nil, but was %v", b)
	}
}

func TestDB_ballotsAreSeparatePerVoter(t *testing.T) {
	ctx := context.Background()
	poll := mustPoll(t, nextSeason(), 1)

	// A registered voter and a guest with the same raw id must not collide.
	registered := model.RegisteredVoter("700")
	guest := model.GuestVoter("700")

	if _, err := testDB.SaveBallot(ctx, poll.ID, registered, ballotItems()); err != nil {
		t.Fatalf("error saving registered ballot: %v", err)
	}
	if _, err := testDB.SaveBallot(ctx, poll.ID, guest, ballotItems()); err != nil {
		t.Fatalf("error saving guest ballot: %v", err)
	}

	count, err := testDB.CountBallots(ctx, poll.ID)
	assertFatalf(t, err == nil, "error counting ballots: %v", err)
	assertEquals(t, "count", 2, count)
}

func TestDB_pollResultsAggregation(t *testing.T) {
	ctx := context.Background()
	poll := mustPoll(t, nextSeason(), 1)

	// Two ballots that disagree at the top: Alpha gets ranks 1 and 2,
	// Bravo gets ranks 2 and 1, so they tie at 1.5 and the name breaks it.
	first := ballotItems()
	second := ballotItems()
	second[0].ItemName, second[1].ItemName = second[1].ItemName, second[0].ItemName

	if _, err := testDB.SaveBallot(ctx, poll.ID, model.RegisteredVoter("801"), first); err != nil {
		t.Fatalf("error saving first ballot: %v", err)
	}
	if _, err := testDB.SaveBallot(ctx, poll.ID, model.RegisteredVoter("802"), second); err != nil {
		t.Fatalf("error saving second ballot: %v", err)
	}

	results, err := testDB.GetPollResults(ctx, poll.ID)
	assertFatalf(t, err == nil, "error getting results: %v", err)

	assertEquals(t, "len(results)", model.BallotSize, len(results))
	assertEquals(t, "results[0].ItemName", "Team 01", results[0].ItemName)
	assertEquals(t, "results[0].VoteCount", 2, results[0].VoteCount)
	assertEquals(t, "results[0].AvgRank", 1.5, results[0].AvgRank)
	assertEquals(t, "results[1].ItemName", "Team 02", results[1].ItemName)
	assertEquals(t, "results[1].AvgRank", 1.5, results[1].AvgRank)
	assertEquals(t, "results[2].ItemName", "Team 03", results[2].ItemName)
	assertEquals(t, "results[2].AvgRank", 3.0, results[2].AvgRank)

	// With no writes in between, a second aggregation is identical.
	again, err := testDB.GetPollResults(ctx, poll.ID)
	assertFatalf(t, err == nil, "error re-running results query: %v", err)
	if !reflect.DeepEqual(results, again) {
		t.Errorf("aggregation is not deterministic:\n%v\n%v", results, again)
	}
}

func TestDB_pollResultsEmpty(t *testing.T) {
	ctx := context.Background()
	poll := mustPoll(t, nextSeason(), 1)

	results, err := testDB.GetPollResults(ctx, poll.ID)
	assertFatalf(t, err == nil, "error getting results: %v", err)
	assertEquals(t, "len(results)", 0, len(results))

	count, err := testDB.CountBallots(ctx, poll.ID)
	assertFatalf(t, err == nil, "error counting ballots: %v", err)
	assertEquals(t, "count", 0, count)
}

func mustPoll(t *testing.T, season, week int) *model.Poll {
	t.Helper()
	poll, err := testDB.UpsertPoll(context.Background(), pollForWeek(season, week))
	if err != nil {
		t.Fatalf("error creating poll for %d week %d: %v", season, week, err)
	}
	return poll
}

// ballotItems builds a complete ballot with predictable names: "Team 01" at
// rank 1 through "Team 25" at rank 25.
func ballotItems() []model.RankedItem {
	items := make([]model.RankedItem, 0, model.BallotSize)
	for i := 1; i <= model.BallotSize; i++ {
		items = append(items, model.RankedItem{
			Rank:     i,
			ItemName: fmt.Sprintf("Team %02d", i),
			Category: "FBS",
		})
	}
	return items
}
