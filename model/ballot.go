package model

import (
	"errors"
	"fmt"
	"time"
)

// BallotSize is the number of items every ballot must rank.
const BallotSize = 25

var ErrInvalidBallot = errors.New("invalid ballot")

// RankedItem is one entry in a voter's ballot. The json tags define the layout
// stored in the ballots.items column.
type RankedItem struct {
	Rank     int    `json:"rank"`
	ItemName string `json:"item_name"`
	ItemID   string `json:"item_id,omitempty"`
	Category string `json:"category,omitempty"`
	Note     string `json:"note,omitempty"`
}

// Ballot is one voter's complete ranking for a poll. Items are kept sorted by
// rank, 1 first.
type Ballot struct {
	PollID    int32
	Voter     VoterIdentity
	Items     []RankedItem
	Submitted time.Time
	Updated   time.Time
}

// ValidateBallotItems checks that items is a complete ballot: exactly
// BallotSize entries whose ranks form a permutation of 1..BallotSize, with a
// distinct non-empty name for every entry. Errors wrap ErrInvalidBallot and
// name the first constraint that failed.
func ValidateBallotItems(items []RankedItem) error {
	if len(items) != BallotSize {
		return fmt.Errorf("%w: expected %d items, got %d", ErrInvalidBallot, BallotSize, len(items))
	}

	seenRanks := make(map[int]bool, BallotSize)
	seenNames := make(map[string]bool, BallotSize)
	for _, item := range items {
		if item.Rank < 1 || item.Rank > BallotSize {
			return fmt.Errorf("%w: rank %d is out of range", ErrInvalidBallot, item.Rank)
		}
		if seenRanks[item.Rank] {
			return fmt.Errorf("%w: duplicate rank %d", ErrInvalidBallot, item.Rank)
		}
		seenRanks[item.Rank] = true

		if item.ItemName == "" {
			return fmt.Errorf("%w: missing item name at rank %d", ErrInvalidBallot, item.Rank)
		}
		if seenNames[item.ItemName] {
			return fmt.Errorf("%w: %s appears more than once", ErrInvalidBallot, item.ItemName)
		}
		seenNames[item.ItemName] = true
	}

	// len==BallotSize plus BallotSize distinct in-range ranks means the ranks
	// are a full 1..BallotSize permutation, no gap check needed.
	return nil
}
