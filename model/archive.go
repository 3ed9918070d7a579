package model

import "time"

// ArchivedRanking is one frozen row of a poll's final consensus. The json
// tags define the layout stored in the poll_archives.final_rankings column.
type ArchivedRanking struct {
	Rank      int     `json:"rank"`
	ItemName  string  `json:"item_name"`
	VoteCount int     `json:"vote_count"`
	AvgRank   float64 `json:"avg_rank"`
	Points    float64 `json:"points"`
}

// PollArchive is the immutable snapshot of a completed poll. Once it exists
// it is the authoritative movement baseline for the following week, even if
// the underlying vote rows were to change.
type PollArchive struct {
	PollID        int32
	FinalRankings []ArchivedRanking
	TotalBallots  int
	ArchivedAt    time.Time
}

// RankOf returns the archived rank for an item, or 0 if the item did not
// appear in the final rankings.
func (a *PollArchive) RankOf(itemName string) int {
	for _, r := range a.FinalRankings {
		if r.ItemName == itemName {
			return r.Rank
		}
	}
	return 0
}
