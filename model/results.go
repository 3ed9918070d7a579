package model

// RankedResult is one row of a poll's aggregation: how many ballots include
// the item and its mean rank across them. Lower AvgRank means more support.
type RankedResult struct {
	ItemName  string
	VoteCount int
	AvgRank   float64
}

type MovementType string

const (
	MovementUp   MovementType = "up"
	MovementDown MovementType = "down"
	MovementSame MovementType = "same"
	MovementNew  MovementType = "new"
)

// RankedResultWithMovement is a top-25 entry of a poll's results annotated
// with its change since the previous week. PreviousRank is 0 and Movement is
// meaningless when MovementType is MovementNew.
type RankedResultWithMovement struct {
	Rank         int          `json:"rank"`
	ItemName     string       `json:"item_name"`
	VoteCount    int          `json:"vote_count"`
	AvgRank      float64      `json:"avg_rank"`
	Points       float64      `json:"points"`
	PreviousRank int          `json:"previous_rank,omitempty"`
	Movement     int          `json:"movement"`
	MovementType MovementType `json:"movement_type"`
}

// OtherVotes is an item that received votes but fell outside the top 25.
type OtherVotes struct {
	ItemName  string `json:"item_name"`
	VoteCount int    `json:"vote_count"`
}

// PollResults is the full consensus view of a poll.
type PollResults struct {
	Poll         Poll
	Ranked       []RankedResultWithMovement
	Others       []OtherVotes
	TotalBallots int
}

// Points converts an average rank into display points. A unanimous #1 is
// worth 25, anything with an average rank past 26 is worth nothing.
func Points(avgRank float64) float64 {
	p := float64(BallotSize+1) - avgRank
	if p < 0 {
		return 0
	}
	return p
}
