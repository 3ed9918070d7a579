package web

import (
	"time"

	"github.com/devgreeny/wheredhego-v1/model"
)

type pollDTO struct {
	ID          int32     `json:"id"`
	SeasonYear  int       `json:"season_year"`
	WeekNumber  int       `json:"week_number"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsActive    bool      `json:"is_active"`
	IsArchived  bool      `json:"is_archived"`
}

func pollResponse(p *model.Poll) pollDTO {
	return pollDTO{
		ID:          p.ID,
		SeasonYear:  p.SeasonYear,
		WeekNumber:  p.WeekNumber,
		Title:       p.Title,
		Description: p.Description,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		IsActive:    p.IsActive,
		IsArchived:  p.IsArchived,
	}
}

type ballotDTO struct {
	PollID    int32              `json:"poll_id"`
	Voter     string             `json:"voter"`
	Items     []model.RankedItem `json:"items"`
	Submitted time.Time          `json:"submitted"`
	Updated   time.Time          `json:"updated"`
}

func ballotResponse(b *model.Ballot) ballotDTO {
	return ballotDTO{
		PollID:    b.PollID,
		Voter:     b.Voter.String(),
		Items:     b.Items,
		Submitted: b.Submitted,
		Updated:   b.Updated,
	}
}

type resultsDTO struct {
	Poll         pollDTO                          `json:"poll"`
	Ranked       []model.RankedResultWithMovement `json:"ranked"`
	Others       []model.OtherVotes               `json:"others_receiving_votes"`
	TotalBallots int                              `json:"total_ballots"`
}

func resultsResponse(r *model.PollResults) resultsDTO {
	return resultsDTO{
		Poll:         pollResponse(&r.Poll),
		Ranked:       r.Ranked,
		Others:       r.Others,
		TotalBallots: r.TotalBallots,
	}
}
