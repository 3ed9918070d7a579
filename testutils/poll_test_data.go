package testutils

import (
	"log"

	"github.com/devgreeny/wheredhego-v1/model"
)

var (
	VoterAlice = model.RegisteredVoter("101")
	VoterBob   = model.RegisteredVoter("102")
	VoterGuest = model.GuestVoter("3f6b2c9a41d8e07c")
)

// Teams holds 30 team names so tests can build complete 25-item ballots and
// still have 5 extras left over for the "others receiving votes" cases.
var Teams = []string{
	"Ohio State", "Michigan", "Georgia", "Alabama", "Texas",
	"Oregon", "Penn State", "Notre Dame", "LSU", "Ole Miss",
	"Tennessee", "Oklahoma", "Clemson", "Florida State", "USC",
	"Utah", "Washington", "Missouri", "Kansas State", "Oklahoma State",
	"Arizona", "Louisville", "Iowa", "SMU", "Miami",
	"Texas A&M", "Kansas", "NC State", "Boise State", "Memphis",
}

// BallotFrom builds a complete ballot ranking the given 25 teams in order.
func BallotFrom(teams []string) []model.RankedItem {
	if len(teams) != model.BallotSize {
		log.Fatalf("BallotFrom needs exactly %d teams, got %d", model.BallotSize, len(teams))
	}

	items := make([]model.RankedItem, 0, model.BallotSize)
	for i, name := range teams {
		items = append(items, model.RankedItem{Rank: i + 1, ItemName: name})
	}
	return items
}

// RotatedTeams returns the first 25 teams with the order rotated left by n,
// giving each voter a different but complete ballot.
func RotatedTeams(n int) []string {
	top := Teams[:model.BallotSize]
	rotated := make([]string, 0, model.BallotSize)
	rotated = append(rotated, top[n%model.BallotSize:]...)
	rotated = append(rotated, top[:n%model.BallotSize]...)
	return rotated
}
