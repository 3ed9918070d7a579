package model

import "testing"

func TestPoints(t *testing.T) {
	tests := []struct {
		avgRank float64
		want    float64
	}{
		{avgRank: 1.0, want: 25.0},
		{avgRank: 2.5, want: 23.5},
		{avgRank: 25.0, want: 1.0},
		{avgRank: 26.0, want: 0.0},
		{avgRank: 30.0, want: 0.0},
	}

	for _, tc := range tests {
		if got := Points(tc.avgRank); got != tc.want {
			t.Errorf("Points(%v): expected %v, got %v", tc.avgRank, tc.want, got)
		}
	}
}

func TestArchiveRankOf(t *testing.T) {
	a := &PollArchive{
		PollID: 1,
		FinalRankings: []ArchivedRanking{
			{Rank: 1, ItemName: "Ohio State", VoteCount: 2, AvgRank: 2.0, Points: 24.0},
			{Rank: 2, ItemName: "Georgia", VoteCount: 2, AvgRank: 3.5, Points: 22.5},
		},
	}

	if got := a.RankOf("Ohio State"); got != 1 {
		t.Errorf("expected rank 1, got %d", got)
	}
	if got := a.RankOf("Georgia"); got != 2 {
		t.Errorf("expected rank 2, got %d", got)
	}
	if got := a.RankOf("Michigan"); got != 0 {
		t.Errorf("expected 0 for an unranked item, got %d", got)
	}
}
