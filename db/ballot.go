package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/devgreeny/wheredhego-v1/model"
)

// SaveBallot is the only write path for ballots. The ballot upsert, the
// delete of the voter's old vote rows and the insert of the new ones all
// happen in one transaction so concurrent aggregation reads see either the
// old ballot or the new one, never a partial mix.
func (db *postgresDB) SaveBallot(ctx context.Context, pollID int32, voter model.VoterIdentity, items []model.RankedItem) (*model.Ballot, error) {
	const upsert = `INSERT INTO ballots (poll_id, voter_kind, voter_id, items, submitted, updated)
			VALUES (@pollID, @voterKind, @voterID, @items, @now, @now)
			ON CONFLICT (poll_id, voter_kind, voter_id)
			DO UPDATE SET items=EXCLUDED.items, updated=EXCLUDED.updated
			RETURNING submitted, updated`

	const deleteVotes = `DELETE FROM votes
			WHERE poll_id=@pollID AND voter_kind=@voterKind AND voter_id=@voterID`

	const insertVote = `INSERT INTO votes (poll_id, voter_kind, voter_id, item_name, item_category, rank, note)
			VALUES (@pollID, @voterKind, @voterID, @itemName, @itemCategory, @rank, @note)`

	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b model.RankedItem) int {
		return a.Rank - b.Rank
	})

	itemsJSON, err := json.Marshal(sorted)
	if err != nil {
		return nil, fmt.Errorf("error encoding ballot items: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"pollID":    pollID,
		"voterKind": string(voter.Kind),
		"voterID":   voter.ID,
		"items":     itemsJSON,
		"now":       timestamptz(db.clock.Now().UTC()),
	}
	var submitted, updated pgtype.Timestamptz
	if err := tx.QueryRow(ctx, upsert, args).Scan(&submitted, &updated); err != nil {
		return nil, fmt.Errorf("error upserting ballot for %s in poll %d: %w", voter, pollID, err)
	}

	voterArgs := pgx.NamedArgs{
		"pollID":    pollID,
		"voterKind": string(voter.Kind),
		"voterID":   voter.ID,
	}
	if _, err := tx.Exec(ctx, deleteVotes, voterArgs); err != nil {
		return nil, fmt.Errorf("error deleting old votes for %s in poll %d: %w", voter, pollID, err)
	}

	for _, item := range sorted {
		voteArgs := pgx.NamedArgs{
			"pollID":       pollID,
			"voterKind":    string(voter.Kind),
			"voterID":      voter.ID,
			"itemName":     item.ItemName,
			"itemCategory": item.Category,
			"rank":         item.Rank,
			"note":         item.Note,
		}
		if _, err := tx.Exec(ctx, insertVote, voteArgs); err != nil {
			return nil, fmt.Errorf("error inserting vote for %s at rank %d: %w", item.ItemName, item.Rank, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error commiting ballot transaction: %w", err)
	}

	return &model.Ballot{
		PollID:    pollID,
		Voter:     voter,
		Items:     sorted,
		Submitted: submitted.Time,
		Updated:   updated.Time,
	}, nil
}

func (db *postgresDB) GetBallot(ctx context.Context, pollID int32, voter model.VoterIdentity) (*model.Ballot, error) {
	const query = `SELECT items, submitted, updated FROM ballots
			WHERE poll_id=@pollID AND voter_kind=@voterKind AND voter_id=@voterID`

	args := pgx.NamedArgs{
		"pollID":    pollID,
		"voterKind": string(voter.Kind),
		"voterID":   voter.ID,
	}

	var itemsJSON []byte
	var submitted, updated pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, args).Scan(&itemsJSON, &submitted, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBallotNotFound
		}
		return nil, fmt.Errorf("error scanning ballot for %s in poll %d: %w", voter, pollID, err)
	}

	var items []model.RankedItem
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, fmt.Errorf("error decoding ballot items for %s in poll %d: %w", voter, pollID, err)
	}

	return &model.Ballot{
		PollID:    pollID,
		Voter:     voter,
		Items:     items,
		Submitted: submitted.Time,
		Updated:   updated.Time,
	}, nil
}

func (db *postgresDB) CountBallots(ctx context.Context, pollID int32) (int, error) {
	const query = `SELECT COUNT(*) FROM ballots WHERE poll_id=@pollID`

	var count int
	if err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"pollID": pollID}).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting ballots for poll %d: %w", pollID, err)
	}
	return count, nil
}

// GetPollResults recomputes the consensus from the vote rows on every call.
// Nothing is persisted here; only the archive freezes a result. The item name
// tie break keeps the ordering stable across calls.
func (db *postgresDB) GetPollResults(ctx context.Context, pollID int32) ([]model.RankedResult, error) {
	const query = `SELECT item_name, COUNT(*)::int AS vote_count, AVG(rank)::float8 AS avg_rank
			FROM votes
			WHERE poll_id=@pollID
			GROUP BY item_name
			ORDER BY avg_rank ASC, item_name ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"pollID": pollID})
	if err != nil {
		return nil, fmt.Errorf("error running results query for poll %d: %w", pollID, err)
	}
	defer rows.Close()

	results := make([]model.RankedResult, 0, model.BallotSize)
	for rows.Next() {
		var r model.RankedResult
		if err := rows.Scan(&r.ItemName, &r.VoteCount, &r.AvgRank); err != nil {
			return nil, fmt.Errorf("error scanning result row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return results, nil
}
