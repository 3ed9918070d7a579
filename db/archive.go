package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/devgreeny/wheredhego-v1/model"
)

// SaveArchive writes the snapshot and flips the poll's flags in one
// transaction, so a crash can never leave an archived-looking poll without
// its snapshot or the other way around. Re-running it for the same poll
// replaces the snapshot in place.
func (db *postgresDB) SaveArchive(ctx context.Context, archive *model.PollArchive) error {
	const upsert = `INSERT INTO poll_archives (poll_id, final_rankings, total_ballots, archived_at)
			VALUES (@pollID, @finalRankings, @totalBallots, @archivedAt)
			ON CONFLICT (poll_id)
			DO UPDATE SET final_rankings=EXCLUDED.final_rankings,
				total_ballots=EXCLUDED.total_ballots,
				archived_at=EXCLUDED.archived_at`

	const flagPoll = `UPDATE polls SET is_archived=TRUE, is_active=FALSE WHERE id=@pollID`

	rankingsJSON, err := json.Marshal(archive.FinalRankings)
	if err != nil {
		return fmt.Errorf("error encoding final rankings: %w", err)
	}

	archive.ArchivedAt = db.clock.Now().UTC()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"pollID":        archive.PollID,
		"finalRankings": rankingsJSON,
		"totalBallots":  archive.TotalBallots,
		"archivedAt":    timestamptz(archive.ArchivedAt),
	}
	if _, err := tx.Exec(ctx, upsert, args); err != nil {
		return fmt.Errorf("error upserting archive for poll %d: %w", archive.PollID, err)
	}

	if _, err := tx.Exec(ctx, flagPoll, pgx.NamedArgs{"pollID": archive.PollID}); err != nil {
		return fmt.Errorf("error flagging poll %d as archived: %w", archive.PollID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting archive transaction: %w", err)
	}

	return nil
}

func (db *postgresDB) GetArchive(ctx context.Context, pollID int32) (*model.PollArchive, error) {
	const query = `SELECT final_rankings, total_ballots, archived_at
			FROM poll_archives WHERE poll_id=@pollID`

	var rankingsJSON []byte
	var totalBallots int
	var archivedAt pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"pollID": pollID}).Scan(&rankingsJSON, &totalBallots, &archivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArchiveNotFound
		}
		return nil, fmt.Errorf("error scanning archive for poll %d: %w", pollID, err)
	}

	var rankings []model.ArchivedRanking
	if err := json.Unmarshal(rankingsJSON, &rankings); err != nil {
		return nil, fmt.Errorf("error decoding final rankings for poll %d: %w", pollID, err)
	}

	return &model.PollArchive{
		PollID:        pollID,
		FinalRankings: rankings,
		TotalBallots:  totalBallots,
		ArchivedAt:    archivedAt.Time,
	}, nil
}
