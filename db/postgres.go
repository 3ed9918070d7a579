package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devgreeny/wheredhego-v1/model"
)

var (
	ErrPollNotFound    error = errors.New("poll not found")
	ErrBallotNotFound  error = errors.New("ballot not found")
	ErrArchiveNotFound error = errors.New("poll archive not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

const pollColumns = `id, week_number, season_year, title, description,
					start_time, end_time, is_active, is_archived, created`

func (db *postgresDB) GetPoll(ctx context.Context, id int32) (*model.Poll, error) {
	const query = `SELECT ` + pollColumns + ` FROM polls WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	p, err := scanPoll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("error scanning poll %d: %w", id, err)
	}
	return p, nil
}

func (db *postgresDB) GetPollByWeek(ctx context.Context, seasonYear, weekNumber int) (*model.Poll, error) {
	const query = `SELECT ` + pollColumns + ` FROM polls
					WHERE season_year=@seasonYear AND week_number=@weekNumber`

	args := pgx.NamedArgs{
		"seasonYear": seasonYear,
		"weekNumber": weekNumber,
	}
	row := db.pool.QueryRow(ctx, query, args)
	p, err := scanPoll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("error scanning poll for %d week %d: %w", seasonYear, weekNumber, err)
	}
	return p, nil
}

// UpsertPoll relies on the unique (season_year, week_number) key so two
// concurrent callers ensuring the same week cannot create duplicate polls:
// the loser of the race reads back the winner's row.
func (db *postgresDB) UpsertPoll(ctx context.Context, poll model.Poll) (*model.Poll, error) {
	const insert = `INSERT INTO polls (
			week_number,
			season_year,
			title,
			description,
			start_time,
			end_time,
			is_active,
			created
		) VALUES (
			@weekNumber,
			@seasonYear,
			@title,
			@description,
			@startTime,
			@endTime,
			@isActive,
			@created
		)
		ON CONFLICT (season_year, week_number) DO NOTHING
		RETURNING ` + pollColumns

	args := pgx.NamedArgs{
		"weekNumber":  poll.WeekNumber,
		"seasonYear":  poll.SeasonYear,
		"title":       poll.Title,
		"description": poll.Description,
		"startTime":   timestamptz(poll.StartTime),
		"endTime":     timestamptz(poll.EndTime),
		"isActive":    poll.IsActive,
		"created":     timestamptz(db.clock.Now().UTC()),
	}
	row := db.pool.QueryRow(ctx, insert, args)
	p, err := scanPoll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: the poll for this week already exists.
			return db.GetPollByWeek(ctx, poll.SeasonYear, poll.WeekNumber)
		}
		return nil, fmt.Errorf("error upserting poll for %d week %d: %w", poll.SeasonYear, poll.WeekNumber, err)
	}
	return p, nil
}

func (db *postgresDB) PreviousPoll(ctx context.Context, poll *model.Poll) (*model.Poll, error) {
	if poll.WeekNumber > 1 {
		p, err := db.GetPollByWeek(ctx, poll.SeasonYear, poll.WeekNumber-1)
		if errors.Is(err, ErrPollNotFound) {
			return nil, nil
		}
		return p, err
	}

	// Week 1 looks back at the final week of the previous season.
	const query = `SELECT ` + pollColumns + ` FROM polls
					WHERE season_year=@seasonYear
					ORDER BY week_number DESC LIMIT 1`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"seasonYear": poll.SeasonYear - 1})
	p, err := scanPoll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning previous-season poll: %w", err)
	}
	return p, nil
}

func (db *postgresDB) DeactivateOtherPolls(ctx context.Context, currentID int32) error {
	const update = `UPDATE polls SET is_active=FALSE
					WHERE id<>@id AND is_active=TRUE AND is_archived=FALSE`

	if _, err := db.pool.Exec(ctx, update, pgx.NamedArgs{"id": currentID}); err != nil {
		return fmt.Errorf("error deactivating superseded polls: %w", err)
	}
	return nil
}

func (db *postgresDB) ListArchivablePolls(ctx context.Context, now time.Time, excludeID int32) ([]model.Poll, error) {
	const query = `SELECT ` + pollColumns + ` FROM polls
					WHERE end_time < @now AND is_archived=FALSE AND id <> @excludeID
					ORDER BY season_year, week_number`

	args := pgx.NamedArgs{
		"now":       timestamptz(now),
		"excludeID": excludeID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying archivable polls: %w", err)
	}
	defer rows.Close()

	results := make([]model.Poll, 0, 4)
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning archivable poll: %w", err)
		}
		results = append(results, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return results, nil
}

func scanPoll(row pgx.Row) (*model.Poll, error) {
	var result model.Poll
	var start, end, created pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.WeekNumber,
		&result.SeasonYear,
		&result.Title,
		&result.Description,
		&start,
		&end,
		&result.IsActive,
		&result.IsArchived,
		&created)

	if err != nil {
		return nil, err
	}

	result.StartTime = start.Time
	result.EndTime = end.Time
	result.Created = created.Time

	return &result, nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             t,
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}
