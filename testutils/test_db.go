package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/devgreeny/wheredhego-v1/containers"
	"github.com/devgreeny/wheredhego-v1/db"
)

var (
	// SeasonStart anchors the test season: Sunday, Aug 31 2025 at 3 PM.
	SeasonStart = time.Date(2025, 8, 31, 15, 0, 0, 0, time.UTC)

	// MidSeason falls inside week 3 of the test season.
	MidSeason = time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC)
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

// NewTestDB starts a throwaway Postgres container and connects a DB to it
// with a mock clock pinned to MidSeason, so tests control "now" completely.
func NewTestDB() *TestDB {
	container := containers.NewDBContainer()

	mock := clock.NewMock()
	mock.Set(MidSeason)

	db, err := db.New(context.Background(), container.ConnectionString(), mock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     mock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
