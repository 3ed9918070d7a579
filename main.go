package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"

	"github.com/devgreeny/wheredhego-v1/controller"
	"github.com/devgreeny/wheredhego-v1/db"
	"github.com/devgreeny/wheredhego-v1/model"
	"github.com/devgreeny/wheredhego-v1/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	seasonStart := time.Date(2025, time.August, 31, 15, 0, 0, 0, time.UTC)
	if v := os.Getenv("SEASON_START"); v != "" {
		seasonStart, err = time.Parse(time.RFC3339, v)
		if err != nil {
			log.Fatalf("error parsing SEASON_START: %v", err)
		}
	}

	seasonWeeks := model.DefaultSeasonWeeks
	if v := os.Getenv("SEASON_WEEKS"); v != "" {
		seasonWeeks, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("error parsing SEASON_WEEKS: %v", err)
		}
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	schedule := model.NewSchedule(seasonStart, seasonWeeks)

	ctrl, err := controller.New(clock, schedule, db)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that archives finished polls once an hour.
	wg.Add(1)
	go ctrl.RunPeriodicArchiveSweeps(time.Hour, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
