package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/devgreeny/wheredhego-v1/controller"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/poll", func(r chi.Router) {
		r.Get("/current", currentPollHandler(ctrl, render))

		r.Route("/{pollID:\\d+}", func(r chi.Router) {
			r.Get("/results", resultsHandler(ctrl, render))
			r.Get("/ballot", getBallotHandler(ctrl, render))
			r.Post("/ballot", submitBallotHandler(ctrl, render))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("creatorpoll", map[string]string{"admin": "pa55word"})) // TODO: read from DB instead
		r.Use(middleware.Timeout(30 * time.Second))                                       // Set a longer timeout for /admin actions

		r.Post("/archive", sweepArchivesHandler(ctrl, render))
	})

	return r
}
