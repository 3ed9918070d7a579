package web

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"github.com/devgreeny/wheredhego-v1/controller"
	"github.com/devgreeny/wheredhego-v1/db"
	"github.com/devgreeny/wheredhego-v1/model"
)

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "creator poll")
	}
}

func currentPollHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poll, err := ctrl.EnsureCurrentPoll(r.Context())
		if err != nil {
			if errors.Is(err, controller.ErrNoCurrentPoll) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: "no poll is open yet"})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusOK, pollResponse(poll))
	}
}

func resultsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pollID, err := parsePollID(r)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		results, err := ctrl.GetResults(r.Context(), pollID)
		if err != nil {
			if errors.Is(err, db.ErrPollNotFound) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: "poll not found"})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusOK, resultsResponse(results))
	}
}

func getBallotHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pollID, err := parsePollID(r)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		ballot, err := ctrl.GetBallot(r.Context(), pollID, voterFromRequest(r))
		if err != nil {
			if errors.Is(err, db.ErrBallotNotFound) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: "no ballot submitted"})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusOK, ballotResponse(ballot))
	}
}

func submitBallotHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pollID, err := parsePollID(r)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		var body struct {
			Items []model.RankedItem `json:"items"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("error parsing ballot: %v", err)})
			return
		}

		ballot, err := ctrl.SubmitBallot(r.Context(), pollID, voterFromRequest(r), body.Items)
		if err != nil {
			switch {
			case errors.Is(err, model.ErrInvalidBallot):
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			case errors.Is(err, db.ErrPollNotFound):
				render.JSON(w, http.StatusNotFound, errorResponse{Error: "poll not found"})
			default:
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusOK, ballotResponse(ballot))
	}
}

func sweepArchivesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := ctrl.SweepArchives(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{"archived": ids})
	}
}

func parsePollID(r *http.Request) (int32, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "pollID"))
	if err != nil {
		return 0, fmt.Errorf("error parsing poll id: %v", err)
	}
	return int32(id), nil
}

// voterFromRequest resolves the voter identity for a request. Authenticated
// requests carry the user id in the X-User-ID header (set by the session
// layer in front of this service); everything else votes as a guest keyed by
// a fingerprint of the caller's address and user agent.
func voterFromRequest(r *http.Request) model.VoterIdentity {
	if userID := r.Header.Get("X-User-ID"); userID != "" {
		return model.RegisteredVoter(userID)
	}

	sum := sha256.Sum256([]byte(r.RemoteAddr + "|" + r.UserAgent()))
	return model.GuestVoter(fmt.Sprintf("%x", sum[:8]))
}

type errorResponse struct {
	Error string `json:"error"`
}
