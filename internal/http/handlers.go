package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/availability"
	"github.com/mauv0809/squad-scheduler/internal/message"
	"github.com/mauv0809/squad-scheduler/internal/roster"
	"github.com/mauv0809/squad-scheduler/internal/scheduler"
)

const maxBodyBytes = 1 << 20

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListOpponentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Scheduler.Roster().List())
	}
}

func (s *Server) AddOpponentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch roster.OpponentPatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		added, err := s.Scheduler.Roster().Add(patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	}
}

func (s *Server) UpdateOpponentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := opponentID(w, r)
		if !ok {
			return
		}
		var patch roster.OpponentPatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		updated, err := s.Scheduler.Roster().Update(id, patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) RemoveOpponentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := opponentID(w, r)
		if !ok {
			return
		}
		if !isConfirmedFromContext(r) {
			log.Warn("Refusing unconfirmed opponent removal", "id", id)
			writeJSON(w, http.StatusPreconditionRequired, errorResponse{Error: "removal requires confirm=true"})
			return
		}
		if err := s.Scheduler.Roster().Remove(id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) GetFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Scheduler.Form())
	}
}

func (s *Server) SetFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data message.MatchData
		if !decodeJSON(w, r, &data) {
			return
		}
		form, err := s.Scheduler.SetForm(data)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, form)
	}
}

func (s *Server) EditAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var edit scheduler.Edit
		if !decodeJSON(w, r, &edit) {
			return
		}
		form, err := s.Scheduler.EditAvailability(edit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, form)
	}
}

func (s *Server) ResetFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Scheduler.Reset())
	}
}

// MessageHandler composes the message for the posted form, or for the
// stored form when the body is empty.
func (s *Server) MessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, ok := s.formFromRequest(w, r)
		if !ok {
			return
		}
		res, err := s.Scheduler.GenerateFor(data)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) ShareHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, ok := s.formFromRequest(w, r)
		if !ok {
			return
		}
		isDryRun := isDryRunFromContext(r)
		res, err := s.Scheduler.Share(r.Context(), data, isDryRun)
		if err != nil {
			if errors.Is(err, message.ErrOpponentNotFound) {
				writeError(w, err)
				return
			}
			log.Error("Share failed", "error", err, "dryRun", isDryRun)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) TimeOptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if start := r.URL.Query().Get("after"); start != "" {
			if !availability.ValidTime(start) {
				writeError(w, fmt.Errorf("%w: %q", availability.ErrInvalidTime, start))
				return
			}
			writeJSON(w, http.StatusOK, optionsResponse{Options: availability.EndOptions(start)})
			return
		}
		writeJSON(w, http.StatusOK, optionsResponse{Options: availability.TimeOptions()})
	}
}

func (s *Server) ChampionshipsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, optionsResponse{Options: message.Championships})
	}
}

func (s *Server) formFromRequest(w http.ResponseWriter, r *http.Request) (message.MatchData, bool) {
	data := s.Scheduler.Form()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read body"})
		return message.MatchData{}, false
	}
	if len(body) == 0 {
		return data, true
	}
	data = message.MatchData{}
	if err := json.Unmarshal(body, &data); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return message.MatchData{}, false
	}
	if err := scheduler.ValidateForm(data); err != nil {
		writeError(w, err)
		return message.MatchData{}, false
	}
	return data, true
}

func opponentID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid opponent id"})
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		log.Warn("Rejecting request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, message.ErrOpponentNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, roster.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, roster.ErrMissingRequired),
		errors.Is(err, scheduler.ErrUnknownChampionship),
		errors.Is(err, availability.ErrInvalidTime),
		errors.Is(err, availability.ErrEndBeforeStart),
		errors.Is(err, availability.ErrUnknownDay),
		errors.Is(err, availability.ErrUnknownSlot),
		errors.Is(err, availability.ErrUnknownField):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
