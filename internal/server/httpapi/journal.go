package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/musicjournal/internal/server/services"
)

func (s *Server) handleAddTrack(w http.ResponseWriter, r *http.Request, _ *models.User) {
	var t models.Track
	if err := decodeJSON(r, &t); err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := s.deps.Journal.AddTrack(r.Context(), &t)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"trackID": id})
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request, _ *models.User) {
	t, err := s.deps.Journal.GetTrack(r.Context(), r.PathValue("trackId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request, user *models.User) {
	var in services.NewEntry
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	e, err := s.deps.Journal.CreateEntry(r.Context(), user.UserID, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"entryID": e.EntryID})
}

// handleListEntries accepts ?order=created or ?order=updated; the default is
// insertion order.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request, user *models.User) {
	order := entries.ParseOrder(r.URL.Query().Get("order"))
	list, err := s.deps.Journal.ListEntries(r.Context(), user.UserID, order)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListByTrack(w http.ResponseWriter, r *http.Request, user *models.User) {
	list, err := s.deps.Journal.ListByTrack(r.Context(), user.UserID, r.PathValue("trackId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request, user *models.User) {
	var patch models.EntryPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.fail(w, r, err)
		return
	}
	entryID := r.PathValue("entryId")
	if err := s.deps.Journal.UpdateEntry(r.Context(), user.UserID, entryID, patch); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"entryID": entryID})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := s.deps.Journal.DeleteEntry(r.Context(), user.UserID, r.PathValue("entryId")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
