package http

import (
	"net/http"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/services"
)

func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	assets, err := s.repo.ListAssets(r.Context(), identity.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	liabilities, err := s.repo.ListLiabilities(r.Context(), identity.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	person := parsePerson(r.URL.Query().Get("person"))
	writeJSON(w, http.StatusOK, viewNetWorth(services.DeriveNetWorth(assets, liabilities, person)))
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	assets, err := s.repo.ListAssets(r.Context(), identity.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	scoped := services.FilterByPerson(assets, parsePerson(r.URL.Query().Get("person")))

	out := make([]valuationView, len(scoped))
	for i, a := range scoped {
		out[i] = valuationView{ID: a.ID, Name: a.Name, Value: a.Value.String(), Person: string(a.Person)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload valuationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	draft, err := payload.toAsset()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := draft.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.repo.CreateAsset(r.Context(), identity.HouseholdID, identity.UserID, draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, valuationView{ID: created.ID, Name: created.Name, Value: created.Value.String(), Person: string(created.Person)})
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload valuationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := payload.toAsset()
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.ID = r.PathValue("id")
	if err := a.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.repo.UpdateAsset(r.Context(), identity.HouseholdID, a); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, valuationView{ID: a.ID, Name: a.Name, Value: a.Value.String(), Person: string(a.Person)})
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	if err := s.repo.DeleteAsset(r.Context(), identity.HouseholdID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLiabilities(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	liabilities, err := s.repo.ListLiabilities(r.Context(), identity.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	scoped := services.FilterByPerson(liabilities, parsePerson(r.URL.Query().Get("person")))

	out := make([]valuationView, len(scoped))
	for i, l := range scoped {
		out[i] = valuationView{ID: l.ID, Name: l.Name, Value: l.Value.String(), Person: string(l.Person)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLiability(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload valuationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	draft, err := payload.toLiability()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := draft.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.repo.CreateLiability(r.Context(), identity.HouseholdID, identity.UserID, draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, valuationView{ID: created.ID, Name: created.Name, Value: created.Value.String(), Person: string(created.Person)})
}

func (s *Server) handleUpdateLiability(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload valuationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	l, err := payload.toLiability()
	if err != nil {
		writeError(w, r, err)
		return
	}
	l.ID = r.PathValue("id")
	if err := l.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.repo.UpdateLiability(r.Context(), identity.HouseholdID, l); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, valuationView{ID: l.ID, Name: l.Name, Value: l.Value.String(), Person: string(l.Person)})
}

func (s *Server) handleDeleteLiability(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	if err := s.repo.DeleteLiability(r.Context(), identity.HouseholdID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
