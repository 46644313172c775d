package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
	"github.com/denisok6893-rgb/property-matchmaking/internal/records"
)

type PropertiesListResponse struct {
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int               `json:"total"`
	Items  []domain.Property `json:"items"`
}

type ClientsListResponse struct {
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Total  int             `json:"total"`
	Items  []domain.Client `json:"items"`
}

var errEmptyBody = errors.New("empty body")

// decodeBody reads a JSON object. Records go through the records package
// so that HTTP and file input accept the same loose shapes.
func decodeBody(r *http.Request) (map[string]any, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errEmptyBody
	}
	return raw, nil
}

func (s *Server) handlePropertiesList(w http.ResponseWriter, r *http.Request) {
	params := listParamsFromRequest(r, 20)
	items, total, err := s.repo.ListProperties(r.Context(), params.Filter())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Property{}
	}
	writeJSON(w, http.StatusOK, PropertiesListResponse{
		Limit:  params.Limit,
		Offset: params.Offset,
		Total:  total,
		Items:  items,
	})
}

func (s *Server) handlePropertiesCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	p, err := records.DecodeProperty(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_record")
		return
	}
	if p.ID != "" {
		if _, found, err := s.repo.GetProperty(r.Context(), p.ID); err != nil {
			s.internalError(w, r, err)
			return
		} else if found {
			writeError(w, http.StatusConflict, "already_exists")
			return
		}
	}
	created, err := s.repo.CreateProperty(r.Context(), p)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePropertyGet(w http.ResponseWriter, r *http.Request) {
	p, found, err := s.repo.GetProperty(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.repo.DeleteProperty(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleClientsList(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 20, 0)
	items, total, err := s.repo.ListClients(r.Context(), limit, offset)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Client{}
	}
	writeJSON(w, http.StatusOK, ClientsListResponse{
		Limit:  limit,
		Offset: offset,
		Total:  total,
		Items:  items,
	})
}

func (s *Server) handleClientsCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	c, err := records.DecodeClient(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_record")
		return
	}
	if c.ID != "" {
		if _, found, err := s.repo.GetClient(r.Context(), c.ID); err != nil {
			s.internalError(w, r, err)
			return
		} else if found {
			writeError(w, http.StatusConflict, "already_exists")
			return
		}
	}
	created, err := s.repo.CreateClient(r.Context(), c)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleClientGet(w http.ResponseWriter, r *http.Request) {
	c, found, err := s.repo.GetClient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClientDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.repo.DeleteClient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
