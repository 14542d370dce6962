package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
)

const maxBody = 1 << 20

type positionDTO struct {
	X float64 `json:"x" validate:"min=0,max=1"`
	Y float64 `json:"y" validate:"min=0,max=1"`
}

func (p *positionDTO) point() *geom.Point {
	if p == nil {
		return nil
	}
	return &geom.Point{X: p.X, Y: p.Y}
}

type createIdeaRequest struct {
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description" validate:"max=5000"`
	Status      string       `json:"status" validate:"omitempty,oneof=spark developing refined completed archived"`
	Position    *positionDTO `json:"position"`
}

type updateIdeaRequest struct {
	Title       *string      `json:"title" validate:"omitempty,max=200"`
	Description *string      `json:"description" validate:"omitempty,max=5000"`
	Status      *string      `json:"status" validate:"omitempty,oneof=spark developing refined completed archived"`
	Position    *positionDTO `json:"position"`
}

type createLinkRequest struct {
	IdeaID1 string `json:"idea_id_1" validate:"required"`
	IdeaID2 string `json:"idea_id_2" validate:"required"`
}

func (s *Server) listIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := s.userStore(r).ListIdeas(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

func (s *Server) getIdea(w http.ResponseWriter, r *http.Request) {
	idea, err := s.userStore(r).Idea(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idea)
}

func (s *Server) createIdea(w http.ResponseWriter, r *http.Request) {
	var req createIdeaRequest
	if !s.decode(w, r, &req) {
		return
	}
	idea, err := s.userStore(r).CreateIdea(r.Context(), galaxy.IdeaDraft{
		Title:       req.Title,
		Description: req.Description,
		Status:      galaxy.Status(req.Status),
		Position:    req.Position.point(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.ideasCreated.Inc()
	writeJSON(w, http.StatusCreated, idea)
}

func (s *Server) updateIdea(w http.ResponseWriter, r *http.Request) {
	var req updateIdeaRequest
	if !s.decode(w, r, &req) {
		return
	}
	patch := galaxy.IdeaPatch{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position.point(),
	}
	if req.Status != nil {
		st := galaxy.Status(*req.Status)
		patch.Status = &st
	}
	idea, err := s.userStore(r).UpdateIdea(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idea)
}

func (s *Server) deleteIdea(w http.ResponseWriter, r *http.Request) {
	if err := s.userStore(r).DeleteIdea(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.ideasDeleted.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) related(w http.ResponseWriter, r *http.Request) {
	out, err := s.userStore(r).Related(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listConstellations(w http.ResponseWriter, r *http.Request) {
	links, err := s.userStore(r).ListConstellations(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (s *Server) createConstellation(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest
	if !s.decode(w, r, &req) {
		return
	}
	link, err := s.userStore(r).CreateConstellation(r.Context(), req.IdeaID1, req.IdeaID2)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.linksCreated.Inc()
	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) deleteConstellation(w http.ResponseWriter, r *http.Request) {
	if err := s.userStore(r).DeleteConstellation(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) discover(w http.ResponseWriter, r *http.Request) {
	out, err := s.userStore(r).Discover(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) publicProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.PublicProfile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		if errors.Is(err, galaxy.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// decode reads a JSON body into dst and validates it, answering 400 itself
// on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeDetail(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}

// writeError maps domain errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, galaxy.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, galaxy.ErrDuplicateLink):
		writeDetail(w, http.StatusConflict, "Constellation already exists")
	case errors.Is(err, galaxy.ErrSelfLink):
		writeDetail(w, http.StatusBadRequest, galaxy.ErrSelfLink.Error())
	case errors.Is(err, galaxy.ErrInvalidIdea):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, galaxy.ErrReadOnly):
		writeDetail(w, http.StatusForbidden, err.Error())
	default:
		s.log.Error("request failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}
