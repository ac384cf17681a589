package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/listings/internal/domain/project"
	"github.com/rpggio/listings/internal/domain/session"
)

// SessionService defines the session operations the API needs.
type SessionService interface {
	Open(ctx context.Context) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Reload(ctx context.Context, id string) (*session.Session, error)
	Close(id string) error
	List() []session.SessionInfo
}

// SessionView is a catalog view tagged with its session. Changed is set by
// actions that can be silently ignored (filters, paging).
type SessionView struct {
	SessionID string `json:"session_id"`
	Changed   *bool  `json:"changed,omitempty"`
	project.View
}

type filterRequest struct {
	Value string `json:"value"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type pageRequest struct {
	Page int `json:"page"`
}

// Server wires HTTP handlers.
type Server struct {
	sessions SessionService
	logger   *slog.Logger
}

// NewServer creates the API router with middleware.
func NewServer(sessions SessionService, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	srv := &Server{sessions: sessions, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", srv.handleOpen)
		r.Get("/", srv.handleList)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Use(srv.sessionCtx)

			r.Get("/", srv.handleView)
			r.Delete("/", srv.handleClose)
			r.Post("/reload", srv.handleReload)
			r.Get("/facets", srv.handleFacets)
			r.Put("/filters/{dimension}", srv.handleSetFilter)
			r.Delete("/filters", srv.handleClearFilters)
			r.Post("/search", srv.handleSearch)
			r.Post("/page", srv.handleGoToPage)
			r.Post("/next", srv.handleNextPage)
			r.Post("/prev", srv.handlePrevPage)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Open(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(sess, nil))
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.sessions.List()})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, viewOf(sess, nil))
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if err := s.sessions.Close(sess.ID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if _, err := s.sessions.Reload(r.Context(), sess.ID); err != nil {
		switch {
		case project.IsLoadError(err):
			writeJSON(w, http.StatusBadGateway, viewOf(sess, nil))
		case errors.Is(err, project.ErrSuperseded):
			writeJSON(w, http.StatusConflict, viewOf(sess, nil))
		default:
			writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess, nil))
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"facets":     sess.Catalog.Facets(),
	})
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	var req filterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	dim := project.Dimension(chi.URLParam(r, "dimension"))
	changed := sess.Catalog.SetFilter(dim, req.Value)
	writeJSON(w, http.StatusOK, viewOf(sess, &changed))
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	sess.Catalog.ClearFilters()
	writeJSON(w, http.StatusOK, viewOf(sess, nil))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	var req searchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	sess.Catalog.Search(req.Query)
	writeJSON(w, http.StatusOK, viewOf(sess, nil))
}

func (s *Server) handleGoToPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	var req pageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	changed := sess.Catalog.GoToPage(req.Page)
	writeJSON(w, http.StatusOK, viewOf(sess, &changed))
}

func (s *Server) handleNextPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	changed := sess.Catalog.NextPage()
	writeJSON(w, http.StatusOK, viewOf(sess, &changed))
}

func (s *Server) handlePrevPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	changed := sess.Catalog.PrevPage()
	writeJSON(w, http.StatusOK, viewOf(sess, &changed))
}

func viewOf(sess *session.Session, changed *bool) SessionView {
	return SessionView{
		SessionID: sess.ID,
		Changed:   changed,
		View:      sess.Catalog.View(),
	}
}
