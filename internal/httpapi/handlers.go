package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rcliao/tabspace/internal/model"
	"github.com/rcliao/tabspace/internal/store"
)

// HealthzResponse answers GET /healthz.
type HealthzResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Workspaces    int    `json:"workspaces"`
}

// WorkspacesResponse answers GET /api/workspaces.
type WorkspacesResponse struct {
	Workspaces        []model.Workspace `json:"workspaces"`
	ActiveWorkspaceID string            `json:"activeWorkspaceId,omitempty"`
}

// ImportResponse answers POST /api/import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	all, err := s.repo.LoadWorkspaces(r.Context())
	if err != nil {
		s.logger.Error("failed to load workspaces", "error", err)
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	respondJSON(w, http.StatusOK, HealthzResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Workspaces:    len(all),
	})
}

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	all, err := s.repo.LoadWorkspaces(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := WorkspacesResponse{Workspaces: all}
	if active, err := store.ActiveWorkspace(r.Context(), s.repo); err == nil {
		resp.ActiveWorkspaceID = active.ID
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.repo.GetWorkspace(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "workspace not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ws)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	b, err := store.ExportAll(r.Context(), s.repo, store.BackupVersion, s.now())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if r.URL.Query().Get("download") == "1" {
		name := "tabspace-backup-" + s.now().UTC().Format("2006-01-02") + ".json"
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var b store.Backup
	body := http.MaxBytesReader(w, r.Body, s.config.MaxImportBytes)
	if err := json.NewDecoder(body).Decode(&b); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := b.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := store.Import(r.Context(), s.repo, &b, s.now())
	if err != nil {
		s.logger.Error("import failed", "error", err, "imported", n)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ImportResponse{Imported: n})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	searcher, ok := s.repo.(store.Searcher)
	if !ok {
		s.writeError(w, http.StatusNotImplemented, "search not supported by this store")
		return
	}
	q := r.URL.Query()
	if q.Get("q") == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	params := store.SearchParams{Query: q.Get("q"), WorkspaceID: q.Get("workspace")}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		params.Limit = limit
	}
	results, err := searcher.Search(r.Context(), params)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
