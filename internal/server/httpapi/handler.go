package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/olegsm/imagewall/internal/common"
	"github.com/olegsm/imagewall/internal/server/models"
)

const (
	feedCacheControl = "public, max-age=60"
	fileCacheControl = "public, max-age=31536000, immutable"
)

type entryJSON struct {
	ID        int64          `json:"id"`
	Prompt    string         `json:"prompt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	FileRef   string         `json:"file_ref"`
	OwnerRef  string         `json:"owner_ref,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type pageJSON struct {
	Items      []entryJSON `json:"items"`
	HasMore    bool        `json:"has_more"`
	NextCursor int64       `json:"next_cursor,omitempty"`
	Limit      int         `json:"limit"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	ChallengeToken string `json:"challenge_token,omitempty"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type deleteResponse struct {
	ID int64 `json:"id"`
}

func toEntryJSON(entries []*models.Entry) []entryJSON {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON{
			ID:        e.ID,
			Prompt:    e.Prompt,
			Metadata:  e.Metadata,
			FileRef:   e.FileRef,
			OwnerRef:  e.OwnerRef,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

// handleListEntries serves both response shapes: the keyset page when limit
// or cursor is supplied, and the legacy flat list when neither is.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if !q.Has("limit") && !q.Has("cursor") {
		entries, err := s.gallery.ListLegacy(ctx)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", feedCacheControl)
		s.writeJSON(w, http.StatusOK, toEntryJSON(entries))
		return
	}

	var limit int
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: limit %q", common.ErrInvalidCursor, raw))
			return
		}
		limit = parsed
	}

	var cursor int64
	if raw := q.Get("cursor"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			s.writeError(w, r, fmt.Errorf("%w: %q", common.ErrInvalidCursor, raw))
			return
		}
		cursor = parsed
	}

	page, err := s.gallery.ListPage(ctx, cursor, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", feedCacheControl)
	s.writeJSON(w, http.StatusOK, pageJSON{
		Items:      toEntryJSON(page.Items),
		HasMore:    page.HasMore,
		NextCursor: page.NextCursor,
		Limit:      page.Limit,
	})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: entry id", common.ErrInvalidCursor))
		return
	}

	if err := s.gallery.Delete(ctx, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(ctx, "entry deleted", "id", id, "user_id", userIDFromContext(ctx))
	s.writeJSON(w, http.StatusOK, deleteResponse{ID: id})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed register request", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	s.writeJSON(w, http.StatusOK, registerResponse{ID: user.ID, Username: user.UserName})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed login request", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	token, validity, err := s.users.Login(ctx, req.Username, req.Password, req.ChallengeToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		ExpiresIn:   int64(validity.Seconds()),
	})
}

// handleFile resolves the reference through the provider chain and streams
// the bytes through. Content is immutable once issued, hence the long-lived
// cache directive.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ref := r.PathValue("ref")
	if ref == "" {
		http.Error(w, "missing file reference", http.StatusBadRequest)
		return
	}

	body, contentType, err := s.files.Open(ctx, ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Cache-Control", fileCacheControl)
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	if r.Method == http.MethodHead {
		return
	}

	if _, err := io.Copy(w, body); err != nil {
		// headers already sent, nothing left to do but log
		s.logger.Warn(ctx, "streaming file bytes", "file_ref", ref, "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn(context.Background(), "encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCursor):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, common.ErrResolveFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
