// Package httpapi exposes the gallery over HTTP: a public, cacheable
// paginated read, an authenticated delete, the byte-streaming file endpoint
// and login.
package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/olegsm/imagewall/internal/logging"
	"github.com/olegsm/imagewall/internal/server/models"
	"github.com/olegsm/imagewall/internal/server/services"
	"golang.org/x/sync/errgroup"
)

// Gallery is the read/delete surface consumed by the handlers.
type Gallery interface {
	ListPage(ctx context.Context, cursor int64, limit int) (*services.Page, error)
	ListLegacy(ctx context.Context) ([]*models.Entry, error)
	Delete(ctx context.Context, id int64) error
}

// Authenticator creates accounts and issues access tokens for valid
// credentials.
type Authenticator interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password, challengeToken string) (string, time.Duration, error)
}

// FileOpener streams the bytes behind a file reference.
type FileOpener interface {
	Open(ctx context.Context, fileRef string) (io.ReadCloser, string, error)
}

type Server struct {
	addr      string
	logger    logging.Logger
	gallery   Gallery
	users     Authenticator
	files     FileOpener
	jwtSecret []byte
	srv       *http.Server
}

func NewServer(addr string, logger logging.Logger, gallery Gallery, users Authenticator, files FileOpener, jwtSecret []byte) *Server {
	s := &Server{
		addr:      addr,
		logger:    logger,
		gallery:   gallery,
		users:     users,
		files:     files,
		jwtSecret: jwtSecret,
	}
	s.srv = &http.Server{Addr: addr, Handler: s.routes()}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/entries", s.handleListEntries)
	mux.Handle("DELETE /api/v1/entries/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteEntry)))
	mux.HandleFunc("POST /api/v1/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/files/{ref}", s.handleFile)
	return mux
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
