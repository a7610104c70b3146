package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/olegsm/imagewall/internal/common"
	"github.com/olegsm/imagewall/internal/logging"
)

// Locator tries each provider in order: resolve a URL, then fetch it. A
// provider that fails to resolve, fails to respond, or answers with a
// non-200 status is skipped. When every provider is exhausted the failure
// wraps common.ErrResolveFailed.
type Locator struct {
	providers []Provider
	client    *http.Client
	logger    logging.Logger
}

func NewLocator(logger logging.Logger, providers ...Provider) *Locator {
	return &Locator{
		providers: providers,
		client:    &http.Client{},
		logger:    logger,
	}
}

// Open returns the byte stream and content type for a file reference. The
// caller owns the returned reader.
func (l *Locator) Open(ctx context.Context, fileRef string) (io.ReadCloser, string, error) {

	for _, p := range l.providers {

		url, err := p.ResolveURL(ctx, fileRef)
		if err != nil {
			l.logger.Warn(ctx, "provider failed to resolve", "provider", p.Name(), "file_ref", fileRef, "error", err)
			continue
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			l.logger.Warn(ctx, "building fetch request", "provider", p.Name(), "error", err)
			continue
		}

		resp, err := l.client.Do(req)
		if err != nil {
			l.logger.Warn(ctx, "provider fetch failed", "provider", p.Name(), "file_ref", fileRef, "error", err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			l.logger.Warn(ctx, "provider returned no usable file", "provider", p.Name(), "file_ref", fileRef, "status", resp.StatusCode)
			continue
		}

		return resp.Body, resp.Header.Get("Content-Type"), nil
	}

	return nil, "", fmt.Errorf("%w: file %q", common.ErrResolveFailed, fileRef)
}
