package mcp

import (
	"context"
	"crypto/subtle"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zx06/xkeyring/internal/errors"
)

const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable_http"
)

const (
	authHeader    = "Authorization"
	bearerPrefix  = "Bearer "
	unauthorized  = "unauthorized"
	headerMissing = "authorization header is required"
	challenge     = `Bearer realm="xkeyring"`

	shutdownTimeout = 5 * time.Second
)

// NewStreamableHTTPHandler creates a streamable HTTP handler with required auth.
// Every request must carry "Authorization: Bearer <token>"; secrets never leave
// the process without it.
func NewStreamableHTTPHandler(server *mcp.Server, authToken string) (http.Handler, error) {
	if server == nil {
		return nil, errors.New(errors.CodeInternal, "mcp server is nil", nil)
	}
	if authToken == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "mcp streamable http auth token is required", nil)
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
	return requireAuth(handler, authToken), nil
}

func requireAuth(next http.Handler, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		auth := strings.TrimSpace(req.Header.Get(authHeader))
		if auth == "" {
			deny(w, headerMissing)
			return
		}
		received, ok := strings.CutPrefix(auth, bearerPrefix)
		if !ok || subtle.ConstantTimeCompare([]byte(received), []byte(token)) != 1 {
			deny(w, unauthorized)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func deny(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", challenge)
	http.Error(w, msg, http.StatusUnauthorized)
}

// ServeHTTP listens on addr until ctx is done, then shuts the server down gracefully.
func ServeHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return listenErr(addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.CodeInternal, "mcp http shutdown failed", nil, err)
	}
	return listenErr(addr, <-errCh)
}

func listenErr(addr string, err error) error {
	if err == nil || stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrap(errors.CodeInternal, "mcp http server failed", map[string]any{"addr": addr}, err)
}
