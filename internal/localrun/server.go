// Package localrun serves a Lambda handler over HTTP for local development.
package localrun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultAddr = ":8000"

// Handlers that derive timeouts from the context expect a deadline.
const invocationTimeout = 15 * time.Minute

// HandlerFunc matches the signature accepted by lambda.Start.
type HandlerFunc[T any, U any] func(ctx context.Context, event T) (U, error)

// Addr returns ":<port>" for a non-empty port, else the default ":8000".
func Addr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return defaultAddr
	}
	return ":" + strings.TrimPrefix(port, ":")
}

// NewMux routes POST /endpoint to fn and GET / to a usage page.
func NewMux[T any, U any](addr string, fn HandlerFunc[T, U], logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/endpoint", endpoint(fn, logger))
	mux.HandleFunc("/", usage(addr, logger))
	return mux
}

// ListenAndServe blocks until the server fails.
func ListenAndServe[T any, U any](addr string, fn HandlerFunc[T, U], logger *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           NewMux(addr, fn, logger),
		ReadHeaderTimeout: 3 * time.Second,
	}
	logger.Info("Local server started", "url", "http://localhost"+addr, "endpoint", "http://localhost"+addr+"/endpoint")
	err := server.ListenAndServe()
	if err != nil && strings.Contains(err.Error(), "address already in use") {
		return fmt.Errorf("localrun: %s is already in use, set LAMBDA_DEBUG_PORT to use a different port: %w", addr, err)
	}
	return err
}

func usage(addr string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines := []string{
			"Save an S3 event JSON payload to a file - e.g. payload.json",
			fmt.Sprintf("curl -X POST -H \"Content-Type: application/json\" -d @payload.json http://localhost%s/endpoint", addr),
		}
		if _, err := io.WriteString(w, strings.Join(lines, "\n\n")); err != nil {
			logger.Warn("Response write failed", "err", err)
		}
	}
}

func endpoint[T any, U any](fn HandlerFunc[T, U], logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		fail := func(status int, err error) {
			w.WriteHeader(status)
			if _, wErr := io.WriteString(w, err.Error()); wErr != nil {
				logger.Warn("Response write failed", "err", wErr)
			}
		}

		if r.Method != http.MethodPost {
			fail(http.StatusMethodNotAllowed, errors.New("use POST"))
			return
		}

		var input T
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			fail(http.StatusBadRequest, fmt.Errorf("decode event: %w", err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), invocationTimeout)
		defer cancel()

		res, err := fn(ctx, input)
		if err != nil {
			fail(http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			logger.Warn("Response write failed", "err", err)
		}
	}
}
