package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/htmltext/htmltext"
	"github.com/hazyhaar/htmltext/kit"
	"github.com/hazyhaar/htmltext/shield"
)

type serverConfig struct {
	maxBody int64
	limit   shield.RateLimitConfig
}

func runServe(ctx context.Context, args []string) error {
	cf := newFlagSet("serve")
	addr := cf.fs.String("addr", env("ADDR", ":8080"), "listen address")
	maxBody := cf.fs.Int64("max-body", 4<<20, "maximum request body in bytes")
	perMinute := cf.fs.Int("rate-limit", 0, "requests per minute per client IP, 0 disables")
	if err := cf.fs.Parse(args); err != nil {
		return err
	}
	conv, logger, err := cf.setup()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: *addr,
		Handler: newRouter(conv, logger, serverConfig{
			maxBody: *maxBody,
			limit:   shield.RateLimitConfig{MaxRequests: *perMinute, Window: time.Minute},
		}),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newRouter(conv *htmltext.Converter, logger *slog.Logger, cfg serverConfig) http.Handler {
	r := chi.NewRouter()
	for _, mw := range shield.DefaultStack(cfg.maxBody, cfg.limit) {
		r.Use(mw)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	formats := conv.FormatsEndpoint()
	r.Get("/formats", func(w http.ResponseWriter, r *http.Request) {
		resp, err := formats(r.Context(), nil)
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, resp)
	})

	convert := kit.Chain(kit.Logging(logger, "convert"), kit.Recover())(conv.ConvertEndpoint())
	r.Post("/convert", func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeConvertRequest(r)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeError(w, http.StatusRequestEntityTooLarge, err)
				return
			}
			writeError(w, 400, err)
			return
		}
		resp, err := convert(r.Context(), req)
		if err != nil {
			if errors.Is(err, htmltext.ErrOutputFormat) {
				writeError(w, 400, err)
				return
			}
			shield.GetLogger(r.Context()).Error("convert", "error", err)
			writeError(w, 500, err)
			return
		}
		out := resp.(*htmltext.ConvertResponse)
		contentType := "text/plain; charset=utf-8"
		if out.Format == htmltext.OutputMarkdown {
			contentType = "text/markdown; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(200)
		io.WriteString(w, out.Text)
	})

	return r
}

// decodeConvertRequest reads the HTML body and the query overrides.
func decodeConvertRequest(r *http.Request) (*htmltext.ConvertRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	q := r.URL.Query()
	req := &htmltext.ConvertRequest{HTML: string(body), Format: q.Get("format")}
	if v := q.Get("wordwrap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("wordwrap: %w", err)
		}
		req.Wordwrap = &n
	}
	if v := q.Get("preserve_newlines"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("preserve_newlines: %w", err)
		}
		req.PreserveNewlines = &b
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// --- mcp ---

func runMCP(ctx context.Context, args []string) error {
	cf := newFlagSet("mcp")
	if err := cf.fs.Parse(args); err != nil {
		return err
	}
	conv, logger, err := cf.setup()
	if err != nil {
		return err
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "htmltext",
		Version: version,
	}, nil)
	conv.RegisterMCP(srv)

	logger.Info("MCP stdio starting")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
