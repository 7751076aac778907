// CLAUDE:SUMMARY Entry point for the cavexd extraction service — chi router, SQLite store, optional MCP stdio.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/crypto/bcrypt"

	"github.com/hazyhaar/cavex/export"
	"github.com/hazyhaar/cavex/measure"
	"github.com/hazyhaar/cavex/observability"
	"github.com/hazyhaar/cavex/shield"
	"github.com/hazyhaar/cavex/store"
)

func main() {
	cfgPath := env("CAVEXD_CONFIG", "")
	cfg := DefaultConfig()
	if cfgPath != "" {
		loaded, err := LoadConfig(cfgPath)
		if err != nil {
			slog.Error("config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}
	if db := os.Getenv("CAVEX_DB"); db != "" {
		cfg.DBPath = db
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if t := os.Getenv("MCP_TRANSPORT"); t != "" {
		cfg.MCPTransport = t
	}

	// Logging.
	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	// MCP stdio owns stdout; everything else logs there too.
	logOut := os.Stdout
	if cfg.MCPTransport == "stdio" {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Result store + observability tables share one database file.
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		slog.Error("store", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	db := st.DB()

	if err := observability.Init(db); err != nil {
		slog.Error("observability init", "error", err)
		os.Exit(1)
	}
	if err := shield.Init(db); err != nil {
		slog.Error("shield init", "error", err)
		os.Exit(1)
	}

	events := observability.NewEventRecorder(db)

	cfg.Extraction.Logger = logger
	cfg.Extraction.MaxFileSize = cfg.MaxFileBytes()
	extractor := measure.New(cfg.Extraction)
	exporter := export.NewService(logger)

	// MCP stdio mode: serve tools over stdin/stdout and exit. No HTTP.
	if cfg.MCPTransport == "stdio" {
		srv := mcp.NewServer(&mcp.Implementation{
			Name:    "cavex",
			Version: "1.0.0",
		}, nil)
		extractor.RegisterMCP(srv)
		slog.Info("MCP stdio starting")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP stdio", "error", err)
			os.Exit(1)
		}
		return
	}

	// Heartbeats for the health endpoint.
	hb := observability.NewHeartbeatWriter(db, "cavexd", 15*time.Second)
	hb.Start(ctx)

	// Daily retention cleanup.
	go func() {
		tick := time.NewTicker(24 * time.Hour)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				err := observability.Cleanup(ctx, db, observability.RetentionConfig{
					HTTPLogsDays:   cfg.Retention.HTTPLogsDays,
					EventsDays:     cfg.Retention.EventsDays,
					HeartbeatsDays: cfg.Retention.HeartbeatsDays,
				})
				if err != nil {
					slog.Warn("retention cleanup", "error", err)
				}
			}
		}
	}()

	app := &application{
		cfg:       cfg,
		store:     st,
		extractor: extractor,
		exporter:  exporter,
		events:    events,
	}

	// Router.
	r := chi.NewRouter()
	mws, rl := shield.DefaultAPIStack(db, cfg.MaxFileBytes()*2)
	for _, mw := range mws {
		r.Use(mw)
	}
	rl.StartReloader(ctx.Done())
	r.Use(observability.RequestLog(db))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		status, err := observability.LatestHeartbeat(req.Context(), db, "cavexd", 45*time.Second)
		if err != nil {
			writeError(w, 500, err)
			return
		}
		docs, meas, err := st.Counts(req.Context())
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, map[string]any{
			"status":       "ok",
			"heartbeat":    status,
			"documents":    docs,
			"measurements": meas,
		})
	})

	r.Route("/v1", func(r chi.Router) {
		if cfg.APIKeyHash != "" {
			r.Use(requireAPIKey(cfg.APIKeyHash))
		}
		r.Post("/extract", app.handleExtract)
		r.Get("/documents", app.handleListDocuments)
		r.Get("/documents/{cavityID}", app.handleGetDocument)
		r.Get("/documents/{cavityID}/export", app.handleExportDocument)
	})

	// HTTP server.
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// application bundles the handler dependencies.
type application struct {
	cfg       *Config
	store     *store.Store
	extractor *measure.Extractor
	exporter  *export.Service
	events    *observability.EventRecorder
}

// handleExtract accepts a multipart batch under the "files" field, runs the
// extraction pipeline on each PDF and persists the per-cavity results.
func (app *application) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(app.cfg.MaxFileBytes()); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no files uploaded (use multipart field \"files\")"})
		return
	}

	var files []measure.BatchFile
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, app.cfg.MaxFileBytes()+1))
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		files = append(files, measure.BatchFile{Filename: fh.Filename, Data: data})
	}

	res := app.extractor.ProcessBatch(r.Context(), files, app.cfg.BatchWorkers)

	// Persist and record per-document outcomes. Store failures degrade to
	// warnings: the extraction result is still returned to the caller.
	for _, out := range res.Files {
		ev := observability.ExtractionEvent{
			Filename: out.Filename,
			Duration: out.Duration,
		}
		if out.Err != nil {
			ev.Success = false
			ev.ErrorMessage = out.Err.Error()
			app.events.Record(r.Context(), ev)
			continue
		}
		ev.CavityID = out.Doc.CavityID
		ev.Pages = out.Doc.Pages
		ev.Records = len(out.Doc.Measurements)
		ev.Success = true
		if err := app.store.SaveResult(r.Context(), out.Filename, out.Doc); err != nil {
			slog.Error("save result", "cavity_id", out.Doc.CavityID, "error", err)
			res.Warnings = append(res.Warnings, out.Filename+": result not persisted")
		}
		app.events.Record(r.Context(), ev)
	}

	writeJSON(w, http.StatusOK, res)
}

func (app *application) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := app.store.ListCavities(r.Context())
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, 200, map[string]any{"cavities": ids})
}

func (app *application) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	cavityID := chi.URLParam(r, "cavityID")
	res, err := app.store.GetResult(r.Context(), cavityID)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if res == nil {
		writeJSON(w, 404, map[string]string{"error": "unknown cavity_id"})
		return
	}
	writeJSON(w, 200, res)
}

func (app *application) handleExportDocument(w http.ResponseWriter, r *http.Request) {
	cavityID := chi.URLParam(r, "cavityID")
	res, err := app.store.GetResult(r.Context(), cavityID)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if res == nil {
		writeJSON(w, 404, map[string]string{"error": "unknown cavity_id"})
		return
	}
	data, err := app.exporter.MeasurementsXLSX(res)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+cavityID+`.xlsx"`)
	w.Write(data)
}

// requireAPIKey returns 401 JSON unless the Bearer token matches the
// configured bcrypt hash.
func requireAPIKey(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or missing API key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --- Helpers ---

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
