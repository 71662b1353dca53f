package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	pserrors "github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/observability"
	"github.com/panelstitch/panelstitch/pkg/pipeline"
	"github.com/panelstitch/panelstitch/pkg/publisher"
)

// serveCommand creates the serve command running the HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		dir     string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		Long: `Run the HTTP preview server.

The server composes panels from a local directory on demand, so a browser or
editor plugin can preview the figure while the panels are being refined.

Endpoints:
  GET  /healthz         liveness check
  GET  /api/publishers  the publisher preset catalog as JSON
  POST /api/compose     compose options as JSON, returns the figure

Panel paths in compose requests are resolved relative to --dir and may not
escape it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Cache.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServeHandler(runner, dir),
				ReadHeaderTimeout: 5 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return cmd.Context() },
			}

			c.Logger.Info("preview server listening", "addr", addr, "dir", dir)
			printInfo("Serving on http://%s", addr)

			go func() {
				<-cmd.Context().Done()
				srv.Close()
			}()

			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8787", "listen address")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory panel paths are resolved against")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// composeResponse is the envelope returned by POST /api/compose.
type composeResponse struct {
	SVG      string             `json:"svg,omitempty"`
	Layout   json.RawMessage    `json:"layout,omitempty"`
	Warnings []pipeline.Warning `json:"warnings"`
	Panels   int                `json:"panels"`
}

// errorResponse is the envelope returned for request failures.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newServeHandler builds the preview server router.
func newServeHandler(runner *pipeline.Runner, dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hooksMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/publishers", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, presetMap(runner.Presets))
	})

	r.Post("/api/compose", func(w http.ResponseWriter, req *http.Request) {
		var opts pipeline.Options
		if err := json.NewDecoder(req.Body).Decode(&opts); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code:    string(pserrors.ErrCodeMalformedDocument),
				Message: "invalid request body: " + err.Error(),
			})
			return
		}

		resolved, err := resolveInputs(dir, opts.Inputs)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code:    string(pserrors.ErrCodeInvalidConfig),
				Message: err.Error(),
			})
			return
		}
		opts.Inputs = resolved
		opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatJSON}

		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			writeJSON(w, statusFor(err), errorResponse{
				Code:    string(pserrors.GetCode(err)),
				Message: pserrors.UserMessage(err),
			})
			return
		}

		resp := composeResponse{
			SVG:      string(result.Artifacts[pipeline.FormatSVG]),
			Layout:   json.RawMessage(result.Artifacts[pipeline.FormatJSON]),
			Warnings: result.Warnings,
			Panels:   result.Stats.PanelCount,
		}
		if resp.Warnings == nil {
			resp.Warnings = []pipeline.Warning{}
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

// hooksMiddleware reports requests and responses to the observability registry.
func hooksMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		observability.HTTP().OnRequest(req.Context(), req.Method, req.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		observability.HTTP().OnResponse(req.Context(), req.Method, req.URL.Path, ww.Status(), time.Since(start))
	})
}

// resolveInputs joins request paths onto the serve directory, rejecting paths
// that would escape it.
func resolveInputs(dir string, inputs []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if filepath.IsAbs(in) || !filepath.IsLocal(in) {
			return nil, fmt.Errorf("input %q is outside the serve directory", in)
		}
		out = append(out, filepath.Join(dir, in))
	}
	return out, nil
}

// presetMap flattens the catalog into publisher → layout → size.
func presetMap(catalog *publisher.Catalog) map[string]map[string]publisher.Size {
	out := make(map[string]map[string]publisher.Size)
	for _, pub := range catalog.Publishers() {
		layouts := make(map[string]publisher.Size)
		for _, layout := range catalog.Layouts(pub) {
			if size, err := catalog.Lookup(pub, layout); err == nil {
				layouts[layout] = size
			}
		}
		out[pub] = layouts
	}
	return out
}

// statusFor maps pipeline error codes to HTTP statuses.
func statusFor(err error) int {
	switch pserrors.GetCode(err) {
	case pserrors.ErrCodeFileNotFound, pserrors.ErrCodePanelNotFound:
		return http.StatusNotFound
	case pserrors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
