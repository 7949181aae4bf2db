package in

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"launchdash/internal/modules/dashboard/dto"
	dashboardin "launchdash/internal/modules/dashboard/port/in"
	apperrors "launchdash/internal/platform/errors"
	"launchdash/internal/platform/logging"
)

// HTTPHandler serves the dashboard page and its JSON and chart endpoints.
// Requests share nothing but the read-only dataset behind the usecase.
type HTTPHandler struct {
	usecase      dashboardin.Usecase
	logger       *zap.Logger
	requestLevel zapcore.Level
	width        int
	height       int
}

func NewHTTPHandler(usecase dashboardin.Usecase, logger *zap.Logger, width, height int) *HTTPHandler {
	return &HTTPHandler{
		usecase:      usecase,
		logger:       logging.OrNop(logger).Named("http"),
		requestLevel: zapcore.DebugLevel,
		width:        width,
		height:       height,
	}
}

// LogRequestsAt sets the level of the per-request access log line, which
// defaults to debug.
func (h *HTTPHandler) LogRequestsAt(level zapcore.Level) *HTTPHandler {
	h.requestLevel = level
	return h
}

type renderedOutput struct {
	Figure dto.FigureOutput `json:"figure"`
	SVG    string           `json:"svg"`
}

type updateResponse struct {
	Outputs map[string]renderedOutput `json:"outputs"`
}

type pageConfig struct {
	Dropdown string `json:"dropdown"`
	Slider   string `json:"slider"`
	Pie      string `json:"pie"`
	Scatter  string `json:"scatter"`
}

type pageData struct {
	Layout        dto.LayoutOutput
	State         dto.StateInput
	PieSVG        template.HTML
	ScatterSVG    template.HTML
	ScatterPoints []dto.PointOutput
	Config        pageConfig
}

// Routes returns the mux wrapped in request logging.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.page)
	mux.HandleFunc("GET /static/app.js", h.script)
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /api/layout", h.layout)
	mux.HandleFunc("POST /api/update", h.update)
	mux.HandleFunc("GET /api/figures/{kind}", h.figure)
	mux.HandleFunc("GET /charts/{file}", h.chart)
	return h.logRequests(mux)
}

func (h *HTTPHandler) page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	layout, err := h.usecase.Layout(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}
	state := dto.StateInput{
		Site:    layout.Dropdown.Value,
		Payload: [2]float64{float64(layout.Slider.Value[0]), float64(layout.Slider.Value[1])},
	}
	rendered, err := h.dispatch(ctx, dto.UpdateInput{State: state})
	if err != nil {
		h.writeError(w, err)
		return
	}
	data := pageData{
		Layout:        layout,
		State:         state,
		PieSVG:        template.HTML(rendered.Outputs[layout.PieID].SVG),
		ScatterSVG:    template.HTML(rendered.Outputs[layout.ScatterID].SVG),
		ScatterPoints: rendered.Outputs[layout.ScatterID].Figure.Points,
		Config: pageConfig{
			Dropdown: layout.Dropdown.ID,
			Slider:   layout.Slider.ID,
			Pie:      layout.PieID,
			Scatter:  layout.ScatterID,
		},
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

func (h *HTTPHandler) script(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, _ = w.Write(appScript())
}

func (h *HTTPHandler) health(w http.ResponseWriter, r *http.Request) {
	if _, err := h.usecase.Layout(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) layout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.usecase.Layout(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (h *HTTPHandler) update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&input); err != nil {
		h.writeError(w, fmt.Errorf("%w: decode update: %v", apperrors.ErrInvalidInput, err))
		return
	}
	out, err := h.dispatch(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) dispatch(ctx context.Context, input dto.UpdateInput) (updateResponse, error) {
	updated, err := h.usecase.Update(ctx, input)
	if err != nil {
		return updateResponse{}, err
	}
	out := updateResponse{Outputs: make(map[string]renderedOutput, len(updated.Outputs))}
	for id, fig := range updated.Outputs {
		svg, err := h.usecase.Render(ctx, dto.RenderInput{Figure: fig, Format: dto.FormatSVG, Width: h.width, Height: h.height})
		if err != nil {
			return updateResponse{}, err
		}
		out.Outputs[id] = renderedOutput{Figure: fig, SVG: string(svg.Data)}
	}
	return out, nil
}

func (h *HTTPHandler) figure(w http.ResponseWriter, r *http.Request) {
	fig, err := h.figureFor(r, r.PathValue("kind"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

func (h *HTTPHandler) chart(w http.ResponseWriter, r *http.Request) {
	kind, format, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok {
		h.writeError(w, fmt.Errorf("%w: chart %q", apperrors.ErrNotFound, r.PathValue("file")))
		return
	}
	fig, err := h.figureFor(r, kind)
	if err != nil {
		h.writeError(w, err)
		return
	}
	width, err := intQuery(r, "width", h.width)
	if err != nil {
		h.writeError(w, err)
		return
	}
	height, err := intQuery(r, "height", h.height)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out, err := h.usecase.Render(r.Context(), dto.RenderInput{Figure: fig, Format: format, Width: width, Height: height})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	_, _ = w.Write(out.Data)
}

func (h *HTTPHandler) figureFor(r *http.Request, kind string) (dto.FigureOutput, error) {
	site := r.URL.Query().Get("site")
	switch kind {
	case dto.KindPie:
		return h.usecase.Pie(r.Context(), site)
	case dto.KindScatter:
		layout, err := h.usecase.Layout(r.Context())
		if err != nil {
			return dto.FigureOutput{}, err
		}
		low, err := floatQuery(r, "low", float64(layout.Slider.Value[0]))
		if err != nil {
			return dto.FigureOutput{}, err
		}
		high, err := floatQuery(r, "high", float64(layout.Slider.Value[1]))
		if err != nil {
			return dto.FigureOutput{}, err
		}
		return h.usecase.Scatter(r.Context(), dto.ScatterInput{Site: site, Low: low, High: high})
	default:
		return dto.FigureOutput{}, fmt.Errorf("%w: figure %q", apperrors.ErrNotFound, kind)
	}
}

func floatQuery(r *http.Request, key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a finite number", apperrors.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func intQuery(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a positive integer", apperrors.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrNotLoaded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *HTTPHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if ce := h.logger.Check(h.requestLevel, "request"); ce != nil {
			ce.Write(
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("took", time.Since(started)),
			)
		}
	})
}
