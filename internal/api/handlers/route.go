package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"tmap-route-service/internal/api/dto"
	"tmap-route-service/internal/domain"
	"tmap-route-service/internal/platform/obs"
	"tmap-route-service/internal/render"
	"tmap-route-service/internal/services"

	"go.uber.org/zap"
)

// RouteLooker runs the lookup pipeline for one pair of keywords.
type RouteLooker interface {
	Lookup(ctx context.Context, departureKeyword, destinationKeyword string) (*services.LookupResult, error)
}

// RouteHandler serves the search form, the rendered result page, the JSON
// API and the standalone map document. All four share the same pipeline.
type RouteHandler struct {
	Service  RouteLooker
	Renderer *render.Renderer
	Log      *zap.Logger
}

// Form renders the empty search page.
func (h *RouteHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, http.StatusOK, render.Page{})
}

// Submit handles the form post and renders the map with its summary.
func (h *RouteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writePage(w, r, http.StatusBadRequest, render.Page{Errors: []string{"invalid form body"}})
		return
	}

	req := dto.RouteRequest{
		Departure:   r.PostFormValue("departure"),
		Destination: r.PostFormValue("destination"),
	}
	page := render.Page{Departure: req.Departure, Destination: req.Destination}

	if msgs := validateRouteRequest(&req); len(msgs) > 0 {
		page.Errors = msgs
		h.writePage(w, r, http.StatusBadRequest, page)
		return
	}

	res, err := h.Service.Lookup(r.Context(), req.Departure, req.Destination)
	if err != nil {
		h.logLookupError(r, err)
		page.Errors = []string{domain.UserMessage(err)}
		h.writePage(w, r, statusFor(err), page)
		return
	}

	doc, err := h.Renderer.MapDocument(res.Map)
	if err != nil {
		h.Log.Error("render map failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		page.Errors = []string{"지도를 표시할 수 없습니다."}
	}

	page.MapDocument = doc
	page.Summary = res.Summary()
	page.Errors = append(page.Errors, res.Errors()...)
	h.writePage(w, r, http.StatusOK, page)
}

// Lookup is the JSON form of Submit: GET /api/route?departure=&destination=.
func (h *RouteHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	req := dto.RouteRequest{
		Departure:   r.URL.Query().Get("departure"),
		Destination: r.URL.Query().Get("destination"),
	}
	if msgs := validateRouteRequest(&req); len(msgs) > 0 {
		writeError(h.Log, w, r, http.StatusBadRequest, "validation failed", msgs...)
		return
	}

	res, err := h.Service.Lookup(r.Context(), req.Departure, req.Destination)
	if err != nil {
		h.logLookupError(r, err)
		writeError(h.Log, w, r, statusFor(err), domain.UserMessage(err))
		return
	}

	out := dto.RouteLookupResponse{
		Departure:   toPOIResponse(res.Departure),
		Destination: toPOIResponse(res.Destination),
		Summary:     res.Summary(),
		Map:         res.Map,
		Errors:      res.Errors(),
	}
	if res.TravelTimeErr == nil {
		secs, mins := res.TotalTimeSeconds, res.Minutes()
		out.TotalTimeSeconds = &secs
		out.TotalTimeMinutes = &mins
	}

	writeJSON(h.Log, w, r, http.StatusOK, out)
}

// Map writes only the map document: GET /map?departure=&destination=.
func (h *RouteHandler) Map(w http.ResponseWriter, r *http.Request) {
	req := dto.RouteRequest{
		Departure:   r.URL.Query().Get("departure"),
		Destination: r.URL.Query().Get("destination"),
	}
	if msgs := validateRouteRequest(&req); len(msgs) > 0 {
		http.Error(w, msgs[0], http.StatusBadRequest)
		return
	}

	res, err := h.Service.Lookup(r.Context(), req.Departure, req.Destination)
	if err != nil {
		h.logLookupError(r, err)
		http.Error(w, domain.UserMessage(err), statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := h.Renderer.RenderMap(&buf, res.Map); err != nil {
		h.Log.Error("render map failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// Render into a buffer first so a template failure can still become a 500.
func (h *RouteHandler) writePage(w http.ResponseWriter, r *http.Request, status int, p render.Page) {
	var buf bytes.Buffer
	if err := h.Renderer.RenderPage(&buf, p); err != nil {
		h.Log.Error("render page failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *RouteHandler) logLookupError(r *http.Request, err error) {
	h.Log.Warn("lookup failed",
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.Int("status", statusFor(err)),
		zap.Error(err),
	)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyKeyword):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoMatch), errors.Is(err, domain.ErrNoRoute):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func toPOIResponse(p domain.POI) dto.POIResponse {
	return dto.POIResponse{Name: p.Name, Lat: p.Latitude(), Lon: p.Longitude()}
}
