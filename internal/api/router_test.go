package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"tmap-route-service/internal/adapters/tmap"
	"tmap-route-service/internal/api/dto"
	"tmap-route-service/internal/api/handlers"
	"tmap-route-service/internal/domain"
	"tmap-route-service/internal/render"
	"tmap-route-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	seoulStation   = domain.POI{Name: "서울역", Coordinates: domain.Coordinates{Lon: 126.97, Lat: 37.55}}
	gangnamStation = domain.POI{Name: "강남역", Coordinates: domain.Coordinates{Lon: 127.03, Lat: 37.50}}
)

func newTestRouter(t *testing.T, p *tmap.MockProvider) http.Handler {
	t.Helper()

	svc, err := services.NewRouteLookupService(p, nil, zap.NewNop())
	require.NoError(t, err)

	renderer, err := render.NewRenderer("k")
	require.NoError(t, err)

	return NewRouter(&handlers.RouteHandler{
		Service:  svc,
		Renderer: renderer,
		Log:      zap.NewNop(),
	}, zap.NewNop())
}

func newFixtureProvider() *tmap.MockProvider {
	p := tmap.NewMockProvider(
		map[string][]domain.POI{
			"서울역": {seoulStation},
			"강남역": {gangnamStation},
		},
		[]tmap.MockPair{{From: seoulStation.Coordinates, To: gangnamStation.Coordinates, Seconds: 2400}},
	)
	return p.WithRoute(seoulStation.Coordinates, gangnamStation.Coordinates, domain.RouteResult{
		Segments: []domain.RouteSegment{{
			Type:        domain.GeometryLineString,
			Coordinates: []domain.Coordinates{seoulStation.Coordinates, gangnamStation.Coordinates},
		}},
	})
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, newFixtureProvider()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")

	rec := httptest.NewRecorder()
	newTestRouter(t, newFixtureProvider()).ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestFormPage(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, newFixtureProvider()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "출발지 POI 키워드")
	assert.Contains(t, rec.Body.String(), `action="/route"`)
}

func TestSubmitRendersMapAndSummary(t *testing.T) {
	form := url.Values{"departure": {"서울역"}, "destination": {"강남역"}}
	req := httptest.NewRequest(http.MethodPost, "/route", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	newTestRouter(t, newFixtureProvider()).ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "<p>출발지: 서울역</p>")
	assert.Contains(t, body, "<p>도착지: 강남역</p>")
	assert.Contains(t, body, "<p>걸리는 시간: 40분</p>")
	assert.Contains(t, body, "<iframe")
}

func TestSubmitNoMatch(t *testing.T) {
	p := newFixtureProvider()
	form := url.Values{"departure": {"서울역"}, "destination": {"없는장소"}}
	req := httptest.NewRequest(http.MethodPost, "/route", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	newTestRouter(t, p).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "검색 결과가 없습니다")
	assert.NotContains(t, rec.Body.String(), "<iframe")
	assert.NotContains(t, p.Calls, "TotalTime")
}

func TestSubmitValidation(t *testing.T) {
	p := newFixtureProvider()
	form := url.Values{"departure": {"  "}, "destination": {"강남역"}}
	req := httptest.NewRequest(http.MethodPost, "/route", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	newTestRouter(t, p).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "departure is required")
	assert.Empty(t, p.Calls)
}

func TestAPILookup(t *testing.T) {
	rec := httptest.NewRecorder()
	target := "/api/route?" + url.Values{"departure": {"서울역"}, "destination": {"강남역"}}.Encode()
	newTestRouter(t, newFixtureProvider()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.RouteLookupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, dto.POIResponse{Name: "서울역", Lat: 37.55, Lon: 126.97}, res.Departure)
	require.NotNil(t, res.TotalTimeMinutes)
	assert.Equal(t, 40, *res.TotalTimeMinutes)
	assert.Equal(t, 2400, *res.TotalTimeSeconds)
	assert.Equal(t, render.LatLng{Lat: 37.55, Lng: 126.97}, res.Map.Center)
	assert.Len(t, res.Map.Polylines, 1)
	assert.Len(t, res.Map.Markers, 2)
	assert.Empty(t, res.Errors)
}

func TestAPILookupErrors(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(p *tmap.MockProvider)
		query  url.Values
		status int
	}{
		{
			name:   "missing destination",
			query:  url.Values{"departure": {"서울역"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "no match",
			query:  url.Values{"departure": {"없는장소"}, "destination": {"강남역"}},
			status: http.StatusNotFound,
		},
		{
			name: "upstream failure",
			setup: func(p *tmap.MockProvider) {
				p.SearchErr = &domain.UpstreamError{Op: "tmap.SearchPOIs", StatusCode: 503}
			},
			query:  url.Values{"departure": {"서울역"}, "destination": {"강남역"}},
			status: http.StatusBadGateway,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newFixtureProvider()
			if tc.setup != nil {
				tc.setup(p)
			}

			rec := httptest.NewRecorder()
			newTestRouter(t, p).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/route?"+tc.query.Encode(), nil))

			assert.Equal(t, tc.status, rec.Code)

			var res dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestAPILookupPartialTravelTime(t *testing.T) {
	p := newFixtureProvider()
	p.TimeErr = &domain.UpstreamError{Op: "tmap.TotalTime", StatusCode: 500}

	rec := httptest.NewRecorder()
	target := "/api/route?" + url.Values{"departure": {"서울역"}, "destination": {"강남역"}}.Encode()
	newTestRouter(t, p).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.RouteLookupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Nil(t, res.TotalTimeMinutes)
	assert.Len(t, res.Map.Polylines, 1)
}

func TestMapDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	target := "/map?" + url.Values{"departure": {"서울역"}, "destination": {"강남역"}}.Encode()
	newTestRouter(t, newFixtureProvider()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "new Tmapv2.Map")
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, newFixtureProvider()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/route", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
