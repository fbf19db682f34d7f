package render

import (
	"bytes"
	"strings"
	"testing"
	"tmap-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	seoul   = domain.POI{Name: "서울역", Coordinates: domain.Coordinates{Lon: 126.97, Lat: 37.55}}
	gangnam = domain.POI{Name: "강남역", Coordinates: domain.Coordinates{Lon: 127.03, Lat: 37.50}}
)

func TestBuildMapViewOneLineString(t *testing.T) {
	route := domain.RouteResult{
		TotalTimeSeconds: 2400,
		Segments: []domain.RouteSegment{
			{Type: domain.GeometryPoint, Coordinates: []domain.Coordinates{{Lon: 126.97, Lat: 37.55}}},
			{Type: domain.GeometryLineString, Coordinates: []domain.Coordinates{
				{Lon: 126.97, Lat: 37.55},
				{Lon: 127.00, Lat: 37.52},
				{Lon: 127.03, Lat: 37.50},
			}},
			{Type: domain.GeometryPoint, Coordinates: []domain.Coordinates{{Lon: 127.03, Lat: 37.50}}},
		},
	}

	v := BuildMapView(seoul, gangnam, route)

	require.Len(t, v.Polylines, 1)
	assert.Equal(t, []LatLng{
		{Lat: 37.55, Lng: 126.97},
		{Lat: 37.52, Lng: 127.00},
		{Lat: 37.50, Lng: 127.03},
	}, v.Polylines[0].Path)
	assert.Equal(t, "#FF0000", v.Polylines[0].StrokeColor)
	assert.Len(t, v.Markers, 2)
}

func TestBuildMapViewNoFeatures(t *testing.T) {
	v := BuildMapView(seoul, gangnam, domain.RouteResult{})

	assert.Empty(t, v.Polylines)
	require.Len(t, v.Markers, 2)
	assert.Equal(t, "서울역", v.Markers[0].Title)
	assert.Equal(t, LatLng{Lat: 37.55, Lng: 126.97}, v.Markers[0].Position)
	assert.Equal(t, "강남역", v.Markers[1].Title)
	assert.Equal(t, LatLng{Lat: 37.55, Lng: 126.97}, v.Center)
	assert.Equal(t, DefaultZoom, v.Zoom)
}

func TestNewRendererRequiresKey(t *testing.T) {
	_, err := NewRenderer("")
	assert.Error(t, err)
}

func TestRenderMapEscapesNames(t *testing.T) {
	r, err := NewRenderer("k")
	require.NoError(t, err)

	evil := domain.POI{Name: `</script><script>alert("x")</script>`, Coordinates: seoul.Coordinates}
	var buf bytes.Buffer
	require.NoError(t, r.RenderMap(&buf, BuildMapView(evil, gangnam, domain.RouteResult{})))

	out := buf.String()
	assert.Contains(t, out, "new Tmapv2.Map")
	assert.Contains(t, out, "appKey=k")
	assert.NotContains(t, out, `<script>alert(`)
	assert.Equal(t, 2, strings.Count(out, "</script>"), "only the sdk and inline script tags should close")
	assert.Contains(t, out, `"polylines":[]`)
}

func TestRenderPage(t *testing.T) {
	r, err := NewRenderer("k")
	require.NoError(t, err)

	doc, err := r.MapDocument(BuildMapView(seoul, gangnam, domain.RouteResult{}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, Page{
		Departure:   "서울역",
		Destination: "강남역",
		Summary:     []string{"출발지: 서울역", "도착지: 강남역", "걸리는 시간: 40분"},
		MapDocument: doc,
	}))

	out := buf.String()
	assert.Contains(t, out, `srcdoc="&lt;!DOCTYPE html&gt;`)
	assert.Contains(t, out, "<p>걸리는 시간: 40분</p>")
	assert.Contains(t, out, `value="서울역"`)
	assert.NotContains(t, out, `class="error"`)
}

func TestRenderPageErrorOnly(t *testing.T) {
	r, err := NewRenderer("k")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, Page{Errors: []string{"검색 결과가 없습니다."}}))

	out := buf.String()
	assert.Contains(t, out, `<p class="error">검색 결과가 없습니다.</p>`)
	assert.NotContains(t, out, "<iframe")
}
