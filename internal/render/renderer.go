package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
)

const (
	sdkBaseURL = "https://apis.openapi.sk.com/tmap/jsv2"
	MapHeight  = 600
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data for the search form and its results.
type Page struct {
	Departure   string
	Destination string
	Errors      []string
	Summary     []string
	MapDocument string
	MapHeight   int
}

// Renderer writes map documents and the lookup page.
// html/template escapes every value for its context, so POI names are
// treated as data wherever they land.
type Renderer struct {
	sdkURL string
	tmpl   *template.Template
}

func NewRenderer(apiKey string) (*Renderer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("new renderer: api key is empty")
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("new renderer: parse templates: %w", err)
	}

	q := url.Values{}
	q.Set("version", "1")
	q.Set("appKey", apiKey)

	return &Renderer{
		sdkURL: sdkBaseURL + "?" + q.Encode(),
		tmpl:   tmpl,
	}, nil
}

// RenderMap writes a self-contained HTML document showing v.
func (r *Renderer) RenderMap(w io.Writer, v MapView) error {
	data := struct {
		SDKURL string
		Height int
		View   MapView
	}{
		SDKURL: r.sdkURL,
		Height: MapHeight,
		View:   v,
	}

	if err := r.tmpl.ExecuteTemplate(w, "map.html", data); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

// MapDocument returns the map document as a string, ready for an iframe srcdoc.
func (r *Renderer) MapDocument(v MapView) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderMap(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) RenderPage(w io.Writer, p Page) error {
	if p.MapHeight == 0 {
		p.MapHeight = MapHeight
	}
	if err := r.tmpl.ExecuteTemplate(w, "page.html", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
