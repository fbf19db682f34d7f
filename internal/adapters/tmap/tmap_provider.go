package tmap

import (
	"errors"
	"net/http"
	"strings"
	"tmap-route-service/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// TmapProvider implements the POI search, travel time and route prediction
// ports against the SK Open API (Tmap).
//
// Every call is a single best-effort request: there is no retry and no caching.
// The provider is safe for concurrent use.
type TmapProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	log     *zap.Logger
}

func NewTmapProvider(cfg *config.Config, log *zap.Logger) (*TmapProvider, error) {
	if cfg == nil {
		return nil, errors.New("new tmap provider: config is nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("new tmap provider: api key is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	provider := &TmapProvider{
		session: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		log:     log.Named("tmap"),
	}

	return provider, nil
}
