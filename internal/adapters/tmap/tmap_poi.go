package tmap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"tmap-route-service/internal/domain"
	"tmap-route-service/internal/platform/obs"

	"go.uber.org/zap"
)

const poiSearchPath = "/tmap/pois"

// flexFloat decodes coordinates that Tmap sends either as JSON numbers or as quoted strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return errors.New("empty coordinate")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse coordinate %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

type poiItem struct {
	Name    string     `json:"name"`
	NoorLat *flexFloat `json:"noorLat"`
	NoorLon *flexFloat `json:"noorLon"`
}

type poiResponse struct {
	SearchPoiInfo *struct {
		Pois struct {
			Poi []poiItem `json:"poi"`
		} `json:"pois"`
	} `json:"searchPoiInfo"`
}

// SearchPOIs runs a keyword search against /tmap/pois and returns the
// candidates in provider order. Tmap answers "nothing found" with 204 No Content,
// which is reported as an empty slice.
func (p *TmapProvider) SearchPOIs(ctx context.Context, keyword string) (_ []domain.POI, err error) {
	const op = "tmap.SearchPOIs"
	defer obs.Time(ctx, p.log, op)(&err)

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("search pois: keyword must be non-empty")
	}

	q := url.Values{}
	q.Set("searchKeyword", keyword)

	req, err := p.newRequest(ctx, http.MethodGet, poiSearchPath, q, nil)
	if err != nil {
		return nil, fmt.Errorf("search pois request: %w", err)
	}

	resp, err := p.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return []domain.POI{}, nil
	}

	var decoded poiResponse
	ok, err := decodeJSON(op, resp.Body, &decoded)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.POI{}, nil
	}

	if decoded.SearchPoiInfo == nil {
		return nil, &domain.MalformedResponseError{Op: op, Err: errors.New("missing searchPoiInfo")}
	}

	items := decoded.SearchPoiInfo.Pois.Poi
	out := make([]domain.POI, 0, len(items))
	for i, item := range items {
		if item.NoorLat == nil || item.NoorLon == nil {
			return nil, &domain.MalformedResponseError{Op: op, Err: fmt.Errorf("poi #%d: missing coordinates", i)}
		}
		poi, err := domain.NewPOI(item.Name, float64(*item.NoorLat), float64(*item.NoorLon))
		if err != nil {
			return nil, &domain.MalformedResponseError{Op: op, Err: fmt.Errorf("poi #%d: %w", i, err)}
		}
		out = append(out, poi)
	}

	p.log.Debug("poi search",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("keyword", keyword),
		zap.Int("results", len(out)),
	)

	return out, nil
}
