package tmap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"tmap-route-service/internal/domain"
)

// Upper bound on how much of an error body is kept for diagnostics.
const maxErrorBody = 512

func (p *TmapProvider) newRequest(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	payload any,
) (*http.Request, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("version", "1")
	query.Set("appKey", p.apiKey)

	endpoint := p.baseURL + path + "?" + query.Encode()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req and converts transport failures and non-2xx statuses into
// *domain.UpstreamError. The caller owns the returned body.
func (p *TmapProvider) do(op string, req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Op: op, Err: p.redact(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &domain.UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	return resp, nil
}

// redact strips the api key from url errors so it never reaches logs or the UI.
func (p *TmapProvider) redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{
			Op:  ue.Op,
			URL: strings.ReplaceAll(ue.URL, url.QueryEscape(p.apiKey), "REDACTED"),
			Err: ue.Err,
		}
	}
	return err
}

// decodeJSON reads the whole body into v. It reports false when the body is empty.
func decodeJSON(op string, r io.Reader, v any) (bool, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return false, &domain.UpstreamError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(b, v); err != nil {
		return true, &domain.MalformedResponseError{Op: op, Err: err}
	}

	return true, nil
}
