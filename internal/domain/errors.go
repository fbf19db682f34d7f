package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUpstream          = errors.New("upstream provider error")
	ErrNoMatch           = errors.New("no matching poi")
	ErrNoRoute           = errors.New("no route found")
	ErrMalformedResponse = errors.New("malformed provider response")
)

// UpstreamError reports a network failure or a non-success status from the provider.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: provider request failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// NoMatchError is returned when a keyword search yields zero results.
type NoMatchError struct {
	Keyword string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no poi found for keyword %q", e.Keyword)
}

func (e *NoMatchError) Is(target error) bool { return target == ErrNoMatch }

// NoRouteError is returned when a routing response has an empty feature list.
type NoRouteError struct {
	Op string
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("%s: provider returned no route features", e.Op)
}

func (e *NoRouteError) Is(target error) bool { return target == ErrNoRoute }

// MalformedResponseError is returned when a response body does not have the expected shape.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// UserMessage turns an error from the lookup pipeline into a message fit for the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var noMatch *NoMatchError
	switch {
	case errors.As(err, &noMatch):
		return fmt.Sprintf("'%s'에 대한 검색 결과가 없습니다.", noMatch.Keyword)
	case errors.Is(err, ErrNoRoute):
		return "경로를 찾을 수 없습니다."
	case errors.Is(err, ErrMalformedResponse):
		return "지도 서비스 응답을 해석할 수 없습니다."
	case errors.Is(err, ErrUpstream):
		return "지도 서비스 요청에 실패했습니다. 잠시 후 다시 시도해 주세요."
	default:
		return err.Error()
	}
}
