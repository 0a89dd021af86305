package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrAnalysisFailed indicates the analysis service could not produce a
// report. Callers must not create any stored state when this is returned.
var ErrAnalysisFailed = errors.New("analysis failed")

// Analyzer produces a structured report from an image and patient context.
type Analyzer interface {
	Analyze(ctx context.Context, input AnalysisInput) (*StructuredReport, error)
}

// HTTPAnalyzer calls a remote analysis service over HTTP.
type HTTPAnalyzer struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTPAnalyzer creates an analyzer client for the given endpoint.
// A zero timeout defaults to 60 seconds; analysis calls are slow.
func NewHTTPAnalyzer(url, token string, timeout time.Duration) *HTTPAnalyzer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPAnalyzer{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, input AnalysisInput) (*StructuredReport, error) {
	if input.ImageURL == "" {
		return nil, fmt.Errorf("%w: image url is required", ErrAnalysisFailed)
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrAnalysisFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrAnalysisFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: service returned status %d", ErrAnalysisFailed, resp.StatusCode)
	}

	var report StructuredReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrAnalysisFailed, err)
	}
	if report.Summary == "" && len(report.Conditions) == 0 {
		return nil, fmt.Errorf("%w: service returned an empty report", ErrAnalysisFailed)
	}
	return &report, nil
}
