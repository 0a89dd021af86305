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

// ErrTranslationFailed indicates the translation service failed. The
// previously displayed content remains valid; nothing stored is affected.
var ErrTranslationFailed = errors.New("translation failed")

// Translator renders a structured report in a target language. Translation
// is display-only and never mutates stored report content.
type Translator interface {
	Translate(ctx context.Context, report *StructuredReport, lang string) (*StructuredReport, error)
}

// HTTPTranslator calls a remote translation service over HTTP. When the
// target language equals the source language the original report is
// returned as-is without a network round trip.
type HTTPTranslator struct {
	url        string
	sourceLang string
	client     *http.Client
}

// NewHTTPTranslator creates a translator client. sourceLang is the
// canonical language reports are produced in (e.g. "en").
func NewHTTPTranslator(url, sourceLang string, timeout time.Duration) *HTTPTranslator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if sourceLang == "" {
		sourceLang = "en"
	}
	return &HTTPTranslator{
		url:        url,
		sourceLang: sourceLang,
		client:     &http.Client{Timeout: timeout},
	}
}

// SourceLanguage returns the canonical source language code.
func (t *HTTPTranslator) SourceLanguage() string { return t.sourceLang }

type translateRequest struct {
	Report *StructuredReport `json:"report"`
	Lang   string            `json:"lang"`
}

func (t *HTTPTranslator) Translate(ctx context.Context, report *StructuredReport, lang string) (*StructuredReport, error) {
	if report == nil {
		return nil, fmt.Errorf("%w: nil report", ErrTranslationFailed)
	}
	if lang == "" || lang == t.sourceLang {
		return report, nil
	}

	body, err := json.Marshal(translateRequest{Report: report, Lang: lang})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrTranslationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTranslationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: service returned status %d", ErrTranslationFailed, resp.StatusCode)
	}

	var translated StructuredReport
	if err := json.NewDecoder(resp.Body).Decode(&translated); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrTranslationFailed, err)
	}
	translated.Language = lang
	return &translated, nil
}
