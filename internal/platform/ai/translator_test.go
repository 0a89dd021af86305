package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPTranslator_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Lang != "hi" {
			t.Errorf("expected lang hi, got %q", req.Lang)
		}

		json.NewEncoder(w).Encode(StructuredReport{
			Summary:        "अग्रबाहु पर हल्का एक्जिमा।",
			Recommendation: "एक सप्ताह तक हाइड्रोकॉर्टिसोन क्रीम।",
		})
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(srv.URL, "en", 0)
	out, err := tr.Translate(context.Background(), &StructuredReport{
		Summary:  "Mild eczema on the forearm.",
		Language: "en",
	}, "hi")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	if out.Language != "hi" {
		t.Errorf("expected language hi, got %q", out.Language)
	}
	if out.Summary == "Mild eczema on the forearm." {
		t.Error("expected translated summary")
	}
}

func TestHTTPTranslator_SourceLanguageIdentity(t *testing.T) {
	// No server: an identity translation must not hit the network.
	tr := NewHTTPTranslator("http://127.0.0.1:1", "en", 0)

	original := &StructuredReport{Summary: "unchanged", Language: "en"}

	for _, lang := range []string{"", "en"} {
		out, err := tr.Translate(context.Background(), original, lang)
		if err != nil {
			t.Fatalf("Translate(%q): %v", lang, err)
		}
		if out != original {
			t.Errorf("Translate(%q): expected the original report back", lang)
		}
	}
}

func TestHTTPTranslator_NilReport(t *testing.T) {
	tr := NewHTTPTranslator("http://unused", "en", 0)
	_, err := tr.Translate(context.Background(), nil, "hi")
	if !errors.Is(err, ErrTranslationFailed) {
		t.Errorf("expected ErrTranslationFailed, got %v", err)
	}
}

func TestHTTPTranslator_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported language", http.StatusBadRequest)
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(srv.URL, "en", 0)
	_, err := tr.Translate(context.Background(), &StructuredReport{Summary: "x"}, "xx")
	if !errors.Is(err, ErrTranslationFailed) {
		t.Errorf("expected ErrTranslationFailed, got %v", err)
	}
}

func TestHTTPTranslator_SourceLanguage(t *testing.T) {
	tr := NewHTTPTranslator("http://unused", "", 0)
	if tr.SourceLanguage() != "en" {
		t.Errorf("expected default source language en, got %q", tr.SourceLanguage())
	}
}
