package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPAnalyzer_Analyze(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var input AnalysisInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if input.ImageURL != "https://img.example.com/a.jpg" {
			t.Errorf("unexpected image url: %q", input.ImageURL)
		}
		if input.Attributes.Age != 34 {
			t.Errorf("unexpected age: %d", input.Attributes.Age)
		}

		json.NewEncoder(w).Encode(StructuredReport{
			Conditions: []Condition{{Name: "psoriasis", Likelihood: 0.61}},
			Summary:    "Plaque psoriasis is the most likely match.",
			Language:   "en",
		})
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL, "secret-token", 0)
	report, err := a.Analyze(context.Background(), AnalysisInput{
		ImageURL:   "https://img.example.com/a.jpg",
		Attributes: PatientAttributes{Age: 34, Sex: "f"},
		Symptoms:   "scaly patches on elbows",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer token header, got %q", gotAuth)
	}
	if len(report.Conditions) != 1 || report.Conditions[0].Name != "psoriasis" {
		t.Errorf("unexpected conditions: %+v", report.Conditions)
	}
	if report.Summary == "" {
		t.Error("expected a summary")
	}
}

func TestHTTPAnalyzer_MissingImage(t *testing.T) {
	a := NewHTTPAnalyzer("http://unused", "", 0)
	_, err := a.Analyze(context.Background(), AnalysisInput{})
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Errorf("expected ErrAnalysisFailed, got %v", err)
	}
}

func TestHTTPAnalyzer_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL, "", 0)
	_, err := a.Analyze(context.Background(), AnalysisInput{ImageURL: "https://img.example.com/a.jpg"})
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Errorf("expected ErrAnalysisFailed, got %v", err)
	}
}

func TestHTTPAnalyzer_EmptyReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(StructuredReport{})
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL, "", 0)
	_, err := a.Analyze(context.Background(), AnalysisInput{ImageURL: "https://img.example.com/a.jpg"})
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Errorf("expected ErrAnalysisFailed for empty report, got %v", err)
	}
}

func TestHTTPAnalyzer_Unreachable(t *testing.T) {
	a := NewHTTPAnalyzer("http://127.0.0.1:1", "", 0)
	_, err := a.Analyze(context.Background(), AnalysisInput{ImageURL: "https://img.example.com/a.jpg"})
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Errorf("expected ErrAnalysisFailed, got %v", err)
	}
}
