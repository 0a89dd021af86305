// Package ai provides clients for the external analysis and translation
// services. Both are treated as opaque collaborators: slow, fallible, and
// never a source of default content. A failed call is always surfaced to
// the caller as an error.
package ai

// PatientAttributes is the structured patient context sent with an
// analysis request.
type PatientAttributes struct {
	Age      int    `json:"age"`
	Sex      string `json:"sex"`
	SkinType string `json:"skin_type,omitempty"`
}

// AnalysisInput is the payload for a single analysis request.
type AnalysisInput struct {
	ImageURL   string            `json:"image_url"`
	Attributes PatientAttributes `json:"attributes"`
	Symptoms   string            `json:"symptoms"`
}

// Condition is one candidate condition returned by the analysis service.
type Condition struct {
	Name       string  `json:"name"`
	Likelihood float64 `json:"likelihood"`
}

// StructuredReport is the structured output of the analysis service. Once
// stored on a report it is immutable; doctor edits land in a separate
// custom report.
type StructuredReport struct {
	Conditions     []Condition `json:"conditions"`
	Summary        string      `json:"summary"`
	HomeRemedies   []string    `json:"home_remedies,omitempty"`
	Recommendation string      `json:"recommendation,omitempty"`
	ConsultDoctor  bool        `json:"consult_doctor"`
	Language       string      `json:"language,omitempty"`
}
