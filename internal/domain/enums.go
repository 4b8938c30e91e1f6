package domain

import "strings"

// SourceKind represents the supported mission input formats.
type SourceKind string

const (
	SourceKindPDF  SourceKind = "pdf"
	SourceKindCSV  SourceKind = "csv"
	SourceKindText SourceKind = "text"
)

// AllowedSourceKinds maps SourceKind to its MIME content type.
var AllowedSourceKinds = map[SourceKind]string{
	SourceKindPDF:  "application/pdf",
	SourceKindCSV:  "text/csv",
	SourceKindText: "text/plain",
}

// AllowedExtensions maps file extensions (without dot) to SourceKind.
var AllowedExtensions = map[string]SourceKind{
	"pdf": SourceKindPDF,
	"csv": SourceKindCSV,
	"txt": SourceKindText,
}

// ParseSourceKind normalizes a user-supplied kind string.
func ParseSourceKind(s string) (SourceKind, bool) {
	kind := SourceKind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := AllowedSourceKinds[kind]
	return kind, ok
}

// MissionStatus represents the mission processing lifecycle.
type MissionStatus string

const (
	MissionStatusPending   MissionStatus = "pending"
	MissionStatusIngested  MissionStatus = "ingested"
	MissionStatusAnalyzing MissionStatus = "analyzing"
	MissionStatusAnalyzed  MissionStatus = "analyzed"
	MissionStatusError     MissionStatus = "error"
)

// statusTransitions defines the allowed forward transitions. A mission never
// regresses except into error.
var statusTransitions = map[MissionStatus][]MissionStatus{
	MissionStatusPending:   {MissionStatusIngested, MissionStatusError},
	MissionStatusIngested:  {MissionStatusAnalyzing, MissionStatusError},
	MissionStatusAnalyzing: {MissionStatusAnalyzed, MissionStatusError},
	MissionStatusAnalyzed:  {MissionStatusAnalyzing},
	MissionStatusError:     {},
}

// Valid reports whether the status is one of the known lifecycle values.
func (s MissionStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether a mission may move from one status to another.
func (s MissionStatus) CanTransition(to MissionStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionSources returns, in a fixed order, the statuses a mission may
// hold immediately before moving to the given status. Status writes guard on
// this set so a transition the lifecycle forbids never lands.
func TransitionSources(to MissionStatus) []MissionStatus {
	all := []MissionStatus{
		MissionStatusPending, MissionStatusIngested, MissionStatusAnalyzing,
		MissionStatusAnalyzed, MissionStatusError,
	}
	sources := []MissionStatus{}
	for _, from := range all {
		if from.CanTransition(to) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Analyzable reports whether a mission in this status may be (re-)analyzed.
func (s MissionStatus) Analyzable() bool {
	return s == MissionStatusIngested || s == MissionStatusAnalyzed
}

// RiskLevel represents the canonical risk classification values.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// CoerceRiskLevel maps a raw model-emitted risk string onto the canonical
// values. Unrecognized values map to medium, never low, so a malformed answer
// cannot under-state risk. The second return reports whether the value had to
// be coerced.
func CoerceRiskLevel(raw string) (RiskLevel, bool) {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(raw))) {
	case RiskLow:
		return RiskLow, false
	case RiskMedium:
		return RiskMedium, false
	case RiskHigh:
		return RiskHigh, false
	case RiskCritical:
		return RiskCritical, false
	}
	return RiskMedium, true
}

// AlertWorthy reports whether the risk level should trigger an analyst alert.
func (r RiskLevel) AlertWorthy() bool {
	return r == RiskHigh || r == RiskCritical
}
