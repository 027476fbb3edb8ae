package models

// WarningKind classifies a non-fatal processing problem.
type WarningKind string

// Warning kinds surfaced in the summary report.
const (
	WarnColumnDrift      WarningKind = "column_drift"
	WarnNormalization    WarningKind = "normalization"
	WarnDuplicateRatio   WarningKind = "duplicate_ratio"
	WarnMalformedBlob    WarningKind = "malformed_blob"
	WarnFieldConflict    WarningKind = "field_conflict"
	WarnHeaderNotFound   WarningKind = "header_not_found"
	WarnUnitUnrecognized WarningKind = "unit_unrecognized"
)

// Warning records a non-fatal problem. Warnings never abort a source's
// processing; the summary report enumerates all of them so data loss stays
// observable.
type Warning struct {
	Source string      `json:"source"`
	Kind   WarningKind `json:"kind"`
	Field  string      `json:"field,omitempty"`
	Detail string      `json:"detail"`
}
