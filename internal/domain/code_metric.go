package domain

// CodeMetric is a per-function quality record produced by the external
// static-analysis collaborator. This core stores the records verbatim and
// only derives the effort score from them.
type CodeMetric struct {
	FunctionName       string
	ModificationType   string // "added", "modified", "refactored", "deleted"
	LinesAdded         int
	LinesModified      int
	LinesDeleted       int
	Complexity         int
	DocumentationScore int // 0-100
	HasDocstring       bool
	HasTypeHints       bool
}

// EffortScore weights lines changed by how much work each kind represents,
// with pre-existing complexity as a multiplier proxy for AI contribution size.
func (c CodeMetric) EffortScore() float64 {
	lines := float64(c.LinesAdded) + 0.5*float64(c.LinesModified) + 0.2*float64(c.LinesDeleted)
	return lines + 2.0*float64(c.Complexity)
}

// ToMap serializes the record into a flat document.
func (c CodeMetric) ToMap() map[string]any {
	return map[string]any{
		"function_name":       c.FunctionName,
		"modification_type":   c.ModificationType,
		"lines_added":         c.LinesAdded,
		"lines_modified":      c.LinesModified,
		"lines_deleted":       c.LinesDeleted,
		"complexity":          c.Complexity,
		"documentation_score": c.DocumentationScore,
		"has_docstring":       c.HasDocstring,
		"has_type_hints":      c.HasTypeHints,
	}
}

// CodeMetricFromMap deserializes a code metric document, defaulting missing
// fields. No key is required; the record is opaque to this core.
func CodeMetricFromMap(m map[string]any) CodeMetric {
	return CodeMetric{
		FunctionName:       mapString(m, "function_name"),
		ModificationType:   mapString(m, "modification_type"),
		LinesAdded:         mapInt(m, "lines_added"),
		LinesModified:      mapInt(m, "lines_modified"),
		LinesDeleted:       mapInt(m, "lines_deleted"),
		Complexity:         mapInt(m, "complexity"),
		DocumentationScore: mapInt(m, "documentation_score"),
		HasDocstring:       mapBool(m, "has_docstring"),
		HasTypeHints:       mapBool(m, "has_type_hints"),
	}
}
