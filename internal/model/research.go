package model

import (
	"strings"
	"time"
)

// MaxResearchHistory bounds the per-goal snapshot log.
const MaxResearchHistory = 10

// ResearchFields are the four free-text fields of a research record.
// Each field that transitions to non-empty earns points exactly once.
type ResearchFields struct {
	Link     string `json:"link"`
	Keywords string `json:"keywords"`
	Notes    string `json:"notes"`
	Summary  string `json:"summary"`
}

// FilledCount returns how many of the four fields are non-blank.
func (f ResearchFields) FilledCount() int {
	n := 0
	for _, v := range []string{f.Link, f.Keywords, f.Notes, f.Summary} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// ResearchSnapshot is one entry of the bounded save history.
type ResearchSnapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	Fields    ResearchFields `json:"fields"`
}

// Research is the per-goal research record. AwardedCount only ever
// grows: fields that were credited stay credited even if later cleared.
type Research struct {
	Fields       ResearchFields     `json:"fields"`
	AwardedCount int                `json:"awarded_count"`
	LastSaved    *time.Time         `json:"last_saved,omitempty"`
	History      []ResearchSnapshot `json:"history,omitempty"`
}
