package prd

import (
	"encoding/json"
	"fmt"

	"prdflight/internal/db"
)

// Writer persists completed analyses through the report store.
type Writer struct {
	store *db.Store
}

// NewWriter creates a writer backed by the given store.
func NewWriter(store *db.Store) *Writer {
	return &Writer{store: store}
}

// Write saves one analysis as a report. The payload is the canonical JSON
// encoding of the analysis, so a replayed report is byte-identical to what
// the engine produced.
func (w *Writer) Write(source string, doc *Document, analysis *Analysis) (*db.Report, error) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis: %w", err)
	}

	return w.store.SaveReport(db.Summary{
		Source:     source,
		StoryCount: len(doc.UserStories),
		Score:      analysis.Evaluation.Score,
		Grade:      string(analysis.Evaluation.Grade),
		IsValid:    analysis.Validation.IsValid,
	}, payload)
}
