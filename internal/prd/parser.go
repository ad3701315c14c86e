package prd

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument marks terminal parse failures: the payload is not a
// JSON object with a userStories array. Callers surface this before any
// validation runs; there is no partial result.
var ErrInvalidDocument = errors.New("invalid PRD document")

// rawStory mirrors the wire shape with optional fields left nullable so
// normalization can distinguish absent from empty.
type rawStory struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Repo               string   `json:"repo"`
	Priority           *int     `json:"priority"`
	Dependencies       []string `json:"dependencies"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
}

// ParseDocument parses a raw PRD payload into a normalized Document.
//
// Absent dependencies and acceptanceCriteria become empty lists and an
// absent priority becomes DefaultPriority (lowest urgency). Malformed
// structure returns an error wrapping ErrInvalidDocument.
func ParseDocument(data []byte) (*Document, error) {
	var raw struct {
		UserStories *[]rawStory `json:"userStories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw.UserStories == nil {
		return nil, fmt.Errorf("%w: missing userStories array", ErrInvalidDocument)
	}

	doc := &Document{UserStories: make([]Story, 0, len(*raw.UserStories))}
	for _, rs := range *raw.UserStories {
		doc.UserStories = append(doc.UserStories, normalizeStory(rs))
	}
	return doc, nil
}

func normalizeStory(rs rawStory) Story {
	s := Story{
		ID:                 rs.ID,
		Title:              rs.Title,
		Description:        rs.Description,
		Repo:               rs.Repo,
		Priority:           DefaultPriority,
		Dependencies:       rs.Dependencies,
		AcceptanceCriteria: rs.AcceptanceCriteria,
	}
	if rs.Priority != nil {
		s.Priority = *rs.Priority
	}
	if s.Dependencies == nil {
		s.Dependencies = []string{}
	}
	if s.AcceptanceCriteria == nil {
		s.AcceptanceCriteria = []string{}
	}
	return s
}
