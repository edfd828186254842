package api

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// Fixture builders for project responses, shared by the api and contributor
// test suites. Field and dataset ids are numeric in fixture output because
// that is how the platform sends them.

// FixtureField describes one field entry in a fixture project body.
type FixtureField struct {
	ID   int
	Name string
}

// FixtureDataSet describes one dataset entry in a recursive fixture body.
// Rows map field id to the raw JSON value for that row.
type FixtureDataSet struct {
	ID   int
	Name string
	Rows []map[string]string
}

// NewTestClient creates a client pointed at a test server with debug
// logging discarded.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	return NewClient(Config{
		BaseURL: baseURL,
		Logger:  slog.New(slog.DiscardHandler),
	})
}

// ProjectBody renders the body of GET /projects/{id}.
func ProjectBody(projectID string, fields []FixtureField) string {
	return fmt.Sprintf(`{"id": %s, "name": "Fixture Project", "fields": [%s]}`,
		projectID, fieldList(fields))
}

// RecursiveProjectBody renders the body of GET /projects/{id}?recur=true.
func RecursiveProjectBody(projectID string, fields []FixtureField, dataSets []FixtureDataSet) string {
	return fmt.Sprintf(
		`{"id": %s, "name": "Fixture Project", "fields": [%s], "dataSets": [%s], "mediaObjects": [], "owner": {"name": "fixture-owner"}}`,
		projectID, fieldList(fields), dataSetList(dataSets))
}

func fieldList(fields []FixtureField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf(`{"id": %d, "name": %q, "type": 2}`, f.ID, f.Name))
	}
	return strings.Join(parts, ",")
}

func dataSetList(dataSets []FixtureDataSet) string {
	parts := make([]string, 0, len(dataSets))
	for _, ds := range dataSets {
		rows := make([]string, 0, len(ds.Rows))
		for _, row := range ds.Rows {
			cells := make([]string, 0, len(row))
			for fieldID, raw := range row {
				cells = append(cells, fmt.Sprintf("%q: %s", fieldID, raw))
			}
			rows = append(rows, "{"+strings.Join(cells, ",")+"}")
		}
		parts = append(parts, fmt.Sprintf(`{"id": %d, "name": %q, "data": [%s]}`,
			ds.ID, ds.Name, strings.Join(rows, ",")))
	}
	return strings.Join(parts, ",")
}
