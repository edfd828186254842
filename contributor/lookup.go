package contributor

import (
	"context"
	"fmt"
)

// FieldID resolves a field name to the platform's field id by scanning the
// fetched field definitions in server-returned order; on duplicate names
// the first match wins. Names are case-sensitive. Returns
// ErrFieldsNotFetched before the first fetch and ErrNotFound on a miss.
func (c *Contributor) FieldID(fieldName string) (string, error) {
	if len(c.fields) == 0 {
		return "", ErrFieldsNotFetched
	}

	for _, f := range c.fields {
		if f.Name == fieldName {
			return f.ID, nil
		}
	}

	return "", fmt.Errorf("field %q: %w", fieldName, ErrNotFound)
}

// DatasetIDByName resolves a dataset name to its id by scanning the fetched
// dataset records in server-returned order; the first match wins. Call
// FetchProject first; lookups only see what is cached.
func (c *Contributor) DatasetIDByName(datasetName string) (string, error) {
	for _, ds := range c.dataSets {
		if ds.Name == datasetName {
			return ds.ID, nil
		}
	}

	return "", fmt.Errorf("dataset %q: %w", datasetName, ErrNotFound)
}

// DatasetColumn fetches the project and returns the named field's values
// from the named dataset, one string per row. Any lookup miss, an empty
// dataset list, or a dataset without rows yields an empty slice with a
// logged diagnostic; the error return covers the project fetch itself.
func (c *Contributor) DatasetColumn(ctx context.Context, datasetName, fieldName string) ([]string, error) {
	if c.projectID == "" {
		return nil, &PreconditionError{Field: "project id"}
	}

	if err := c.FetchProject(ctx); err != nil {
		return nil, fmt.Errorf("get dataset column: %w", err)
	}

	if len(c.dataSets) == 0 {
		c.logger.Error("project has no datasets", "project_id", c.projectID)
		return nil, nil
	}

	datasetID, err := c.DatasetIDByName(datasetName)
	if err != nil {
		c.logger.Error("could not resolve dataset name",
			"dataset", datasetName,
			"guidance", "check the dataset name, field name and project ID")
		return nil, nil
	}

	fieldID, err := c.FieldID(fieldName)
	if err != nil {
		c.logger.Error("could not resolve field name",
			"field", fieldName,
			"guidance", "check the dataset name, field name and project ID")
		return nil, nil
	}

	for _, ds := range c.dataSets {
		if ds.ID != datasetID {
			continue
		}

		rows := ds.Rows()
		if rows == nil {
			c.logger.Error("dataset record has no data rows", "dataset", datasetName)
			return nil, nil
		}

		column := make([]string, 0, len(rows))
		for _, row := range rows {
			cell, _ := row.Get(fieldID)
			column = append(column, cell.Stringify())
		}
		return column, nil
	}

	// The id resolved against the same cache we scanned, so this is
	// unreachable unless the cache mutated mid-call.
	c.logger.Error("dataset disappeared between resolution and extraction", "dataset", datasetName)
	return nil, nil
}
