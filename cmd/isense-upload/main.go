// Command isense-upload contributes data to an iSENSE project from a YAML
// job file. It exists as a working example of driving the contributor
// package end to end: configure, fetch metadata, stage columns, upload.
//
// Usage:
//
//	isense-upload job.yaml
//
// A job file names the project, the credentials, and the columns to stage:
//
//	project_id: "929"
//	title: "station 3 readings"
//	contributor_key: "swordfish"
//	contributor_label: "station-3"
//	columns:
//	  - field: Temperature
//	    values: ["98.6", "99.1"]
//	  - field: Timestamp
//	    values: ["2026-08-31T12:00:00Z", "2026-08-31T12:05:00Z"]
//
// Setting email/password instead of contributor_key switches to account
// credentials; setting dataset_id or dataset_name appends to an existing
// dataset instead of creating a new one. The API endpoint comes from
// ISENSE_BASE_URL when set.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/isense-tools/sdk-go/api"
	"github.com/isense-tools/sdk-go/contributor"
)

// job mirrors the YAML job file. Columns are a list rather than a map so the
// staging order in the file is the order values are pushed.
type job struct {
	ProjectID        string `yaml:"project_id"`
	Title            string `yaml:"title"`
	ContributorKey   string `yaml:"contributor_key"`
	ContributorLabel string `yaml:"contributor_label"`
	Email            string `yaml:"email"`
	Password         string `yaml:"password"`

	// DatasetID or DatasetName switch the job from create to append.
	DatasetID   string `yaml:"dataset_id"`
	DatasetName string `yaml:"dataset_name"`

	Columns []column `yaml:"columns"`
}

type column struct {
	Field  string   `yaml:"field"`
	Values []string `yaml:"values"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: isense-upload <job.yaml>")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], logger); err != nil {
		logger.Error("upload failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, jobPath string, logger *slog.Logger) error {
	j, err := loadJob(jobPath)
	if err != nil {
		return fmt.Errorf("loading job file: %w", err)
	}

	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}

	c := contributor.New(contributor.Config{
		ProjectID:        j.ProjectID,
		Title:            j.Title,
		ContributorKey:   j.ContributorKey,
		ContributorLabel: j.ContributorLabel,
		BaseURL:          cfg.BaseURL,
		Logger:           logger,
	})

	if j.Email != "" {
		ok, err := c.SetCredentials(ctx, j.Email, j.Password)
		if err != nil {
			return fmt.Errorf("verifying credentials: %w", err)
		}
		if !ok {
			return fmt.Errorf("credentials for %s were rejected", j.Email)
		}
	}

	if err := c.FetchFields(ctx); err != nil {
		return fmt.Errorf("fetching project fields: %w", err)
	}
	logger.Info("project metadata fetched",
		"project_id", c.ProjectID(), "fields", len(c.Fields()))

	for _, col := range j.Columns {
		c.PushVector(col.Field, col.Values)
	}

	if err := submit(ctx, c, j); err != nil {
		return err
	}

	logger.Info("done", "project_url", c.ProjectURL())
	return nil
}

func loadJob(path string) (job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return job{}, err
	}

	var j job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return job{}, err
	}

	if len(j.Columns) == 0 {
		return job{}, fmt.Errorf("job file %s stages no columns", path)
	}

	return j, nil
}

// submit picks the upload entry point matching the job's credentials and
// append target.
func submit(ctx context.Context, c *contributor.Contributor, j job) error {
	byKey := j.ContributorKey != ""

	switch {
	case j.DatasetID != "" && byKey:
		return c.AppendWithKeyByID(ctx, j.DatasetID)
	case j.DatasetID != "":
		return c.AppendWithEmailByID(ctx, j.DatasetID)
	case j.DatasetName != "" && byKey:
		return c.AppendWithKeyByName(ctx, j.DatasetName)
	case j.DatasetName != "":
		return c.AppendWithEmailByName(ctx, j.DatasetName)
	case byKey:
		return c.UploadWithKey(ctx)
	default:
		return c.UploadWithEmail(ctx)
	}
}
