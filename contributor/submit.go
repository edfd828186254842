package contributor

import (
	"context"
	"fmt"
	"net/http"

	"github.com/isense-tools/sdk-go/api"
)

// UploadWithKey creates a new dataset in the project, authenticated by
// contributor key. One blocking POST, no retry.
func (c *Contributor) UploadWithKey(ctx context.Context) error {
	return c.submit(ctx, KeyCreate)
}

// AppendWithKeyByID appends the staged data to an existing dataset,
// authenticated by contributor key.
func (c *Contributor) AppendWithKeyByID(ctx context.Context, datasetID string) error {
	c.SetDatasetID(datasetID)
	return c.submit(ctx, KeyAppend)
}

// AppendWithKeyByName resolves a dataset name to its id and appends to it,
// authenticated by contributor key. A name that does not resolve aborts
// before anything is written.
func (c *Contributor) AppendWithKeyByName(ctx context.Context, datasetName string) error {
	id, err := c.resolveAppendTarget(ctx, KeyAppend, datasetName)
	if err != nil {
		return err
	}
	return c.AppendWithKeyByID(ctx, id)
}

// UploadWithEmail creates a new dataset in the project, authenticated by
// email and password.
func (c *Contributor) UploadWithEmail(ctx context.Context) error {
	return c.submit(ctx, EmailCreate)
}

// AppendWithEmailByID appends the staged data to an existing dataset,
// authenticated by email and password.
func (c *Contributor) AppendWithEmailByID(ctx context.Context, datasetID string) error {
	c.SetDatasetID(datasetID)
	return c.submit(ctx, EmailAppend)
}

// AppendWithEmailByName resolves a dataset name to its id and appends to
// it, authenticated by email and password.
func (c *Contributor) AppendWithEmailByName(ctx context.Context, datasetName string) error {
	id, err := c.resolveAppendTarget(ctx, EmailAppend, datasetName)
	if err != nil {
		return err
	}
	return c.AppendWithEmailByID(ctx, id)
}

// resolveAppendTarget validates the session, refreshes the project's
// datasets and resolves the name to an id.
func (c *Contributor) resolveAppendTarget(ctx context.Context, mode UploadMode, datasetName string) (string, error) {
	if err := c.validate(mode); err != nil {
		return "", err
	}

	if err := c.FetchProject(ctx); err != nil {
		return "", err
	}

	id, err := c.DatasetIDByName(datasetName)
	if err != nil {
		c.logger.Error("failed to find the dataset name in the project",
			"dataset", datasetName,
			"project_id", c.projectID,
			"guidance", "make sure to type the exact name, as it appears on the platform")
		return "", err
	}

	return id, nil
}

// validate runs the precondition checks in a fixed order and reports the
// first violation: project id, title, the mode's credentials, then a
// non-empty accumulator. A missing contributor label is not a violation;
// the encoder falls back to DefaultContributorLabel.
func (c *Contributor) validate(mode UploadMode) error {
	if c.projectID == "" {
		c.logger.Error("upload rejected before send", "missing", "project id")
		return &PreconditionError{Field: "project id"}
	}

	if c.title == "" {
		c.logger.Error("upload rejected before send", "missing", "project title")
		return &PreconditionError{Field: "project title"}
	}

	switch mode {
	case KeyCreate, KeyAppend:
		if c.contributorKey == "" {
			c.logger.Error("upload rejected before send", "missing", "contributor key")
			return &PreconditionError{Field: "contributor key"}
		}
	case EmailCreate, EmailAppend:
		if c.email == "" {
			c.logger.Error("upload rejected before send", "missing", "email address")
			return &PreconditionError{Field: "email address"}
		}
		if c.password == "" {
			c.logger.Error("upload rejected before send", "missing", "password")
			return &PreconditionError{Field: "password"}
		}
	}

	if c.data.IsEmpty() {
		c.logger.Error("upload rejected before send", "missing", "staged data",
			"guidance", "push some data into the contributor before uploading")
		return &PreconditionError{Field: "staged data"}
	}

	return nil
}

// submit drives one submission end to end: validate, encode, POST once,
// classify the response.
func (c *Contributor) submit(ctx context.Context, mode UploadMode) error {
	if err := c.validate(mode); err != nil {
		return err
	}

	payload, err := c.buildUpload(mode)
	if err != nil {
		return fmt.Errorf("%s: %w", mode, err)
	}

	body, err := payload.Serialize()
	if err != nil {
		return fmt.Errorf("%s: serialize upload: %w", mode, err)
	}

	path := "/data_sets/append"
	if !mode.IsAppend() {
		path = c.projectPath() + "/jsonDataUpload"
	}

	status, respBody, err := c.api.Post(ctx, path, body)
	if err != nil {
		c.logger.Error("upload failed", "mode", mode.String(),
			"guidance", guidance(api.StatusTransportFailed))
		return fmt.Errorf("%s: %w", mode, err)
	}

	if status == http.StatusOK {
		c.logger.Info("upload accepted",
			"mode", mode.String(),
			"status", status,
			"project_url", c.ProjectURL())
		return nil
	}

	c.logger.Error("upload rejected",
		"mode", mode.String(),
		"status", status,
		"guidance", guidance(status))

	return fmt.Errorf("%s: %w", mode, api.NewAPIError(status, respBody))
}

// guidance maps a response status to the advice shown alongside the error.
func guidance(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "check that your contributor key, or email and password, are valid for the project you are contributing to"
	case http.StatusNotFound:
		return "unable to find that project ID"
	case http.StatusUnprocessableEntity:
		return "the platform accepted your credentials but rejected the request formatting; try formatting your data differently, or call Debug for a full state dump"
	case api.StatusTransportFailed:
		return "the request never completed; check your network connection and the configured base URL"
	}
	return "the platform returned an unexpected status; try again or inspect the response body"
}
