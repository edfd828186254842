// Package contributor implements the client side of iSENSE data
// contribution: it accumulates rows of typed data keyed by field name,
// resolves project metadata, and uploads or appends datasets through the
// platform's JSON API.
//
// A Contributor is a single stateful session. It is not safe for concurrent
// use: drive one instance from one goroutine at a time.
package contributor

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/isense-tools/sdk-go/api"
	"github.com/isense-tools/sdk-go/types"
)

// DefaultContributorLabel is attached to key-based uploads when the caller
// never set a label of their own.
const DefaultContributorLabel = "cURL"

// Contributor holds the session state for contributing to one project:
// identity, credentials, fetched metadata, and the accumulator of staged
// values. Setters only record configuration; network I/O happens in the
// explicit Fetch*, Verify and upload methods.
type Contributor struct {
	api    *api.Client
	logger *slog.Logger

	projectID        string
	datasetID        string
	title            string
	contributorKey   string
	contributorLabel string
	email            string
	password         string

	fields       []types.Field
	dataSets     []types.DataSet
	mediaObjects []types.MediaObject
	owner        types.Owner

	data *Accumulator
}

// Config contains configuration for a Contributor. Every field is optional;
// identity and credentials can also be set later through the setters.
type Config struct {
	ProjectID        string
	Title            string
	ContributorKey   string
	ContributorLabel string

	// BaseURL overrides the platform endpoint; defaults to api.DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the transport; mainly for tests.
	HTTPClient *http.Client

	// Logger receives diagnostics; defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a Contributor. No network I/O happens here; call FetchFields
// or FetchProject once a project id is set.
func New(cfg Config) *Contributor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Contributor{
		api: api.NewClient(api.Config{
			BaseURL:    cfg.BaseURL,
			HTTPClient: cfg.HTTPClient,
			Logger:     logger,
		}),
		logger:           logger,
		projectID:        cfg.ProjectID,
		title:            cfg.Title,
		contributorKey:   cfg.ContributorKey,
		contributorLabel: cfg.ContributorLabel,
		data:             NewAccumulator(),
	}
}

// SetProjectID records the target project. Previously fetched metadata is
// discarded since it described the old project; fetch again before lookups.
func (c *Contributor) SetProjectID(projectID string) {
	if projectID != c.projectID {
		c.dropMetadata()
	}
	c.projectID = projectID
}

// SetTitle records the title sent with every upload.
func (c *Contributor) SetTitle(title string) {
	c.title = title
}

// SetContributorKey records the per-project write credential.
func (c *Contributor) SetContributorKey(key string) {
	c.contributorKey = key
}

// SetContributorLabel records the display name attached to key-based
// contributions. Optional; uploads fall back to DefaultContributorLabel.
func (c *Contributor) SetContributorLabel(label string) {
	c.contributorLabel = label
}

// SetDatasetID records the dataset that append operations target. Callers
// who only know the dataset's name can use the ByName append variants
// instead.
func (c *Contributor) SetDatasetID(datasetID string) {
	c.datasetID = datasetID
}

// Configure sets project id, title, label and contributor key in one call.
func (c *Contributor) Configure(projectID, title, label, key string) {
	c.SetProjectID(projectID)
	c.SetTitle(title)
	c.SetContributorLabel(label)
	c.SetContributorKey(key)
}

// SetCredentials records an email/password pair and verifies it against the
// platform's user-info endpoint with one GET round trip. It returns whether
// the platform accepted the combination; the credentials stay recorded
// either way so the caller may correct and retry.
func (c *Contributor) SetCredentials(ctx context.Context, email, password string) (bool, error) {
	c.email = email
	c.password = password

	ok, err := c.VerifyCredentials(ctx)
	if err != nil {
		return false, err
	}

	if ok {
		c.logger.Info("email and password are valid")
	} else {
		c.logger.Error("email and password were rejected",
			"guidance", "check the password and make sure the account exists on the platform")
	}

	return ok, nil
}

// Clear resets the session to its initial state: identity, credentials,
// fetched metadata and every staged value are discarded.
func (c *Contributor) Clear() {
	c.projectID = ""
	c.datasetID = ""
	c.title = ""
	c.contributorKey = ""
	c.contributorLabel = ""
	c.email = ""
	c.password = ""
	c.dropMetadata()
	c.data.Clear()
}

func (c *Contributor) dropMetadata() {
	c.fields = nil
	c.dataSets = nil
	c.mediaObjects = nil
	c.owner = types.Owner{}
}

// PushBack appends one value to the named field's staged column.
func (c *Contributor) PushBack(fieldName, value string) {
	c.data.PushBack(fieldName, value)
}

// PushVector replaces the named field's staged column.
func (c *Contributor) PushVector(fieldName string, values []string) {
	c.data.PushVector(fieldName, values)
}

// Data exposes the accumulator of staged values.
func (c *Contributor) Data() *Accumulator {
	return c.data
}

// ProjectID returns the configured project id; empty means unset.
func (c *Contributor) ProjectID() string { return c.projectID }

// DatasetID returns the dataset targeted by append operations.
func (c *Contributor) DatasetID() string { return c.datasetID }

// Title returns the configured upload title.
func (c *Contributor) Title() string { return c.title }

// Fields returns the field definitions from the last successful fetch.
func (c *Contributor) Fields() []types.Field { return c.fields }

// DataSets returns the dataset records from the last recursive fetch.
func (c *Contributor) DataSets() []types.DataSet { return c.dataSets }

// MediaObjects returns the media records from the last recursive fetch.
func (c *Contributor) MediaObjects() []types.MediaObject { return c.mediaObjects }

// Owner returns the project owner info from the last recursive fetch.
func (c *Contributor) Owner() types.Owner { return c.owner }

// UploadURL returns the dataset-creation endpoint derived from the current
// project id.
func (c *Contributor) UploadURL() string {
	return c.api.BaseURL() + c.projectPath() + "/jsonDataUpload"
}

// ProjectURL returns the project metadata endpoint derived from the current
// project id.
func (c *Contributor) ProjectURL() string {
	return c.api.BaseURL() + c.projectPath()
}

func (c *Contributor) projectPath() string {
	return "/projects/" + url.PathEscape(c.projectID)
}

// Debug logs the full session state, including fetched metadata sizes and
// every staged column. Credentials are logged too, mirroring the verbose
// dump contributors ask for when an upload is rejected with a 422.
func (c *Contributor) Debug() {
	c.logger.Debug("contributor state",
		"project_id", c.projectID,
		"dataset_id", c.datasetID,
		"title", c.title,
		"contributor_key", c.contributorKey,
		"contributor_label", c.contributorLabel,
		"email", c.email,
		"upload_url", c.UploadURL(),
		"project_url", c.ProjectURL(),
		"fields", len(c.fields),
		"datasets", len(c.dataSets),
		"media_objects", len(c.mediaObjects),
	)
	for _, name := range c.data.FieldNames() {
		c.logger.Debug("staged column", "field", name, "values", c.data.Column(name))
	}
}

// Timestamp returns the current time as an ISO 8601 UTC string, the format
// the platform expects for timestamp fields. It does not stage anything;
// pass the result to PushBack.
func Timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}
