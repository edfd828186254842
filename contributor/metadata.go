package contributor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/isense-tools/sdk-go/api"
	"github.com/isense-tools/sdk-go/types"
	"github.com/isense-tools/sdk-go/wire"
)

// FetchFields pulls the project's field definitions from GET
// /projects/{id} and stores them in the session. Requires a project id. On
// any failure the previously fetched metadata is left untouched.
func (c *Contributor) FetchFields(ctx context.Context) error {
	if c.projectID == "" {
		return &PreconditionError{Field: "project id"}
	}

	status, body, err := c.api.Get(ctx, c.projectPath())
	if err != nil {
		return fmt.Errorf("fetch project fields: %w", err)
	}

	if status != http.StatusOK {
		c.logger.Error("fetching project fields failed",
			"status", status,
			"guidance", "is the project ID you entered valid?")
		return api.NewAPIError(status, body)
	}

	v, err := wire.Parse(body)
	if err != nil {
		return fmt.Errorf("fetch project fields: %w", err)
	}

	fieldsVal, ok := v.Get("fields")
	if !ok {
		return fmt.Errorf("fetch project fields: response has no fields key")
	}

	c.fields = types.FieldsFromWire(fieldsVal)
	return nil
}

// FetchProject pulls the project recursively from GET
// /projects/{id}?recur=true: field definitions, every dataset with its
// rows, media objects, and owner info. All four are replaced together from
// one parse; on any failure the session keeps what it had.
func (c *Contributor) FetchProject(ctx context.Context) error {
	if c.projectID == "" {
		return &PreconditionError{Field: "project id"}
	}

	status, body, err := c.api.Get(ctx, c.projectPath()+"?recur=true")
	if err != nil {
		return fmt.Errorf("fetch project: %w", err)
	}

	if status != http.StatusOK {
		c.logger.Error("fetching project failed",
			"status", status,
			"guidance", "is the project ID you entered valid?")
		return api.NewAPIError(status, body)
	}

	v, err := wire.Parse(body)
	if err != nil {
		return fmt.Errorf("fetch project: %w", err)
	}

	fieldsVal, ok := v.Get("fields")
	if !ok {
		return fmt.Errorf("fetch project: response has no fields key")
	}

	dataSetsVal, _ := v.Get("dataSets")
	mediaVal, _ := v.Get("mediaObjects")
	ownerVal, _ := v.Get("owner")

	c.fields = types.FieldsFromWire(fieldsVal)
	c.dataSets = types.DataSetsFromWire(dataSetsVal)
	c.mediaObjects = types.MediaObjectsFromWire(mediaVal)
	c.owner = types.OwnerFromWire(ownerVal)
	return nil
}

// VerifyCredentials checks the recorded email/password against the
// platform's user-info endpoint. True means the platform accepted them; a
// 401 reports false without error. The error return covers transport
// failures and unset credentials.
func (c *Contributor) VerifyCredentials(ctx context.Context) (bool, error) {
	if c.email == "" || c.password == "" {
		return false, &PreconditionError{Field: "email and password"}
	}

	query := url.Values{}
	query.Set("email", c.email)
	query.Set("password", c.password)

	status, _, err := c.api.Get(ctx, "/users/myInfo?"+query.Encode())
	if err != nil {
		return false, fmt.Errorf("verify credentials: %w", err)
	}

	if status != http.StatusOK {
		return false, nil
	}

	return true, nil
}

// SearchProjects returns the titles of projects matching the search term,
// most recently updated first. An empty result is not an error.
func (c *Contributor) SearchProjects(ctx context.Context, term string) ([]string, error) {
	path := "/projects?utf8=true&search=" + url.QueryEscape(term) + "&sort=updated_at&order=DESC"

	status, body, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}

	if status != http.StatusOK {
		c.logger.Error("project search failed", "status", status)
		return nil, api.NewAPIError(status, body)
	}

	v, err := wire.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}

	projects := v.Array()
	if len(projects) == 0 {
		c.logger.Info("no projects matched the search term", "term", term)
		return nil, nil
	}

	titles := make([]string, 0, len(projects))
	for _, p := range projects {
		name, _ := p.Get("name")
		if s, ok := name.Str(); ok {
			titles = append(titles, s)
		}
	}

	return titles, nil
}
