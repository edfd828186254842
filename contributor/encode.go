package contributor

import (
	"github.com/isense-tools/sdk-go/wire"
)

// UploadMode selects which credential fields an upload payload carries and
// whether the request creates a dataset or appends to one.
type UploadMode int

const (
	// KeyCreate creates a dataset authenticated by contributor key.
	KeyCreate UploadMode = iota
	// KeyAppend appends to a dataset authenticated by contributor key.
	KeyAppend
	// EmailCreate creates a dataset authenticated by email/password.
	EmailCreate
	// EmailAppend appends to a dataset authenticated by email/password.
	EmailAppend
)

// IsAppend reports whether the mode targets an existing dataset.
func (m UploadMode) IsAppend() bool {
	return m == KeyAppend || m == EmailAppend
}

func (m UploadMode) String() string {
	switch m {
	case KeyCreate:
		return "create-by-key"
	case KeyAppend:
		return "append-by-key"
	case EmailCreate:
		return "create-by-email"
	case EmailAppend:
		return "append-by-email"
	}
	return "unknown"
}

type credentialField struct {
	key   string
	value func(*Contributor) string
}

// modeCredentials is the fixed table of exactly which credential fields
// each mode emits, in payload order. Appends identify the target dataset
// with an "id" field next to the credentials.
var modeCredentials = map[UploadMode][]credentialField{
	KeyCreate: {
		{"contribution_key", func(c *Contributor) string { return c.contributorKey }},
		{"contributor_name", func(c *Contributor) string { return c.label() }},
	},
	KeyAppend: {
		{"contribution_key", func(c *Contributor) string { return c.contributorKey }},
		{"id", func(c *Contributor) string { return c.datasetID }},
	},
	EmailCreate: {
		{"email", func(c *Contributor) string { return c.email }},
		{"password", func(c *Contributor) string { return c.password }},
	},
	EmailAppend: {
		{"email", func(c *Contributor) string { return c.email }},
		{"password", func(c *Contributor) string { return c.password }},
		{"id", func(c *Contributor) string { return c.datasetID }},
	},
}

func (c *Contributor) label() string {
	if c.contributorLabel == "" {
		return DefaultContributorLabel
	}
	return c.contributorLabel
}

// buildUpload assembles the wire payload for one upload: title, the mode's
// credential fields, then a "data" object keyed by server field id. Columns
// are matched to fields by name, so the payload stays keyed by stable ids
// even if the caller's names drift from server order. Fields the caller
// never staged encode as empty arrays.
//
// Requires fetched field metadata, and staged columns that agree on row
// count; ragged columns would upload a ragged data object the platform
// rejects in confusing ways, so they fail here instead.
func (c *Contributor) buildUpload(mode UploadMode) (wire.Value, error) {
	if len(c.fields) == 0 {
		c.logger.Error("field metadata is missing",
			"guidance", "have you pulled the fields off the platform?")
		return wire.Value{}, ErrFieldsNotFetched
	}

	if lengths := c.data.raggedLengths(); lengths != nil {
		return wire.Value{}, &RaggedColumnsError{Lengths: lengths}
	}

	upload := wire.NewObject()
	upload.Set("title", wire.String(c.title))

	for _, cf := range modeCredentials[mode] {
		upload.Set(cf.key, wire.String(cf.value(c)))
	}

	data := wire.NewObject()
	for _, f := range c.fields {
		data.Set(f.ID, wire.StringArray(c.data.Column(f.Name)))
	}
	upload.Set("data", wire.ObjectValue(data))

	return wire.ObjectValue(upload), nil
}
