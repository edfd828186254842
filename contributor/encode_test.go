package contributor

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/isense-tools/sdk-go/types"
	"github.com/isense-tools/sdk-go/wire"
)

func newTestContributor(baseURL string) *Contributor {
	return New(Config{
		BaseURL: baseURL,
		Logger:  slog.New(slog.DiscardHandler),
	})
}

func TestBuildUploadScenario(t *testing.T) {
	c := newTestContributor("http://unused.invalid")
	c.SetProjectID("42")
	c.SetTitle("readings")
	c.SetContributorKey("abc")
	c.fields = []types.Field{{ID: "f1", Name: "Temp"}}

	c.PushBack("Temp", "98.6")

	payload, err := c.buildUpload(KeyCreate)
	if err != nil {
		t.Fatalf("buildUpload failed: %v", err)
	}

	out, err := payload.Serialize()
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	want := `{"title":"readings","contribution_key":"abc","contributor_name":"cURL","data":{"f1":["98.6"]}}`
	if string(out) != want {
		t.Errorf("payload = %s, want %s", out, want)
	}
}

func TestBuildUploadDeterministic(t *testing.T) {
	c := newTestContributor("http://unused.invalid")
	c.SetProjectID("42")
	c.SetTitle("readings")
	c.SetContributorKey("abc")
	c.fields = []types.Field{
		{ID: "10", Name: "Temp"},
		{ID: "11", Name: "City"},
	}
	c.PushVector("Temp", []string{"98.6", "99.1"})
	c.PushVector("City", []string{"Lowell", "Boston"})

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		payload, err := c.buildUpload(KeyCreate)
		if err != nil {
			t.Fatalf("buildUpload failed: %v", err)
		}
		out, err := payload.Serialize()
		if err != nil {
			t.Fatalf("serialize failed: %v", err)
		}
		outputs = append(outputs, out)
	}

	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Fatalf("expected byte-identical output, got\n%s\n%s", outputs[0], outputs[1])
	}
}

func TestBuildUploadKeysByFirstMatchingFieldID(t *testing.T) {
	// Two fields with the same name but different server ids: the first in
	// fetch order must receive the staged column.
	c := newTestContributor("http://unused.invalid")
	c.SetTitle("t")
	c.SetContributorKey("k")
	c.fields = []types.Field{
		{ID: "100", Name: "Temp"},
		{ID: "200", Name: "Temp"},
	}
	c.PushBack("Temp", "1")

	payload, err := c.buildUpload(KeyCreate)
	if err != nil {
		t.Fatalf("buildUpload failed: %v", err)
	}

	data, ok := payload.Get("data")
	if !ok {
		t.Fatal("payload has no data object")
	}

	first, ok := data.Get("100")
	if !ok {
		t.Fatal("expected data under first field id")
	}
	if vals := first.Array(); len(vals) != 1 || vals[0].Stringify() != "1" {
		t.Errorf("first field id holds %v, want [1]", vals)
	}
}

func TestBuildUploadRoundTrip(t *testing.T) {
	c := newTestContributor("http://unused.invalid")
	c.SetTitle("t")
	c.SetContributorKey("k")
	c.fields = []types.Field{{ID: "77", Name: "x"}}
	c.PushBack("x", "1")
	c.PushBack("x", "2")

	payload, err := c.buildUpload(KeyCreate)
	if err != nil {
		t.Fatalf("buildUpload failed: %v", err)
	}
	out, err := payload.Serialize()
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	back, err := wire.Parse(out)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}

	data, _ := back.Get("data")
	col, ok := data.Get("77")
	if !ok {
		t.Fatal("round trip lost column 77")
	}

	vals := col.Array()
	if len(vals) != 2 {
		t.Fatalf("expected 2 values, got %d", len(vals))
	}
	for i, want := range []string{"1", "2"} {
		if got := vals[i].Stringify(); got != want {
			t.Errorf("value %d = %q, want %q", i, got, want)
		}
	}
}

func TestBuildUploadAppendCarriesDatasetID(t *testing.T) {
	c := newTestContributor("http://unused.invalid")
	c.SetTitle("t")
	c.SetContributorKey("k")
	c.SetDatasetID("555")
	c.fields = []types.Field{{ID: "1", Name: "x"}}
	c.PushBack("x", "v")

	payload, err := c.buildUpload(KeyAppend)
	if err != nil {
		t.Fatalf("buildUpload failed: %v", err)
	}

	id, ok := payload.Get("id")
	if !ok {
		t.Fatal("append payload missing id")
	}
	if s, _ := id.Str(); s != "555" {
		t.Errorf("id = %q, want 555", s)
	}
	if _, ok := payload.Get("contributor_name"); ok {
		t.Error("append-by-key payload must not carry contributor_name")
	}
}

func TestBuildUploadRequiresFields(t *testing.T) {
	c := newTestContributor("http://unused.invalid")
	c.SetTitle("t")
	c.PushBack("x", "1")

	_, err := c.buildUpload(KeyCreate)
	if !errors.Is(err, ErrFieldsNotFetched) {
		t.Fatalf("expected ErrFieldsNotFetched, got %v", err)
	}
}

func TestBuildUploadRejectsRaggedColumns(t *testing.T) {
	c := newTestContributor("http://unused.invalid")
	c.SetTitle("t")
	c.fields = []types.Field{
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
	}
	c.PushVector("a", []string{"1", "2", "3"})
	c.PushVector("b", []string{"1"})

	_, err := c.buildUpload(KeyCreate)

	var ragged *RaggedColumnsError
	if !errors.As(err, &ragged) {
		t.Fatalf("expected RaggedColumnsError, got %v", err)
	}
	if ragged.Lengths["a"] != 3 || ragged.Lengths["b"] != 1 {
		t.Errorf("unexpected lengths: %v", ragged.Lengths)
	}
}

func TestBuildUploadEmptyColumnEncodesEmptyArray(t *testing.T) {
	// A field the caller never staged still appears, as an empty array.
	c := newTestContributor("http://unused.invalid")
	c.SetTitle("t")
	c.fields = []types.Field{
		{ID: "1", Name: "staged"},
		{ID: "2", Name: "untouched"},
	}
	c.PushBack("staged", "v")

	payload, err := c.buildUpload(KeyCreate)
	if err != nil {
		t.Fatalf("buildUpload failed: %v", err)
	}

	data, _ := payload.Get("data")
	col, ok := data.Get("2")
	if !ok {
		t.Fatal("unstaged field missing from data object")
	}
	if vals := col.Array(); len(vals) != 0 {
		t.Errorf("expected empty array, got %v", vals)
	}
}
