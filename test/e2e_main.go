package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/isense-tools/sdk-go/api"
	"github.com/isense-tools/sdk-go/contributor"
)

// End-to-end driver against a live deployment: fetch project metadata,
// stage two columns, upload a new dataset by contributor key, then read the
// uploaded column back. Configuration comes from the environment:
//
//	ISENSE_BASE_URL              API endpoint (default: dev deployment)
//	ISENSE_TEST_PROJECT_ID       writable project
//	ISENSE_TEST_CONTRIBUTOR_KEY  contributor key for that project

func main() {
	fmt.Println("================================================================================")
	fmt.Println("  iSENSE SDK END-TO-END TEST")
	fmt.Println("  Fetch Metadata → Stage Columns → Upload → Read Back")
	fmt.Println("================================================================================")
	fmt.Println("")

	ctx := context.Background()

	projectID := os.Getenv("ISENSE_TEST_PROJECT_ID")
	contributorKey := os.Getenv("ISENSE_TEST_CONTRIBUTOR_KEY")
	if projectID == "" || contributorKey == "" {
		fmt.Println("❌ Set ISENSE_TEST_PROJECT_ID and ISENSE_TEST_CONTRIBUTOR_KEY")
		os.Exit(1)
	}

	cfg, err := api.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	title := fmt.Sprintf("Go E2E Test %d", time.Now().Unix())

	// Step 1: Initialize the contributor session
	fmt.Println("Step 1: Initialize Contributor")
	fmt.Println("--------------------------------------------------------------------------------")
	c := contributor.New(contributor.Config{
		ProjectID:        projectID,
		Title:            title,
		ContributorKey:   contributorKey,
		ContributorLabel: "go-e2e",
		BaseURL:          cfg.BaseURL,
		Logger:           slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
	fmt.Printf("✅ Contributor initialized\n")
	fmt.Printf("   Project ID: %s\n", c.ProjectID())
	fmt.Printf("   Project URL: %s\n", c.ProjectURL())
	fmt.Printf("   Upload title: %s\n\n", title)

	// Step 2: Fetch project metadata
	fmt.Println("Step 2: Fetch Project Metadata")
	fmt.Println("--------------------------------------------------------------------------------")
	if err := c.FetchProject(ctx); err != nil {
		fmt.Printf("❌ Failed to fetch project: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Project metadata fetched\n")
	fmt.Printf("   Fields: %d\n", len(c.Fields()))
	fmt.Printf("   Datasets: %d\n", len(c.DataSets()))
	fmt.Printf("   Media objects: %d\n", len(c.MediaObjects()))
	fmt.Printf("   Owner: %s\n\n", c.Owner().Name)

	if len(c.Fields()) == 0 {
		fmt.Println("❌ Project has no fields to contribute to")
		os.Exit(1)
	}

	// Step 3: Stage one column per field
	fmt.Println("Step 3: Stage Columns")
	fmt.Println("--------------------------------------------------------------------------------")
	for _, f := range c.Fields() {
		c.PushBack(f.Name, contributor.Timestamp())
		fmt.Printf("   Staged 1 value for field %q (id %s)\n", f.Name, f.ID)
	}
	fmt.Printf("✅ %d columns staged\n\n", len(c.Fields()))

	// Step 4: Upload a new dataset by contributor key
	fmt.Println("Step 4: Upload Dataset (contributor key)")
	fmt.Println("--------------------------------------------------------------------------------")
	if err := c.UploadWithKey(ctx); err != nil {
		fmt.Printf("❌ Failed to upload: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Dataset uploaded\n\n")

	// Step 5: Read the uploaded column back
	fmt.Println("Step 5: Read Back")
	fmt.Println("--------------------------------------------------------------------------------")
	firstField := c.Fields()[0].Name

	column, err := c.DatasetColumn(ctx, title, firstField)
	if err != nil {
		fmt.Printf("❌ Failed to read column back: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Column %q of dataset %q: %d values\n\n", firstField, title, len(column))

	// Success!
	fmt.Println("================================================================================")
	fmt.Println("  ✅ iSENSE SDK END-TO-END TEST COMPLETE!")
	fmt.Println("================================================================================")
	fmt.Println("")
	fmt.Println("Summary:")
	fmt.Println("  ✅ Contributor session initialized")
	fmt.Println("  ✅ Project metadata fetched")
	fmt.Println("  ✅ Columns staged")
	fmt.Println("  ✅ Dataset created by contributor key")
	fmt.Println("  ✅ Uploaded column read back")
	fmt.Println("")
	fmt.Printf("Uploaded dataset title: %s\n", title)
	fmt.Println("")
}
