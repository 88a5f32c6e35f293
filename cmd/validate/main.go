// Command validate checks a campaign content file before deployment: strict
// JSON decoding, structural validation, and lint warnings for flag typos.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jwebster45206/emberfall/pkg/campaign"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <campaign.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	fmt.Printf("Validating %s...\n", filename)

	c, err := validateFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	warnings := c.Lint()
	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}

	fmt.Printf("Campaign %q is valid: %d scenes", c.ID, len(c.Scenes))
	if c.Map != nil {
		fmt.Printf(", %d map locations", len(c.Map.Locations))
	}
	fmt.Println()

	if len(warnings) > 0 {
		fmt.Printf("%d warning(s)\n", len(warnings))
	}
}

func validateFile(filename string) (*campaign.Campaign, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	// Strict decode first so typos in field names surface as errors rather
	// than silently dropped content.
	var c campaign.Campaign
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
