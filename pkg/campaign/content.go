package campaign

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed emberfall.json
var bundled embed.FS

// Default returns the bundled "Emberfall Ascent" campaign. Used when no
// external content file is configured, and as the offline fallback when one
// cannot be read.
func Default() (*Campaign, error) {
	data, err := bundled.ReadFile("emberfall.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled campaign: %w", err)
	}
	return parse(data)
}

// Load reads and validates a campaign document.
func Load(r io.Reader) (*Campaign, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign: %w", err)
	}
	return parse(data)
}

// LoadFile reads and validates a campaign file.
func LoadFile(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign file: %w", err)
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func parse(data []byte) (*Campaign, error) {
	var c Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
