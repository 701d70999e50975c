package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteManifest writes manifest.json to the output directory so the renders
// can be browsed without re-scanning the model tree.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
