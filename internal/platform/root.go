package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigName is the base name of the project configuration file.
const ConfigName = ".keyloom"

// FindRoot recursively looks upwards for a project root indicator.
// Indicators are: a .keyloom.yaml file, a .keyloom directory, or a .git directory.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigName+".yaml") || hasFile(dir, ConfigName) || hasFile(dir, ".git") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
