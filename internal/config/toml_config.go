package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	serrors "github.com/standardbeagle/smellscan/internal/errors"
)

// LoadTOML loads dir/.smellscan.toml. It returns nil, nil when the file
// does not exist.
func LoadTOML(dir string) (*Config, error) {
	tomlPath := filepath.Join(dir, TOMLFileName)
	if _, err := os.Stat(tomlPath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(tomlPath)
	if err != nil {
		return nil, newReadError(tomlPath, err)
	}

	cfg, err := parseTOML(content, dir)
	if err != nil {
		return nil, err
	}
	resolveRoot(cfg, dir)
	return cfg, nil
}

// parseTOML decodes over the defaults, so absent keys keep their default
// values. Unknown keys are rejected.
func parseTOML(content []byte, source string) (*Config, error) {
	cfg := fileDefaults()
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			err = fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, serrors.NewConfigError("toml", source, fmt.Errorf("failed to parse TOML config: %w", err))
	}
	return cfg, nil
}
