// Build output detection from language-specific configuration files
// Parses package.json, tsconfig.json, Cargo.toml and pyproject.toml to find output directories
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// BuildArtifactDetector finds language-specific build output directories
type BuildArtifactDetector struct {
	projectRoot string
}

func NewBuildArtifactDetector(projectRoot string) *BuildArtifactDetector {
	return &BuildArtifactDetector{projectRoot: projectRoot}
}

// DetectOutputDirectories returns exclusion globs such as "**/lib/**" for
// the output directories the project's build configs declare.
func (bad *BuildArtifactDetector) DetectOutputDirectories() []string {
	var dirs []string
	dirs = append(dirs, bad.detectJavaScriptOutputs()...)
	dirs = append(dirs, bad.detectRustOutputs()...)
	dirs = append(dirs, bad.detectPythonOutputs()...)

	patterns := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = strings.Trim(filepath.ToSlash(filepath.Clean(d)), "/")
		if d == "" || d == "." || strings.HasPrefix(d, "..") {
			continue
		}
		patterns = append(patterns, "**/"+d+"/**")
	}
	return DeduplicatePatterns(patterns)
}

// detectJavaScriptOutputs reads tsc --outDir flags from package.json scripts
// and compilerOptions.outDir from tsconfig.json.
func (bad *BuildArtifactDetector) detectJavaScriptOutputs() []string {
	var dirs []string

	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if bad.readJSON("package.json", &pkg) {
		for _, script := range pkg.Scripts {
			parts := strings.Fields(script)
			for i, part := range parts {
				if (part == "--outDir" || part == "-outDir") && i+1 < len(parts) {
					dirs = append(dirs, strings.Trim(parts[i+1], "\"'"))
				} else if v, ok := strings.CutPrefix(part, "--outDir="); ok {
					dirs = append(dirs, strings.Trim(v, "\"'"))
				}
			}
		}
	}

	var tsconfig struct {
		CompilerOptions struct {
			OutDir string `json:"outDir"`
		} `json:"compilerOptions"`
	}
	if bad.readJSON("tsconfig.json", &tsconfig) && tsconfig.CompilerOptions.OutDir != "" {
		dirs = append(dirs, tsconfig.CompilerOptions.OutDir)
	}

	return dirs
}

// detectRustOutputs reads build.target-dir from Cargo.toml
func (bad *BuildArtifactDetector) detectRustOutputs() []string {
	var cargo struct {
		Build struct {
			TargetDir string `toml:"target-dir"`
		} `toml:"build"`
	}
	if bad.readTOML("Cargo.toml", &cargo) && cargo.Build.TargetDir != "" {
		return []string{cargo.Build.TargetDir}
	}
	return nil
}

// detectPythonOutputs reads tool.poetry.build.target-dir from pyproject.toml
func (bad *BuildArtifactDetector) detectPythonOutputs() []string {
	var pyproject struct {
		Tool struct {
			Poetry struct {
				Build struct {
					TargetDir string `toml:"target-dir"`
				} `toml:"build"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if bad.readTOML("pyproject.toml", &pyproject) && pyproject.Tool.Poetry.Build.TargetDir != "" {
		return []string{pyproject.Tool.Poetry.Build.TargetDir}
	}
	return nil
}

func (bad *BuildArtifactDetector) readJSON(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(bad.projectRoot, name))
	return err == nil && json.Unmarshal(data, v) == nil
}

func (bad *BuildArtifactDetector) readTOML(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(bad.projectRoot, name))
	return err == nil && toml.Unmarshal(data, v) == nil
}
