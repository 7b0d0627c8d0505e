package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/smellscan/internal/syntax"
)

// ErrUnsupportedLanguage is returned for file types and names without a grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

var extensionLanguages = map[string]syntax.Language{
	".js":    syntax.JavaScript,
	".jsx":   syntax.JavaScript,
	".mjs":   syntax.JavaScript,
	".cjs":   syntax.JavaScript,
	".ts":    syntax.TypeScript,
	".mts":   syntax.TypeScript,
	".cts":   syntax.TypeScript,
	".tsx":   syntax.TSX,
	".go":    syntax.Go,
	".py":    syntax.Python,
	".java":  syntax.Java,
	".cs":    syntax.CSharp,
	".c":     syntax.Cpp,
	".h":     syntax.Cpp,
	".cc":    syntax.Cpp,
	".cpp":   syntax.Cpp,
	".cxx":   syntax.Cpp,
	".hpp":   syntax.Cpp,
	".rs":    syntax.Rust,
	".php":   syntax.PHP,
	".phtml": syntax.PHP,
	".zig":   syntax.Zig,
}

var languageAliases = map[string]syntax.Language{
	"js":      syntax.JavaScript,
	"jsx":     syntax.JavaScript,
	"node":    syntax.JavaScript,
	"ts":      syntax.TypeScript,
	"golang":  syntax.Go,
	"py":      syntax.Python,
	"python3": syntax.Python,
	"cs":      syntax.CSharp,
	"c#":      syntax.CSharp,
	"c":       syntax.Cpp,
	"c++":     syntax.Cpp,
	"cxx":     syntax.Cpp,
	"rs":      syntax.Rust,
}

// DetectLanguage maps a filename to its language by extension.
func DetectLanguage(filename string) (syntax.Language, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang, nil
	}
	return "", fmt.Errorf("%w: file type %q of %s", ErrUnsupportedLanguage, ext, filename)
}

// IsSupported reports whether filename has a recognised extension.
func IsSupported(filename string) bool {
	_, ok := extensionLanguages[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ParseLanguage accepts a canonical language name or a common alias.
func ParseLanguage(name string) (syntax.Language, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if syntax.VocabularyFor(syntax.Language(n)) != nil {
		return syntax.Language(n), nil
	}
	if lang, ok := languageAliases[n]; ok {
		return lang, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
}

// Extensions returns the recognised extensions of lang, sorted.
func Extensions(lang syntax.Language) []string {
	var out []string
	for ext, l := range extensionLanguages {
		if l == lang {
			out = append(out, ext)
		}
	}
	sort.Strings(out)
	return out
}

// LanguageNames returns the name of every supported language, in
// syntax.Languages order.
func LanguageNames() []string {
	langs := syntax.Languages()
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return out
}
