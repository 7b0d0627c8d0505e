// Package parser turns source text into syntax trees using the bundled
// tree-sitter grammars.
package parser

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/standardbeagle/smellscan/internal/debug"
	serrors "github.com/standardbeagle/smellscan/internal/errors"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

// parserPoolData encapsulates the pool and grammar for a language
type parserPoolData struct {
	pool     sync.Pool
	once     sync.Once
	grammar  func() unsafe.Pointer
	language *tree_sitter.Language
}

// Language-specific parser pools. A tree-sitter parser is not safe for
// concurrent use, so each goroutine borrows one for the duration of a parse.
var parserPools = map[syntax.Language]*parserPoolData{
	syntax.JavaScript: {grammar: tree_sitter_javascript.Language},
	syntax.TypeScript: {grammar: tree_sitter_typescript.LanguageTypescript},
	syntax.TSX:        {grammar: tree_sitter_typescript.LanguageTSX},
	syntax.Go:         {grammar: tree_sitter_go.Language},
	syntax.Python:     {grammar: tree_sitter_python.Language},
	syntax.Java:       {grammar: tree_sitter_java.Language},
	syntax.CSharp:     {grammar: tree_sitter_csharp.Language},
	syntax.Cpp:        {grammar: tree_sitter_cpp.Language},
	syntax.Rust:       {grammar: tree_sitter_rust.Language},
	syntax.PHP:        {grammar: tree_sitter_php.LanguagePHP},
	syntax.Zig:        {grammar: tree_sitter_zig.Language},
}

// get borrows a parser, initialising the pool on first use
func (d *parserPoolData) get() *tree_sitter.Parser {
	d.once.Do(func() {
		d.language = tree_sitter.NewLanguage(d.grammar())
		d.pool.New = func() any {
			p := tree_sitter.NewParser()
			if err := p.SetLanguage(d.language); err != nil {
				p.Close()
				return nil
			}
			return p
		}
	})
	p, _ := d.pool.Get().(*tree_sitter.Parser)
	return p
}

func (d *parserPoolData) put(p *tree_sitter.Parser) {
	if p != nil {
		p.Reset()
		d.pool.Put(p)
	}
}

// Parser parses source text into Files. The zero value is ready to use and
// safe for concurrent use.
type Parser struct{}

// New returns a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse parses content as lang.
func (p *Parser) Parse(lang syntax.Language, content []byte) (*File, error) {
	return p.parse("", lang, content)
}

// ParseFile detects the language of filename, then parses content.
func (p *Parser) ParseFile(filename string, content []byte) (*File, error) {
	lang, err := DetectLanguage(filename)
	if err != nil {
		return nil, serrors.NewParseError("", filename, err)
	}
	return p.parse(filename, lang, content)
}

func (p *Parser) parse(path string, lang syntax.Language, content []byte) (*File, error) {
	data, ok := parserPools[lang]
	vocab := syntax.VocabularyFor(lang)
	if !ok || vocab == nil {
		return nil, serrors.NewParseError(string(lang), path, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang))
	}

	tsp := data.get()
	if tsp == nil {
		return nil, serrors.NewParseError(string(lang), path, errors.New("grammar version incompatible with tree-sitter runtime"))
	}
	tree := tsp.Parse(content, nil)
	data.put(tsp)
	if tree == nil {
		return nil, serrors.NewParseError(string(lang), path, errors.New("parser returned no tree"))
	}

	f := &File{
		Path:     path,
		Language: lang,
		Source:   content,
		tree:     tree,
	}
	f.root = syntax.FromTreeSitter(tree.RootNode(), content, vocab)
	debug.Log("PARSE", "parsed %s (%s, %d bytes, errors=%v)", displayPath(path), lang, len(content), f.HasErrors())
	return f, nil
}

func displayPath(path string) string {
	if path == "" {
		return "<memory>"
	}
	return path
}

// File is a parsed source file. It owns the underlying tree; nodes obtained
// from Root must not be used after Close.
type File struct {
	Path     string
	Language syntax.Language
	Source   []byte

	tree *tree_sitter.Tree
	root syntax.Node
}

// Root returns the root node of the tree.
func (f *File) Root() syntax.Node {
	return f.root
}

// HasErrors reports whether the grammar had to recover from syntax errors.
// Detectors still run over recovered trees.
func (f *File) HasErrors() bool {
	if f.tree == nil {
		return false
	}
	return f.tree.RootNode().HasError()
}

// Close releases the tree. It is safe to call more than once.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// defaultParser backs the package-level helpers
var defaultParser = New()

// Parse parses content as lang with the shared parser.
func Parse(lang syntax.Language, content []byte) (*File, error) {
	return defaultParser.Parse(lang, content)
}

// ParseFile detects the language of filename and parses content with the
// shared parser.
func ParseFile(filename string, content []byte) (*File, error) {
	return defaultParser.ParseFile(filename, content)
}
