package parser

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/standardbeagle/smellscan/internal/errors"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		filename string
		expected syntax.Language
	}{
		{"app.js", syntax.JavaScript},
		{"component.JSX", syntax.JavaScript},
		{"esm.mjs", syntax.JavaScript},
		{"types.ts", syntax.TypeScript},
		{"view.tsx", syntax.TSX},
		{"main.go", syntax.Go},
		{"script.py", syntax.Python},
		{"Main.java", syntax.Java},
		{"Program.cs", syntax.CSharp},
		{"lib.c", syntax.Cpp},
		{"lib.hpp", syntax.Cpp},
		{"main.rs", syntax.Rust},
		{"index.php", syntax.PHP},
		{"build.zig", syntax.Zig},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			lang, err := DetectLanguage(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lang)
			assert.True(t, IsSupported(tt.filename))
		})
	}

	_, err := DetectLanguage("README.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
	assert.False(t, IsSupported("Makefile"))
}

func TestParseLanguage(t *testing.T) {
	for name, expected := range map[string]syntax.Language{
		"javascript": syntax.JavaScript,
		"JS":         syntax.JavaScript,
		"ts":         syntax.TypeScript,
		"tsx":        syntax.TSX,
		" py ":       syntax.Python,
		"c++":        syntax.Cpp,
		"golang":     syntax.Go,
		"zig":        syntax.Zig,
	} {
		lang, err := ParseLanguage(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, lang, name)
	}

	_, err := ParseLanguage("cobol")
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".cjs", ".js", ".jsx", ".mjs"}, Extensions(syntax.JavaScript))
	assert.Equal(t, []string{".zig"}, Extensions(syntax.Zig))
}

func TestParseEveryLanguage(t *testing.T) {
	sources := map[syntax.Language]string{
		syntax.JavaScript: "function f(a) { return a + 1; }",
		syntax.TypeScript: "function f(a: number): number { return a + 1; }",
		syntax.TSX:        "const C = () => <div>{1}</div>;",
		syntax.Go:         "package main\n\nfunc f(a int) int { return a + 1 }\n",
		syntax.Python:     "def f(a):\n    return a + 1\n",
		syntax.Java:       "class A { int f(int a) { return a + 1; } }",
		syntax.CSharp:     "class A { int F(int a) { return a + 1; } }",
		syntax.Cpp:        "int f(int a) { return a + 1; }",
		syntax.Rust:       "fn f(a: i32) -> i32 { a + 1 }",
		syntax.PHP:        "<?php function f($a) { return $a + 1; }",
		syntax.Zig:        "fn f(a: i32) i32 { return a + 1; }",
	}

	p := New()
	for lang, src := range sources {
		t.Run(string(lang), func(t *testing.T) {
			f, err := p.Parse(lang, []byte(src))
			require.NoError(t, err)
			defer f.Close()

			root := f.Root()
			require.NotNil(t, root)
			assert.Equal(t, lang, f.Language)
			if lang != syntax.Zig {
				assert.False(t, f.HasErrors(), "unexpected syntax errors in %s", src)
			}
			assert.NotEmpty(t, root.Children())
		})
	}
}

func TestParseProgramKinds(t *testing.T) {
	roots := map[syntax.Language]string{
		syntax.JavaScript: "let x = 1;",
		syntax.Go:         "package main\n",
		syntax.Python:     "x = 1\n",
		syntax.Java:       "class A {}",
		syntax.CSharp:     "class A {}",
		syntax.Cpp:        "int x;",
		syntax.Rust:       "fn main() {}",
		syntax.PHP:        "<?php echo 1;",
	}
	for lang, src := range roots {
		f, err := Parse(lang, []byte(src))
		require.NoError(t, err)
		assert.Equal(t, syntax.KindProgram, f.Root().Kind(), "root of %s is %s", lang, f.Root().Type())
		f.Close()
	}
}

func TestParseFile(t *testing.T) {
	f, err := ParseFile("src/app.js", []byte("function add(a, b) { return a + b; }"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "src/app.js", f.Path)
	assert.Equal(t, syntax.JavaScript, f.Language)

	fn := f.Root().NamedChildren()[0]
	assert.Equal(t, syntax.KindFunctionDeclaration, fn.Kind())
	require.NotNil(t, fn.ChildByField("name"))
	assert.Equal(t, "add", fn.ChildByField("name").Text())
	assert.Equal(t, syntax.KindStatementBlock, fn.ChildByField("body").Kind())
	assert.Nil(t, fn.ChildByField("nonexistent"))

	_, err = ParseFile("notes.txt", []byte("hello"))
	var pe *serrors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "notes.txt", pe.FilePath)
}

func TestParseRecoversFromSyntaxErrors(t *testing.T) {
	f, err := Parse(syntax.JavaScript, []byte("function (((( {"))
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, f.HasErrors())
}

func TestParseUnsupportedLanguage(t *testing.T) {
	_, err := Parse(syntax.Language("cobol"), []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestAnonymousTokensAreInert(t *testing.T) {
	f, err := Parse(syntax.JavaScript, []byte("const g = function () { return a && b; };"))
	require.NoError(t, err)
	defer f.Close()

	var functionLike, logical int
	syntax.Walk(f.Root(), func(n syntax.Node, _ int) bool {
		if n.Kind().IsFunctionLike() {
			functionLike++
		}
		if n.Kind() == syntax.KindLogicalOperator {
			logical++
		}
		return true
	})
	// the "function" keyword token must not count as a second function
	assert.Equal(t, 1, functionLike)
	assert.Equal(t, 1, logical)
}

func TestConcurrentParsing(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lang := syntax.JavaScript
			if i%2 == 0 {
				lang = syntax.Python
			}
			src := "x = 1\n"
			if lang == syntax.JavaScript {
				src = "let x = 1;"
			}
			f, err := Parse(lang, []byte(src))
			if err != nil {
				errs <- err
				return
			}
			f.Close()
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestFileCloseIsIdempotent(t *testing.T) {
	f, err := Parse(syntax.Go, []byte("package x\n"))
	require.NoError(t, err)
	f.Close()
	assert.NotPanics(t, f.Close)
	assert.False(t, f.HasErrors())
}
