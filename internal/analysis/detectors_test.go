package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/smellscan/internal/syntax"
)

// functionWithBody returns a function whose body spans exactly rows rows
func functionWithBody(name string, rows int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "function %s() {\n", name)
	for i := 1; i < rows; i++ {
		b.WriteString("  work();\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func TestDetectLongFunctions(t *testing.T) {
	src := functionWithBody("long", 32) + functionWithBody("exact", 30) +
		"class Service {\n  handle() {\n" + strings.Repeat("    step();\n", 31) + "  }\n}\n" +
		"const arrow = () => {\n" + strings.Repeat("  step();\n", 40) + "};\n"
	root := parseJS(t, src)

	issues := DetectLongFunctions(root, 30)
	require.Len(t, issues, 2)

	assert.Equal(t, LongFunction, issues[0].Kind)
	assert.Equal(t, "Function too long (32 lines)", issues[0].Message)
	// located at the whole function, not the body
	assert.Equal(t, syntax.Position{Row: 0, Column: 0}, issues[0].Start)

	assert.Equal(t, "Function too long (32 lines)", issues[1].Message)

	assert.Empty(t, DetectLongFunctions(root, 40))
}

func TestDetectLongFunctionsSkipsBodiless(t *testing.T) {
	// an overload-style declaration with no body field
	decl := syntax.Branch("function_declaration", syntax.KindFunctionDeclaration,
		syntax.Leaf("identifier", syntax.KindIdentifier, "over", syntax.Position{}).WithField("name"),
		syntax.Leaf("identifier", syntax.KindIdentifier, "end", syntax.Position{Row: 90}))
	assert.Empty(t, DetectLongFunctions(syntax.Branch("program", syntax.KindProgram, decl), 0))
}

func TestDetectDeepNestingScenario(t *testing.T) {
	src := "function foo() { if(a){if(b){if(c){if(d){return 1;}}}}}"
	root := parseJS(t, src)

	issues := DetectDeepNesting(root, 3)
	require.Len(t, issues, 1)
	assert.Equal(t, DeepNesting, issues[0].Kind)
	assert.Equal(t, "Code is nested too deeply (4 levels)", issues[0].Message)
	assert.Equal(t, uint32(strings.Index(src, "if(d)")), issues[0].Start.Column)
}

func TestDetectDeepNestingSiblingsSeeOuterDepth(t *testing.T) {
	src := `function f() {
  if (a) {
    if (b) {}
  }
  if (c) {}
  while (d) { for (const e of f) { try {} catch (err) {} } }
}`
	root := parseJS(t, src)

	issues := DetectDeepNesting(root, 1)
	var messages []string
	for _, is := range issues {
		messages = append(messages, is.Message)
	}
	// if(b)=2, for-of=2, try=3, catch=4 (catch sits inside try)
	assert.Equal(t, []string{
		"Code is nested too deeply (2 levels)",
		"Code is nested too deeply (2 levels)",
		"Code is nested too deeply (3 levels)",
		"Code is nested too deeply (4 levels)",
	}, messages)

	assert.Empty(t, DetectDeepNesting(root, 4))
}

func TestDetectDuplicateCodeScenario(t *testing.T) {
	src := `function a() {
  let x = 1;
  let y = 2;
  return x + y;
}
function b() {
  let p = 1;
  let q = 2;
  return p + q;
}
function c() {
  let p = 1;
  let q = 2;
  return p * q;
}`
	root := parseJS(t, src)

	issues := DetectDuplicateCode(root, DefaultDuplicateOptions())
	require.Len(t, issues, 1)
	is := issues[0]
	assert.Equal(t, DuplicateCode, is.Kind)
	assert.Equal(t, "Duplicate code detected in 2 places (similar function bodies).", is.Message)
	require.Len(t, is.Locations, 2)
	assert.Equal(t, is.Range, is.Locations[0])
	assert.Equal(t, uint32(0), is.Locations[0].Start.Row)
	assert.Equal(t, uint32(5), is.Locations[1].Start.Row)
}

func TestDetectDuplicateCodeIgnoresLiteralValues(t *testing.T) {
	src := `const first = function (items) {
  const label = "total";
  let sum = 10;
  for (const item of items) { sum += item.price * 2; }
  return label + sum;
};
const second = (rows) => {
  const title = 'grand';
  let acc = 99;
  for (const row of rows) { acc += row.cost * 7; }
  return title + acc;
};
class Other {
  compute(values) {
    const name = "x";
    let n = 0;
    for (const v of values) { n += v.amount * 3; }
    return name + n;
  }
}`
	root := parseJS(t, src)

	issues := DetectDuplicateCode(root, DefaultDuplicateOptions())
	require.Len(t, issues, 1)
	assert.Len(t, issues[0].Locations, 3)
	assert.Contains(t, issues[0].Message, "3 places")
}

func TestDetectDuplicateCodeThresholds(t *testing.T) {
	src := `function a() { return 1; }
function b() { return 2; }
function c() {
  return 1;


}
function d() {
  return 2;


}`
	root := parseJS(t, src)
	// one-liners are below MinLines; the shapes of c and d are short
	assert.Empty(t, DetectDuplicateCode(root, DuplicateOptions{MinLines: 4, MinChars: 60}))
	issues := DetectDuplicateCode(root, DuplicateOptions{MinLines: 4, MinChars: 1})
	require.Len(t, issues, 1)
	assert.Len(t, issues[0].Locations, 2)
	issues = DetectDuplicateCode(root, DuplicateOptions{MinLines: 0, MinChars: 1})
	require.Len(t, issues, 1)
	assert.Len(t, issues[0].Locations, 4)
}

func TestDetectDuplicateBlocks(t *testing.T) {
	src := `function a() {
  log(1);
  log(2);
}
function b() {
  log(1);
  log(2);
}
function c() {
  log(1);
}`
	root := parseJS(t, src)

	issues := DetectDuplicateBlocks(root, 2)
	require.Len(t, issues, 4)
	for _, is := range issues {
		assert.Equal(t, DuplicateCodeBlock, is.Kind)
		assert.Equal(t, "Duplicate code block detected (2 occurrences)", is.Message)
		assert.Empty(t, is.Locations)
	}
	// first group: the two functions, second group: their bodies
	assert.Equal(t, uint32(0), issues[0].Start.Row)
	assert.Equal(t, uint32(0), issues[0].Start.Column)
	assert.Equal(t, uint32(4), issues[1].Start.Row)
	assert.Equal(t, uint32(0), issues[2].Start.Row)
	assert.Equal(t, uint32(13), issues[2].Start.Column)
	assert.Equal(t, uint32(4), issues[3].Start.Row)

	assert.Empty(t, DetectDuplicateBlocks(root, 4))
}

func TestDetectDeadCodeScenario(t *testing.T) {
	src := "function f() {\n  return 1;\n  let x = 2;\n}"
	root := parseJS(t, src)

	issues := DetectDeadCode(root)
	require.Len(t, issues, 1)
	assert.Equal(t, DeadCode, issues[0].Kind)
	assert.Equal(t, "Unreachable code detected", issues[0].Message)
	assert.Equal(t, syntax.Position{Row: 2, Column: 2}, issues[0].Start)
	assert.Equal(t, syntax.Position{Row: 2, Column: 12}, issues[0].End)
}

func TestDetectDeadCodeCases(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected int
	}{
		{"statement before return", "function f() { g(); return 1; }", 0},
		{"comment after return", "function f() {\n  return 1;\n  // trailing note\n  let x = 2;\n}", 1},
		{"throw at top level", "throw new Error('x');\nfoo();\nbar();", 2},
		{"break in loop", "for (;;) { break; step(); }", 1},
		{"continue in loop", "while (x) { continue; a(); b(); }", 2},
		{"nested block starts fresh", "function f() { if (a) { return; } g(); }", 0},
		{"exit nested before flip", "function f() { { return; } g(); return; h(); }", 1},
		{"second return is dead", "function f() { return 1; return 2; }", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, DetectDeadCode(parseJS(t, tt.src)), tt.expected)
		})
	}
}

func TestDetectDeadCodeExpressionExits(t *testing.T) {
	// return as an expression statement, the way Rust and PHP grammars shape it
	ret := syntax.Branch("return_expression", syntax.KindReturn, syntax.Token("return", syntax.Position{Row: 1}))
	wrapped := syntax.Branch("expression_statement", syntax.KindExpressionStatement, ret, syntax.Token(";", syntax.Position{Row: 1, Column: 6}))
	after := syntax.Branch("expression_statement", syntax.KindExpressionStatement, syntax.Leaf("identifier", syntax.KindIdentifier, "x", syntax.Position{Row: 2}))
	block := syntax.Branch("block", syntax.KindStatementBlock, wrapped, after)

	issues := DetectDeadCode(block)
	require.Len(t, issues, 1)
	assert.Equal(t, uint32(2), issues[0].Start.Row)
}

func TestDetectBadNaming(t *testing.T) {
	src := `let food = 1;
let foo = 2;
for (let i = 0; i < 3; i++) {}
let x = 3;
config.tmp = 4;
let data = [];
let jk = 5;`
	root := parseJS(t, src)

	messages := Messages(DetectBadNaming(root))
	assert.Equal(t, []string{
		`Suspicious variable name: "foo"`,
		`Suspicious variable name: "x"`,
		`Suspicious variable name: "tmp"`,
		`Suspicious variable name: "data"`,
	}, messages)
	for _, m := range messages {
		assert.NotEqual(t, `Suspicious variable name: "food"`, m)
	}
}

func TestDetectBadNamingEachOccurrence(t *testing.T) {
	root := parseJS(t, "let q = 1;\nuse(q);\nuse(q);")
	issues := DetectBadNaming(root)
	require.Len(t, issues, 3)
	assert.Equal(t, uint32(0), issues[0].Start.Row)
	assert.Equal(t, uint32(2), issues[2].Start.Row)
}

func TestIsSuspiciousName(t *testing.T) {
	for _, name := range []string{"foo", "bar", "baz", "tmp", "data", "test", "x", "Q", "_", "é"} {
		assert.True(t, IsSuspiciousName(name), name)
	}
	for _, name := range []string{"i", "j", "k", "food", "testing", "metadata", "ok", ""} {
		assert.False(t, IsSuspiciousName(name), name)
	}
}

func complexityOf(t *testing.T, src string) []string {
	t.Helper()
	return Messages(DetectCyclomaticComplexity(parseJS(t, src), DefaultComplexityOptions()))
}

func TestCyclomaticComplexity(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"no branches", "function add(a, b) { return a + b; }",
			"Function 'add' has cyclomatic complexity 1 (low)"},
		{"single if", "function pos(n) { if (n > 0) { return true; } return false; }",
			"Function 'pos' has cyclomatic complexity 2 (low)"},
		{"else if", "function sign(n) { if (n > 0) { return 1; } else if (n < 0) { return -1; } else { return 0; } }",
			"Function 'sign' has cyclomatic complexity 3 (low)"},
		{"switch with three cases", "function s(x) { switch (x) { case 1: break; case 2: break; case 3: break; } }",
			"Function 's' has cyclomatic complexity 4 (low)"},
		{"switch with default", "function s(x) { switch (x) { case 1: break; default: break; } }",
			"Function 's' has cyclomatic complexity 3 (low)"},
		{"logical operators", "function l(a, b, c) { return a && b || c; }",
			"Function 'l' has cyclomatic complexity 3 (low)"},
		{"loops catch ternary", "function m(xs) { for (const x of xs) { while (x) {} } try {} catch (e) {} return xs ? 1 : 0; }",
			"Function 'm' has cyclomatic complexity 5 (moderate)"},
		{"do while and for", "function d(n) { do { n--; } while (n); for (let i = 0; i < n; i++) {} }",
			"Function 'd' has cyclomatic complexity 3 (low)"},
		{"anonymous function", "const g = function () { return 1; };",
			"Function '<anonymous>' has cyclomatic complexity 1 (low)"},
		{"method", "class A { run(x) { return x ? 1 : 2; } }",
			"Function 'run' has cyclomatic complexity 2 (low)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.expected}, complexityOf(t, tt.src))
		})
	}
}

func TestCyclomaticComplexityHigh(t *testing.T) {
	var b strings.Builder
	b.WriteString("function busy(v) {\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "  if (v === %d) { return %d; }\n", i, i)
	}
	b.WriteString("}\n")
	assert.Equal(t, []string{"Function 'busy' has cyclomatic complexity 11 (high)"}, complexityOf(t, b.String()))
}

func TestCyclomaticComplexityEveryFunction(t *testing.T) {
	src := "function outer() { const inner = () => a || b; return inner; }"
	assert.Equal(t, []string{
		"Function 'outer' has cyclomatic complexity 2 (low)",
		"Function '<anonymous>' has cyclomatic complexity 2 (low)",
	}, complexityOf(t, src))
}

func TestComplexityLabel(t *testing.T) {
	opts := ComplexityOptions{WarnAt: 8, NoteAt: 4}
	assert.Equal(t, "low", opts.Label(3))
	assert.Equal(t, "moderate", opts.Label(4))
	assert.Equal(t, "moderate", opts.Label(7))
	assert.Equal(t, "high", opts.Label(8))
}

func TestDetectorsOnDeepTreeWithoutRecursion(t *testing.T) {
	const depth = 10000
	n := syntax.Leaf("identifier", syntax.KindIdentifier, "v", syntax.Position{Row: depth})
	for i := depth - 1; i >= 0; i-- {
		block := syntax.Branch("statement_block", syntax.KindStatementBlock, n)
		n = syntax.Branch("if_statement", syntax.KindIf, syntax.Token("if", syntax.Position{Row: uint32(i)}), block)
	}
	fn := syntax.Branch("function_declaration", syntax.KindFunctionDeclaration,
		syntax.Leaf("identifier", syntax.KindIdentifier, "deep", syntax.Position{}).WithField("name"),
		syntax.Branch("statement_block", syntax.KindStatementBlock, n).WithField("body"))
	root := syntax.Branch("program", syntax.KindProgram, fn)

	issues, err := Analyze(root)
	require.NoError(t, err)

	counts := CountByKind(issues)
	assert.Equal(t, depth-DefaultNestingThreshold, counts[DeepNesting])
	assert.Equal(t, 1, counts[LongFunction])
	assert.Equal(t, 1, counts[CyclomaticComplexity])
	assert.Contains(t, Messages(issues), fmt.Sprintf("Function 'deep' has cyclomatic complexity %d (high)", depth+1))

	shape := Canonicalize(root)
	assert.True(t, strings.HasPrefix(shape, "program(function_declaration(ID,statement_block(if_statement(if,"))
	assert.Equal(t, strings.Count(shape, "("), strings.Count(shape, ")"))
}
