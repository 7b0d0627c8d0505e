package analysis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/standardbeagle/smellscan/internal/errors"
	"github.com/standardbeagle/smellscan/internal/parser"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

// parseJS parses JavaScript source and closes the tree when the test ends
func parseJS(t *testing.T, src string) syntax.Node {
	t.Helper()
	f, err := parser.Parse(syntax.JavaScript, []byte(src))
	require.NoError(t, err)
	t.Cleanup(f.Close)
	require.False(t, f.HasErrors(), "fixture does not parse cleanly:\n%s", src)
	return f.Root()
}

const smellySource = `function foo(a) {
  if (a) {
    if (a.b) {
      if (a.c) {
        if (a.d) {
          return 1;
        }
      }
    }
  }
  return 0;
  let tmp = 2;
}

function first() {
  let x = 1;
  let y = 2;
  return x + y;
}

function second() {
  let p = 1;
  let q = 2;
  return p + q;
}
`

func TestAnalyzeNilTree(t *testing.T) {
	issues, err := Analyze(nil)
	assert.Nil(t, issues)
	require.Error(t, err)

	var ae *serrors.AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "analyze", ae.Operation)
	assert.True(t, errors.Is(err, ErrNilTree))
}

func TestAnalyzeConcatenatesDetectorsInOrder(t *testing.T) {
	root := parseJS(t, smellySource)

	got, err := Analyze(root)
	require.NoError(t, err)

	var want []Issue
	want = append(want, DetectLongFunctions(root, DefaultLongFunctionThreshold)...)
	want = append(want, DetectDeepNesting(root, DefaultNestingThreshold)...)
	want = append(want, DetectDuplicateCode(root, DefaultDuplicateOptions())...)
	want = append(want, DetectDuplicateBlocks(root, DefaultBlockMinStatements)...)
	want = append(want, DetectDeadCode(root)...)
	want = append(want, DetectBadNaming(root)...)
	want = append(want, DetectCyclomaticComplexity(root, DefaultComplexityOptions())...)
	assert.Equal(t, want, got)

	counts := CountByKind(got)
	assert.Equal(t, 1, counts[DeepNesting])
	assert.Equal(t, 1, counts[DuplicateCode])
	assert.Equal(t, 1, counts[DeadCode])
	assert.Equal(t, 3, counts[CyclomaticComplexity])
	assert.Zero(t, counts[LongFunction])

	// kinds appear in detector order
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, int(got[i-1].Kind), int(got[i].Kind))
	}
}

func TestIssueRangesLieWithinTree(t *testing.T) {
	root := parseJS(t, smellySource)
	issues, err := Analyze(root)
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	for _, is := range issues {
		assert.True(t, root.Range().Contains(is.Range), "%s at %v outside tree %v", is.Kind, is.Range, root.Range())
		for _, loc := range is.Locations {
			assert.True(t, root.Range().Contains(loc))
		}
	}
}

func TestAnalyzerEnabledSubset(t *testing.T) {
	a := New(Options{Enabled: []IssueKind{BadNaming, DeadCode, BadNaming}})
	assert.Equal(t, []IssueKind{DeadCode, BadNaming}, a.Enabled())

	root := parseJS(t, smellySource)
	issues, err := a.Analyze(root)
	require.NoError(t, err)
	for _, is := range issues {
		assert.Contains(t, []IssueKind{DeadCode, BadNaming}, is.Kind)
	}
	assert.Equal(t, DeadCode, issues[0].Kind)
}

func TestAnalyzerOptionsDefaults(t *testing.T) {
	opts := New(Options{NestingThreshold: 5}).Options()
	assert.Equal(t, 5, opts.NestingThreshold)
	assert.Equal(t, DefaultLongFunctionThreshold, opts.LongFunctionThreshold)
	assert.Equal(t, DefaultDuplicateOptions(), opts.Duplicate)
	assert.Equal(t, DefaultBlockMinStatements, opts.BlockMinStatements)
	assert.Equal(t, DefaultComplexityOptions(), opts.Complexity)
	assert.Len(t, New(Options{}).Enabled(), len(IssueKinds()))
}

func TestAnalyzerThresholdsApply(t *testing.T) {
	root := parseJS(t, smellySource)
	issues, err := New(Options{NestingThreshold: 1}).Analyze(root)
	require.NoError(t, err)
	assert.Equal(t, 3, CountByKind(issues)[DeepNesting])
}

func TestIssueJSON(t *testing.T) {
	is := Issue{
		Kind:    DeadCode,
		Message: "Unreachable code detected",
		Range:   syntax.Range{Start: syntax.Position{Row: 2, Column: 2}, End: syntax.Position{Row: 2, Column: 12}},
	}
	raw, err := json.Marshal(is)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"dead-code","message":"Unreachable code detected","start":{"row":2,"column":2},"end":{"row":2,"column":12}}`, string(raw))

	is.Locations = []syntax.Range{is.Range}
	raw, err = json.Marshal(is)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"locations":[{"start":{"row":2,"column":2},"end":{"row":2,"column":12}}]`)

	var back Issue
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, is, back)
}

func TestIssueKinds(t *testing.T) {
	names := DetectorNames()
	assert.Equal(t, []string{
		"long-function", "deep-nesting", "duplicate-code", "duplicate-code-block",
		"dead-code", "bad-naming", "cyclomatic-complexity",
	}, names)

	for _, k := range IssueKinds() {
		parsed, ok := ParseIssueKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseIssueKind("style")
	assert.False(t, ok)

	var k IssueKind
	assert.Error(t, k.UnmarshalText([]byte("style")))
	_, err := IssueKind(99).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "IssueKind(99)", IssueKind(99).String())
}

func TestMessages(t *testing.T) {
	issues := []Issue{
		{Kind: DeadCode, Message: "a"},
		{Kind: BadNaming, Message: "b"},
	}
	assert.Equal(t, []string{"a", "b"}, Messages(issues))
	assert.Empty(t, Messages(nil))
}

func TestDetectorsListing(t *testing.T) {
	infos := Detectors()
	require.Len(t, infos, len(IssueKinds()))
	for i, info := range infos {
		assert.Equal(t, IssueKind(i), info.Kind)
		assert.Equal(t, info.Kind.String(), info.Name)
		assert.NotEmpty(t, info.Description)
	}
}
