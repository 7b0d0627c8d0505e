package syntax

import "sort"

// Language identifies a grammar with a known vocabulary.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Go         Language = "go"
	Python     Language = "python"
	Java       Language = "java"
	CSharp     Language = "csharp"
	Cpp        Language = "cpp"
	Rust       Language = "rust"
	PHP        Language = "php"
	Zig        Language = "zig"
)

// Vocabulary maps the node type strings of one grammar to Kind.
type Vocabulary struct {
	language Language
	kinds    map[string]Kind
}

// NewVocabulary builds a vocabulary from a type table. The table is copied.
func NewVocabulary(lang Language, table map[string]Kind) *Vocabulary {
	kinds := make(map[string]Kind, len(table))
	for t, k := range table {
		kinds[t] = k
	}
	return &Vocabulary{language: lang, kinds: kinds}
}

// Language returns the grammar the vocabulary describes.
func (v *Vocabulary) Language() Language {
	return v.language
}

// KindOf classifies a grammar type. A nil vocabulary classifies everything
// as KindOther.
func (v *Vocabulary) KindOf(nodeType string) Kind {
	if v == nil {
		return KindOther
	}
	return v.kinds[nodeType]
}

// Types returns the grammar types mapped to k, sorted.
func (v *Vocabulary) Types(k Kind) []string {
	var out []string
	for t, kk := range v.kinds {
		if kk == k {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

var vocabularies = map[Language]*Vocabulary{
	JavaScript: NewVocabulary(JavaScript, ecmaScriptTypes),
	TypeScript: NewVocabulary(TypeScript, ecmaScriptTypes),
	TSX:        NewVocabulary(TSX, ecmaScriptTypes),
	Go:         NewVocabulary(Go, goTypes),
	Python:     NewVocabulary(Python, pythonTypes),
	Java:       NewVocabulary(Java, javaTypes),
	CSharp:     NewVocabulary(CSharp, csharpTypes),
	Cpp:        NewVocabulary(Cpp, cppTypes),
	Rust:       NewVocabulary(Rust, rustTypes),
	PHP:        NewVocabulary(PHP, phpTypes),
	Zig:        NewVocabulary(Zig, zigTypes),
}

// VocabularyFor returns the built-in vocabulary of lang, or nil.
func VocabularyFor(lang Language) *Vocabulary {
	return vocabularies[lang]
}

// Languages returns every language with a built-in vocabulary, sorted.
func Languages() []Language {
	out := make([]Language, 0, len(vocabularies))
	for l := range vocabularies {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
