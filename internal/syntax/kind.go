package syntax

// Kind is the closed, language-independent classification of a node.
// Types a vocabulary does not know map to KindOther and are inert.
type Kind uint8

const (
	KindOther Kind = iota

	// Containers and callables
	KindProgram
	KindFunctionDeclaration
	KindMethodDefinition
	KindFunctionExpression
	KindArrowFunction
	KindStatementBlock
	KindExpressionStatement

	// Control flow
	KindIf
	KindElseIf // else-if clause that is not itself a nested if (Python elif, PHP elseif)
	KindFor
	KindForIn // for-in, for-of, foreach, range-for
	KindWhile
	KindDoWhile
	KindSwitch
	KindSwitchCase
	KindSwitchDefault
	KindTry
	KindCatch
	KindTernary
	KindLogicalOperator

	// Block exits
	KindReturn
	KindThrow
	KindBreak
	KindContinue

	// Leaves
	KindIdentifier
	KindPropertyIdentifier
	KindShorthandPropertyIdentifier
	KindNumber
	KindString
	KindStringFragment
	KindTemplateString
	KindTemplateSubstitution
	KindBoolean
	KindNull
	KindComment

	kindCount
)

var kindNames = [kindCount]string{
	KindOther:                       "other",
	KindProgram:                     "program",
	KindFunctionDeclaration:         "function_declaration",
	KindMethodDefinition:            "method_definition",
	KindFunctionExpression:          "function_expression",
	KindArrowFunction:               "arrow_function",
	KindStatementBlock:              "statement_block",
	KindExpressionStatement:         "expression_statement",
	KindIf:                          "if",
	KindElseIf:                      "else_if",
	KindFor:                         "for",
	KindForIn:                       "for_in",
	KindWhile:                       "while",
	KindDoWhile:                     "do_while",
	KindSwitch:                      "switch",
	KindSwitchCase:                  "switch_case",
	KindSwitchDefault:               "switch_default",
	KindTry:                         "try",
	KindCatch:                       "catch",
	KindTernary:                     "ternary",
	KindLogicalOperator:             "logical_operator",
	KindReturn:                      "return",
	KindThrow:                       "throw",
	KindBreak:                       "break",
	KindContinue:                    "continue",
	KindIdentifier:                  "identifier",
	KindPropertyIdentifier:          "property_identifier",
	KindShorthandPropertyIdentifier: "shorthand_property_identifier",
	KindNumber:                      "number",
	KindString:                      "string",
	KindStringFragment:              "string_fragment",
	KindTemplateString:              "template_string",
	KindTemplateSubstitution:        "template_substitution",
	KindBoolean:                     "boolean",
	KindNull:                        "null",
	KindComment:                     "comment",
}

// String returns the stable name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// IsNamedFunction reports declarations and methods, the callables that carry
// a name of their own.
func (k Kind) IsNamedFunction() bool {
	return k == KindFunctionDeclaration || k == KindMethodDefinition
}

// IsFunctionLike reports every callable form, anonymous ones included.
func (k Kind) IsFunctionLike() bool {
	switch k {
	case KindFunctionDeclaration, KindMethodDefinition, KindFunctionExpression, KindArrowFunction:
		return true
	}
	return false
}

// IsLoop reports every loop variant.
func (k Kind) IsLoop() bool {
	switch k {
	case KindFor, KindForIn, KindWhile, KindDoWhile:
		return true
	}
	return false
}

// IsNesting reports constructs that open a nesting level.
func (k Kind) IsNesting() bool {
	switch k {
	case KindIf, KindSwitch, KindTry, KindCatch:
		return true
	}
	return k.IsLoop()
}

// IsBlock reports statement containers scanned for unreachable code.
func (k Kind) IsBlock() bool {
	return k == KindProgram || k == KindStatementBlock
}

// IsExit reports statements after which the rest of a block cannot run.
func (k Kind) IsExit() bool {
	switch k {
	case KindReturn, KindThrow, KindBreak, KindContinue:
		return true
	}
	return false
}

// IsName reports identifier-like leaves that carry a user-chosen name.
func (k Kind) IsName() bool {
	return k == KindIdentifier || k == KindPropertyIdentifier
}
