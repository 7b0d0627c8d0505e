package syntax

// Type tables for the bundled tree-sitter grammars. JavaScript, TypeScript
// and TSX share one table; the TypeScript grammars extend the JavaScript one
// without renaming any of the types listed here.

var ecmaScriptTypes = map[string]Kind{
	"program":                        KindProgram,
	"function_declaration":           KindFunctionDeclaration,
	"generator_function_declaration": KindFunctionDeclaration,
	"method_definition":              KindMethodDefinition,
	"function":                       KindFunctionExpression,
	"function_expression":            KindFunctionExpression,
	"generator_function":             KindFunctionExpression,
	"arrow_function":                 KindArrowFunction,
	"statement_block":                KindStatementBlock,
	"expression_statement":           KindExpressionStatement,

	"if_statement":       KindIf,
	"for_statement":      KindFor,
	"for_in_statement":   KindForIn,
	"while_statement":    KindWhile,
	"do_statement":       KindDoWhile,
	"switch_statement":   KindSwitch,
	"switch_case":        KindSwitchCase,
	"switch_default":     KindSwitchDefault,
	"try_statement":      KindTry,
	"catch_clause":       KindCatch,
	"ternary_expression": KindTernary,
	"&&":                 KindLogicalOperator,
	"||":                 KindLogicalOperator,

	"return_statement":   KindReturn,
	"throw_statement":    KindThrow,
	"break_statement":    KindBreak,
	"continue_statement": KindContinue,

	"identifier":                    KindIdentifier,
	"property_identifier":           KindPropertyIdentifier,
	"shorthand_property_identifier": KindShorthandPropertyIdentifier,
	"number":                        KindNumber,
	"string":                        KindString,
	"string_fragment":               KindStringFragment,
	"template_string":               KindTemplateString,
	"template_substitution":         KindTemplateSubstitution,
	"true":                          KindBoolean,
	"false":                         KindBoolean,
	"null":                          KindNull,
	"comment":                       KindComment,
	"html_comment":                  KindComment,
}

// tree-sitter-go wraps block statements in statement_list; both levels are
// mapped so either grammar revision is scanned.
var goTypes = map[string]Kind{
	"source_file":          KindProgram,
	"function_declaration": KindFunctionDeclaration,
	"method_declaration":   KindMethodDefinition,
	"func_literal":         KindFunctionExpression,
	"block":                KindStatementBlock,
	"statement_list":       KindStatementBlock,
	"expression_statement": KindExpressionStatement,

	"if_statement":                KindIf,
	"for_statement":               KindFor,
	"expression_switch_statement": KindSwitch,
	"type_switch_statement":       KindSwitch,
	"select_statement":            KindSwitch,
	"expression_case":             KindSwitchCase,
	"type_case":                   KindSwitchCase,
	"communication_case":          KindSwitchCase,
	"default_case":                KindSwitchDefault,
	"&&":                          KindLogicalOperator,
	"||":                          KindLogicalOperator,

	"return_statement":   KindReturn,
	"break_statement":    KindBreak,
	"continue_statement": KindContinue,

	"identifier":                 KindIdentifier,
	"field_identifier":           KindPropertyIdentifier,
	"int_literal":                KindNumber,
	"float_literal":              KindNumber,
	"imaginary_literal":          KindNumber,
	"interpreted_string_literal": KindString,
	"raw_string_literal":         KindString,
	"rune_literal":               KindString,
	"true":                       KindBoolean,
	"false":                      KindBoolean,
	"nil":                        KindNull,
	"comment":                    KindComment,
}

var pythonTypes = map[string]Kind{
	"module":               KindProgram,
	"function_definition":  KindFunctionDeclaration,
	"lambda":               KindArrowFunction,
	"block":                KindStatementBlock,
	"expression_statement": KindExpressionStatement,

	"if_statement":           KindIf,
	"elif_clause":            KindElseIf,
	"for_statement":          KindFor,
	"while_statement":        KindWhile,
	"match_statement":        KindSwitch,
	"case_clause":            KindSwitchCase,
	"try_statement":          KindTry,
	"except_clause":          KindCatch,
	"except_group_clause":    KindCatch,
	"conditional_expression": KindTernary,
	"and":                    KindLogicalOperator,
	"or":                     KindLogicalOperator,

	"return_statement":   KindReturn,
	"raise_statement":    KindThrow,
	"break_statement":    KindBreak,
	"continue_statement": KindContinue,

	"identifier":          KindIdentifier,
	"integer":             KindNumber,
	"float":               KindNumber,
	"string":              KindString,
	"concatenated_string": KindString,
	"string_content":      KindStringFragment,
	"interpolation":       KindTemplateSubstitution,
	"true":                KindBoolean,
	"false":               KindBoolean,
	"none":                KindNull,
	"comment":             KindComment,
}

var javaTypes = map[string]Kind{
	"program":                 KindProgram,
	"method_declaration":      KindMethodDefinition,
	"constructor_declaration": KindMethodDefinition,
	"lambda_expression":       KindArrowFunction,
	"block":                   KindStatementBlock,
	"constructor_body":        KindStatementBlock,
	"expression_statement":    KindExpressionStatement,

	"if_statement":                 KindIf,
	"for_statement":                KindFor,
	"enhanced_for_statement":       KindForIn,
	"while_statement":              KindWhile,
	"do_statement":                 KindDoWhile,
	"switch_expression":            KindSwitch,
	"switch_statement":             KindSwitch,
	"switch_label":                 KindSwitchCase,
	"try_statement":                KindTry,
	"try_with_resources_statement": KindTry,
	"catch_clause":                 KindCatch,
	"ternary_expression":           KindTernary,
	"&&":                           KindLogicalOperator,
	"||":                           KindLogicalOperator,

	"return_statement":   KindReturn,
	"throw_statement":    KindThrow,
	"break_statement":    KindBreak,
	"continue_statement": KindContinue,

	"identifier":                     KindIdentifier,
	"decimal_integer_literal":        KindNumber,
	"hex_integer_literal":            KindNumber,
	"octal_integer_literal":          KindNumber,
	"binary_integer_literal":         KindNumber,
	"decimal_floating_point_literal": KindNumber,
	"hex_floating_point_literal":     KindNumber,
	"string_literal":                 KindString,
	"character_literal":              KindString,
	"true":                           KindBoolean,
	"false":                          KindBoolean,
	"null_literal":                   KindNull,
	"line_comment":                   KindComment,
	"block_comment":                  KindComment,
}

var csharpTypes = map[string]Kind{
	"compilation_unit":            KindProgram,
	"method_declaration":          KindMethodDefinition,
	"constructor_declaration":     KindMethodDefinition,
	"local_function_statement":    KindFunctionDeclaration,
	"anonymous_method_expression": KindFunctionExpression,
	"lambda_expression":           KindArrowFunction,
	"block":                       KindStatementBlock,
	"expression_statement":        KindExpressionStatement,

	"if_statement":           KindIf,
	"for_statement":          KindFor,
	"foreach_statement":      KindForIn,
	"while_statement":        KindWhile,
	"do_statement":           KindDoWhile,
	"switch_statement":       KindSwitch,
	"switch_section":         KindSwitchCase,
	"try_statement":          KindTry,
	"catch_clause":           KindCatch,
	"conditional_expression": KindTernary,
	"&&":                     KindLogicalOperator,
	"||":                     KindLogicalOperator,

	"return_statement":   KindReturn,
	"throw_statement":    KindThrow,
	"throw_expression":   KindThrow,
	"break_statement":    KindBreak,
	"continue_statement": KindContinue,

	"identifier":                     KindIdentifier,
	"integer_literal":                KindNumber,
	"real_literal":                   KindNumber,
	"string_literal":                 KindString,
	"verbatim_string_literal":        KindString,
	"raw_string_literal":             KindString,
	"interpolated_string_expression": KindTemplateString,
	"character_literal":              KindString,
	"boolean_literal":                KindBoolean,
	"null_literal":                   KindNull,
	"comment":                        KindComment,
}

var cppTypes = map[string]Kind{
	"translation_unit":     KindProgram,
	"function_definition":  KindFunctionDeclaration,
	"lambda_expression":    KindArrowFunction,
	"compound_statement":   KindStatementBlock,
	"expression_statement": KindExpressionStatement,

	"if_statement":           KindIf,
	"for_statement":          KindFor,
	"for_range_loop":         KindForIn,
	"while_statement":        KindWhile,
	"do_statement":           KindDoWhile,
	"switch_statement":       KindSwitch,
	"case_statement":         KindSwitchCase,
	"try_statement":          KindTry,
	"catch_clause":           KindCatch,
	"conditional_expression": KindTernary,
	"&&":                     KindLogicalOperator,
	"||":                     KindLogicalOperator,
	"and":                    KindLogicalOperator,
	"or":                     KindLogicalOperator,

	"return_statement":   KindReturn,
	"throw_statement":    KindThrow,
	"throw_expression":   KindThrow,
	"break_statement":    KindBreak,
	"continue_statement": KindContinue,

	"identifier":          KindIdentifier,
	"field_identifier":    KindPropertyIdentifier,
	"number_literal":      KindNumber,
	"string_literal":      KindString,
	"raw_string_literal":  KindString,
	"char_literal":        KindString,
	"concatenated_string": KindString,
	"true":                KindBoolean,
	"false":               KindBoolean,
	"null":                KindNull,
	"nullptr":             KindNull,
	"comment":             KindComment,
}

// Rust is expression oriented: exits appear wrapped in expression_statement.
var rustTypes = map[string]Kind{
	"source_file":          KindProgram,
	"function_item":        KindFunctionDeclaration,
	"closure_expression":   KindArrowFunction,
	"block":                KindStatementBlock,
	"expression_statement": KindExpressionStatement,

	"if_expression":    KindIf,
	"for_expression":   KindFor,
	"while_expression": KindWhile,
	"loop_expression":  KindWhile,
	"match_expression": KindSwitch,
	"match_arm":        KindSwitchCase,
	"&&":               KindLogicalOperator,
	"||":               KindLogicalOperator,

	"return_expression":   KindReturn,
	"break_expression":    KindBreak,
	"continue_expression": KindContinue,

	"identifier":         KindIdentifier,
	"field_identifier":   KindPropertyIdentifier,
	"integer_literal":    KindNumber,
	"float_literal":      KindNumber,
	"string_literal":     KindString,
	"raw_string_literal": KindString,
	"char_literal":       KindString,
	"boolean_literal":    KindBoolean,
	"line_comment":       KindComment,
	"block_comment":      KindComment,
}

var phpTypes = map[string]Kind{
	"program":              KindProgram,
	"function_definition":  KindFunctionDeclaration,
	"method_declaration":   KindMethodDefinition,
	"anonymous_function":   KindFunctionExpression,
	"arrow_function":       KindArrowFunction,
	"compound_statement":   KindStatementBlock,
	"expression_statement": KindExpressionStatement,

	"if_statement":           KindIf,
	"else_if_clause":         KindElseIf,
	"for_statement":          KindFor,
	"foreach_statement":      KindForIn,
	"while_statement":        KindWhile,
	"do_statement":           KindDoWhile,
	"switch_statement":       KindSwitch,
	"case_statement":         KindSwitchCase,
	"default_statement":      KindSwitchDefault,
	"try_statement":          KindTry,
	"catch_clause":           KindCatch,
	"conditional_expression": KindTernary,
	"&&":                     KindLogicalOperator,
	"||":                     KindLogicalOperator,
	"and":                    KindLogicalOperator,
	"or":                     KindLogicalOperator,

	"return_statement":   KindReturn,
	"throw_expression":   KindThrow,
	"break_statement":    KindBreak,
	"continue_statement": KindContinue,

	"name":            KindIdentifier,
	"integer":         KindNumber,
	"float":           KindNumber,
	"string":          KindString,
	"encapsed_string": KindString,
	"boolean":         KindBoolean,
	"null":            KindNull,
	"comment":         KindComment,
}

// Zig coverage is partial: the grammar models most control flow as
// expressions and only the forms below are classified.
var zigTypes = map[string]Kind{
	"source_file":          KindProgram,
	"function_declaration": KindFunctionDeclaration,
	"block":                KindStatementBlock,
	"expression_statement": KindExpressionStatement,

	"if_statement":      KindIf,
	"if_expression":     KindIf,
	"for_statement":     KindFor,
	"for_expression":    KindFor,
	"while_statement":   KindWhile,
	"while_expression":  KindWhile,
	"switch_expression": KindSwitch,
	"switch_case":       KindSwitchCase,
	"and":               KindLogicalOperator,
	"or":                KindLogicalOperator,

	"return_expression":   KindReturn,
	"break_expression":    KindBreak,
	"continue_expression": KindContinue,

	"identifier": KindIdentifier,
	"integer":    KindNumber,
	"float":      KindNumber,
	"string":     KindString,
	"character":  KindString,
	"boolean":    KindBoolean,
	"null":       KindNull,
	"comment":    KindComment,
}
