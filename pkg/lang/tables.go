package lang

// Shared tag groups. Most tree-sitter grammars agree on these names; the
// per-language rows below add or override the divergent ones.
var (
	commonBranch = NewSet(
		"if_statement", "if_expression",
		"while_statement", "while_expression",
		"for_statement", "for_expression",
		"case_statement", "catch_clause",
		"ternary_expression", "conditional_expression",
	)
	commonNesting = NewSet(
		"if_statement", "if_expression",
		"while_statement", "while_expression",
		"for_statement", "for_expression",
		"switch_statement", "match_expression",
		"try_statement",
	)
	commonJump = NewSet(
		"break_statement", "continue_statement",
		"return_statement", "throw_statement",
		"goto_statement",
	)
	commonBlock = NewSet(
		"if_statement", "if_expression",
		"while_statement", "while_expression",
		"for_statement", "for_expression",
		"switch_statement", "match_expression",
		"try_statement", "block", "statement_block", "compound_statement",
	)
	commonIdentifier = NewSet(
		"identifier", "type_identifier", "field_identifier", "property_identifier",
	)
	commonParams = NewSet(
		"parameter_list", "formal_parameters", "parameters",
	)
	commonNumber = NewSet(
		"number", "number_literal", "integer", "float",
		"int_literal", "float_literal", "integer_literal", "decimal_integer_literal",
		"decimal_floating_point_literal",
	)
	commonString = NewSet(
		"string", "string_literal", "raw_string_literal",
		"interpreted_string_literal", "template_string",
	)
	commonCall = NewSet(
		"call_expression", "function_call", "method_invocation",
		"invocation_expression", "call",
	)
	commonComment = NewSet("comment", "line_comment", "block_comment")
	commonReturn  = NewSet("return_statement", "return")
	commonBool    = NewSet("&&", "||", "and", "or")
)

func buildDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&Table{
		Language: "go",
		Function: NewSet("function_declaration", "method_declaration", "func_literal"),
		// type_declaration wraps type_spec; listing both would record
		// every Go type twice.
		Class: NewSet("type_spec"),
		Branch: commonBranch.Union(NewSet(
			"select_statement", "type_switch_statement", "expression_switch_statement",
			"expression_case", "type_case", "communication_case",
		)),
		Nesting: commonNesting.Union(NewSet(
			"expression_switch_statement", "type_switch_statement", "select_statement",
		)),
		Jump: commonJump,
		Block: commonBlock.Union(NewSet(
			"expression_switch_statement", "type_switch_statement", "select_statement",
		)),
		Identifier:    commonIdentifier,
		ParameterList: NewSet("parameter_list"),
		NumberLiteral: NewSet("int_literal", "float_literal", "imaginary_literal"),
		StringLiteral: NewSet("interpreted_string_literal", "raw_string_literal", "rune_literal"),
		Call:          NewSet("call_expression"),
		Comment:       commonComment,
		Return:        commonReturn,
		Variable:      NewSet("var_spec", "const_spec", "short_var_declaration"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select", "struct",
			"switch", "type", "var", "nil", "true", "false",
		),
	})

	r.Register(&Table{
		Language: "javascript",
		Function: NewSet(
			"function_declaration", "function_expression", "function",
			"arrow_function", "method_definition", "generator_function_declaration",
		),
		Branch: commonBranch.Union(NewSet("switch_statement", "switch_case", "do_statement")),
		Class:  NewSet("class_declaration", "class"),
		Nesting: commonNesting.Union(NewSet(
			"switch_statement", "do_statement",
		)),
		Jump:          commonJump,
		Block:         commonBlock.Union(NewSet("do_statement")),
		Identifier:    commonIdentifier,
		ParameterList: NewSet("formal_parameters"),
		NumberLiteral: NewSet("number"),
		StringLiteral: NewSet("string", "template_string"),
		Call:          NewSet("call_expression", "new_expression"),
		Comment:       commonComment,
		Return:        commonReturn,
		Variable:      NewSet("variable_declarator"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"async", "await", "break", "case", "catch", "class", "const",
			"continue", "debugger", "default", "delete", "do", "else", "export",
			"extends", "finally", "for", "function", "if", "import", "in",
			"instanceof", "let", "new", "of", "return", "static", "super",
			"switch", "this", "throw", "try", "typeof", "var", "void", "while",
			"with", "yield", "null", "undefined", "true", "false",
		),
	})

	ts := &Table{
		Language: "typescript",
		Function: NewSet(
			"function_declaration", "function_expression", "function",
			"arrow_function", "method_definition", "generator_function_declaration",
		),
		Class:         NewSet("class_declaration", "class", "interface_declaration"),
		Branch:        commonBranch.Union(NewSet("switch_statement", "switch_case", "do_statement")),
		Nesting:       commonNesting.Union(NewSet("switch_statement", "do_statement")),
		Jump:          commonJump,
		Block:         commonBlock.Union(NewSet("do_statement")),
		Identifier:    commonIdentifier,
		ParameterList: NewSet("formal_parameters"),
		NumberLiteral: NewSet("number"),
		StringLiteral: NewSet("string", "template_string"),
		Call:          NewSet("call_expression", "new_expression"),
		Comment:       commonComment,
		Return:        commonReturn,
		Variable:      NewSet("variable_declarator"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"abstract", "any", "as", "async", "await", "boolean", "break",
			"case", "catch", "class", "const", "continue", "declare", "default",
			"delete", "do", "else", "enum", "export", "extends", "finally",
			"for", "function", "if", "implements", "import", "in", "instanceof",
			"interface", "let", "namespace", "new", "number", "of", "private",
			"protected", "public", "readonly", "return", "static", "string",
			"super", "switch", "this", "throw", "try", "type", "typeof", "var",
			"void", "while", "yield", "null", "undefined", "true", "false",
		),
	}
	r.Register(ts)

	tsx := *ts
	tsx.Language = "tsx"
	r.Register(&tsx)

	r.Register(&Table{
		Language: "python",
		Function: NewSet("function_definition"),
		Class:    NewSet("class_definition"),
		Branch: commonBranch.Union(NewSet(
			"elif_clause", "except_clause", "with_statement",
			"list_comprehension", "dictionary_comprehension", "set_comprehension",
			"generator_expression", "conditional_expression",
		)),
		Nesting:       commonNesting.Union(NewSet("with_statement")),
		Jump:          commonJump.Union(NewSet("raise_statement")),
		Block:         commonBlock.Union(NewSet("with_statement")),
		Identifier:    NewSet("identifier"),
		ParameterList: NewSet("parameters"),
		NumberLiteral: NewSet("integer", "float"),
		StringLiteral: NewSet("string"),
		Call:          NewSet("call"),
		Comment:       commonComment,
		Return:        commonReturn,
		Variable:      NewSet("assignment", "augmented_assignment"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally",
			"for", "from", "global", "if", "import", "in", "is", "lambda",
			"nonlocal", "not", "or", "pass", "raise", "return", "try", "while",
			"with", "yield", "None", "True", "False",
		),
	})

	r.Register(&Table{
		Language: "java",
		Function: NewSet("method_declaration", "constructor_declaration"),
		Class:    NewSet("class_declaration", "interface_declaration", "enum_declaration"),
		Branch: commonBranch.Union(NewSet(
			"switch_statement", "switch_expression", "do_statement",
			"enhanced_for_statement", "switch_block_statement_group",
		)),
		Nesting: commonNesting.Union(NewSet(
			"switch_expression", "do_statement", "enhanced_for_statement",
		)),
		Jump:          commonJump,
		Block:         commonBlock.Union(NewSet("do_statement", "enhanced_for_statement")),
		Identifier:    commonIdentifier,
		ParameterList: NewSet("formal_parameters"),
		NumberLiteral: NewSet("decimal_integer_literal", "decimal_floating_point_literal", "hex_integer_literal"),
		StringLiteral: NewSet("string_literal"),
		Call:          NewSet("method_invocation", "object_creation_expression"),
		Comment:       commonComment,
		Return:        commonReturn,
		Variable:      NewSet("variable_declarator"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"abstract", "assert", "boolean", "break", "byte", "case", "catch",
			"char", "class", "const", "continue", "default", "do", "double",
			"else", "enum", "extends", "final", "finally", "float", "for",
			"if", "implements", "import", "instanceof", "int", "interface",
			"long", "native", "new", "package", "private", "protected",
			"public", "return", "short", "static", "strictfp", "super",
			"switch", "synchronized", "this", "throw", "throws", "transient",
			"try", "void", "volatile", "while", "null", "true", "false",
		),
	})

	r.Register(&Table{
		Language: "rust",
		Function: NewSet("function_item", "closure_expression"),
		Class:    NewSet("struct_item", "enum_item", "impl_item", "trait_item"),
		Branch: commonBranch.Union(NewSet(
			"match_expression", "match_arm", "loop_expression", "if_let_expression",
		)),
		Nesting:       commonNesting.Union(NewSet("loop_expression", "if_let_expression")),
		Jump:          commonJump,
		Block:         commonBlock.Union(NewSet("loop_expression")),
		Identifier:    commonIdentifier,
		ParameterList: NewSet("parameters"),
		NumberLiteral: NewSet("integer_literal", "float_literal"),
		StringLiteral: NewSet("string_literal", "raw_string_literal", "char_literal"),
		Call:          NewSet("call_expression", "macro_invocation"),
		Comment:       commonComment,
		Return:        NewSet("return_expression", "return_statement"),
		Variable:      NewSet("let_declaration", "const_item", "static_item"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"as", "async", "await", "break", "const", "continue", "crate",
			"dyn", "else", "enum", "extern", "fn", "for", "if", "impl", "in",
			"let", "loop", "match", "mod", "move", "mut", "pub", "ref",
			"return", "self", "Self", "static", "struct", "super", "trait",
			"type", "unsafe", "use", "where", "while", "true", "false",
		),
	})

	c := &Table{
		Language:      "c",
		Function:      NewSet("function_definition"),
		Class:         NewSet("struct_specifier", "union_specifier", "enum_specifier"),
		Branch:        commonBranch.Union(NewSet("switch_statement", "do_statement")),
		Nesting:       commonNesting.Union(NewSet("switch_statement", "do_statement")),
		Jump:          commonJump,
		Block:         commonBlock.Union(NewSet("do_statement")),
		Identifier:    commonIdentifier,
		ParameterList: NewSet("parameter_list"),
		NumberLiteral: NewSet("number_literal"),
		StringLiteral: NewSet("string_literal", "char_literal"),
		Call:          NewSet("call_expression"),
		Comment:       commonComment,
		Return:        commonReturn,
		Variable:      NewSet("declaration", "init_declarator"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"auto", "break", "case", "char", "const", "continue", "default",
			"do", "double", "else", "enum", "extern", "float", "for", "goto",
			"if", "inline", "int", "long", "register", "restrict", "return",
			"short", "signed", "sizeof", "static", "struct", "switch",
			"typedef", "union", "unsigned", "void", "volatile", "while",
		),
	}
	r.Register(c)

	cpp := *c
	cpp.Language = "cpp"
	cpp.Class = NewSet("class_specifier", "struct_specifier", "union_specifier", "enum_specifier")
	cpp.Keywords = c.Keywords.Union(NewSet(
		"catch", "class", "const_cast", "delete", "dynamic_cast", "explicit",
		"friend", "mutable", "namespace", "new", "noexcept", "nullptr",
		"operator", "private", "protected", "public", "reinterpret_cast",
		"static_cast", "template", "this", "throw", "try", "typename",
		"using", "virtual", "true", "false",
	))
	r.Register(&cpp)

	r.Register(&Table{
		Language: "csharp",
		Function: NewSet("method_declaration", "constructor_declaration", "local_function_statement"),
		Class:    NewSet("class_declaration", "interface_declaration", "struct_declaration", "record_declaration"),
		Branch: commonBranch.Union(NewSet(
			"switch_statement", "switch_expression", "do_statement", "switch_section",
		)),
		Nesting:       commonNesting.Union(NewSet("switch_expression", "do_statement")),
		Jump:          commonJump,
		Block:         commonBlock.Union(NewSet("do_statement")),
		Identifier:    commonIdentifier,
		ParameterList: NewSet("parameter_list"),
		NumberLiteral: NewSet("integer_literal", "real_literal"),
		StringLiteral: NewSet("string_literal", "verbatim_string_literal", "interpolated_string_expression"),
		Call:          NewSet("invocation_expression", "object_creation_expression"),
		Comment:       commonComment,
		Return:        commonReturn,
		Variable:      NewSet("variable_declarator"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"abstract", "as", "async", "await", "base", "bool", "break", "byte",
			"case", "catch", "char", "checked", "class", "const", "continue",
			"decimal", "default", "delegate", "do", "double", "else", "enum",
			"event", "explicit", "extern", "finally", "fixed", "float", "for",
			"foreach", "goto", "if", "implicit", "in", "int", "interface",
			"internal", "is", "lock", "long", "namespace", "new", "object",
			"operator", "out", "override", "params", "private", "protected",
			"public", "readonly", "ref", "return", "sbyte", "sealed", "short",
			"sizeof", "stackalloc", "static", "string", "struct", "switch",
			"this", "throw", "try", "typeof", "uint", "ulong", "unchecked",
			"unsafe", "ushort", "using", "var", "virtual", "void", "volatile",
			"while", "null", "true", "false",
		),
	})

	r.Register(&Table{
		Language: "ruby",
		Function: NewSet("method", "singleton_method"),
		Class:    NewSet("class", "module"),
		Branch: NewSet(
			"if", "elsif", "unless", "while", "until", "for", "case", "when",
			"rescue", "conditional",
		),
		Nesting:       NewSet("if", "unless", "while", "until", "for", "case", "begin"),
		Jump:          NewSet("break", "next", "redo", "return", "retry"),
		Block:         NewSet("if", "unless", "while", "until", "for", "case", "begin", "block", "do_block", "body_statement"),
		Identifier:    NewSet("identifier", "constant"),
		ParameterList: NewSet("method_parameters", "block_parameters"),
		NumberLiteral: NewSet("integer", "float"),
		StringLiteral: NewSet("string", "symbol"),
		Call:          NewSet("call", "method_call"),
		Comment:       commonComment,
		Return:        NewSet("return"),
		Variable:      NewSet("assignment"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"alias", "and", "begin", "break", "case", "class", "def",
			"defined?", "do", "else", "elsif", "end", "ensure", "for", "if",
			"in", "module", "next", "nil", "not", "or", "redo", "rescue",
			"retry", "return", "self", "super", "then", "undef", "unless",
			"until", "when", "while", "yield", "true", "false",
		),
	})

	r.Register(&Table{
		Language: "php",
		Function: NewSet("function_definition", "method_declaration", "anonymous_function_creation_expression"),
		Class:    NewSet("class_declaration", "interface_declaration", "trait_declaration"),
		Branch: commonBranch.Union(NewSet(
			"switch_statement", "elseif_clause", "do_statement", "foreach_statement",
		)),
		Nesting:       commonNesting.Union(NewSet("switch_statement", "foreach_statement", "do_statement")),
		Jump:          commonJump,
		Block:         commonBlock.Union(NewSet("foreach_statement", "do_statement")),
		Identifier:    NewSet("name", "variable_name", "identifier"),
		ParameterList: NewSet("formal_parameters"),
		NumberLiteral: NewSet("integer", "float"),
		StringLiteral: NewSet("string", "encapsed_string"),
		Call:          NewSet("function_call_expression", "method_call_expression", "member_call_expression"),
		Comment:       commonComment,
		Return:        commonReturn,
		Variable:      NewSet("simple_variable", "property_declaration", "const_declaration"),
		BoolOperator:  commonBool,
		Keywords: NewSet(
			"abstract", "and", "array", "as", "break", "callable", "case",
			"catch", "class", "clone", "const", "continue", "declare",
			"default", "do", "echo", "else", "elseif", "empty", "enddeclare",
			"endfor", "endforeach", "endif", "endswitch", "endwhile", "extends",
			"final", "finally", "fn", "for", "foreach", "function", "global",
			"goto", "if", "implements", "include", "instanceof", "insteadof",
			"interface", "isset", "list", "match", "namespace", "new", "or",
			"print", "private", "protected", "public", "require", "return",
			"static", "switch", "throw", "trait", "try", "unset", "use", "var",
			"while", "xor", "yield", "null", "true", "false",
		),
	})

	return r
}
