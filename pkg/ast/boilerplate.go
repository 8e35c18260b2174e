package ast

// Module-boilerplate detection. The three predicates recognize the wrapper
// idioms JavaScript modules are written in (AMD, CommonJS, ES6 imports) so
// the inspector can exclude them from candidacy. Each is a pure function of
// the node and its children.

// IsBoilerplate reports whether the node roots a module-boilerplate form.
func IsBoilerplate(n *Node) bool {
	return IsES6Import(n) || IsAMD(n) || IsCommonJS(n)
}

// IsES6Import matches `import ... from "..."` statements.
func IsES6Import(n *Node) bool {
	return n.Type == "import_statement"
}

// IsAMD matches `define(...)` and top-level `require([...], ...)` wrapper
// calls expressed as an expression statement.
func IsAMD(n *Node) bool {
	if n.Type != "expression_statement" || len(n.Children) == 0 {
		return false
	}
	call := n.Children[0]
	if call.Type != "call_expression" {
		return false
	}
	callee := calleeName(call)
	return callee == "define" || callee == "require"
}

// IsCommonJS matches `var x = require("...")` declarations, including
// lexical (`const`/`let`) forms and member access off the require call.
func IsCommonJS(n *Node) bool {
	if n.Type != "variable_declaration" && n.Type != "lexical_declaration" {
		return false
	}
	for _, decl := range n.Children {
		if decl.Type != "variable_declarator" {
			continue
		}
		for _, value := range decl.Children {
			if containsRequireCall(value) {
				return true
			}
		}
	}
	return false
}

// calleeName returns the identifier name a call expression invokes, or ""
// when the callee is not a plain identifier.
func calleeName(call *Node) string {
	if len(call.Children) == 0 {
		return ""
	}
	fn := call.Children[0]
	if fn.Type == "identifier" {
		return fn.Name
	}
	return ""
}

// containsRequireCall reports whether the expression is a require(...) call
// or wraps one (e.g. require("m").thing).
func containsRequireCall(n *Node) bool {
	if n == nil {
		return false
	}
	if n.Type == "call_expression" && calleeName(n) == "require" {
		return true
	}
	switch n.Type {
	case "member_expression", "subscript_expression", "call_expression":
		if len(n.Children) > 0 {
			return containsRequireCall(n.Children[0])
		}
	}
	return false
}
