package ast

import "testing"

func call(name string, args ...*Node) *Node {
	c := node("call_expression", ident(name))
	if len(args) > 0 {
		c.AddChild(node("arguments", args...))
	}
	return c
}

func TestIsES6Import(t *testing.T) {
	if !IsES6Import(node("import_statement")) {
		t.Error("import_statement should be boilerplate")
	}
	if IsES6Import(node("expression_statement")) {
		t.Error("non-import must not match")
	}
}

func TestIsAMD(t *testing.T) {
	tests := []struct {
		name string
		n    *Node
		want bool
	}{
		{"define call", node("expression_statement", call("define")), true},
		{"require call", node("expression_statement", call("require")), true},
		{"other call", node("expression_statement", call("setup")), false},
		{"bare expression", node("expression_statement", ident("x")), false},
		{"empty statement", node("expression_statement"), false},
		{"not a statement", call("define"), false},
		{"member callee", node("expression_statement",
			node("call_expression", node("member_expression", ident("amd"), ident("define"))),
		), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAMD(tt.n); got != tt.want {
				t.Errorf("IsAMD = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCommonJS(t *testing.T) {
	declare := func(declType string, value *Node) *Node {
		return node(declType, node("variable_declarator", ident("mod"), value))
	}

	tests := []struct {
		name string
		n    *Node
		want bool
	}{
		{"var require", declare("variable_declaration", call("require")), true},
		{"const require", declare("lexical_declaration", call("require")), true},
		{"member off require", declare("variable_declaration",
			node("member_expression", call("require"), ident("thing")),
		), true},
		{"plain var", declare("variable_declaration", node("number")), false},
		{"other call", declare("variable_declaration", call("load")), false},
		{"not a declaration", node("expression_statement", call("require")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCommonJS(tt.n); got != tt.want {
				t.Errorf("IsCommonJS = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBoilerplate(t *testing.T) {
	if !IsBoilerplate(node("import_statement")) {
		t.Error("imports are boilerplate")
	}
	if IsBoilerplate(node("function_declaration")) {
		t.Error("ordinary declarations are not boilerplate")
	}
}
