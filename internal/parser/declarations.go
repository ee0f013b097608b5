package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// DeclarationKind classifies a line-ranged declaration
type DeclarationKind int

const (
	// DeclFunction covers def and async def, including methods
	DeclFunction DeclarationKind = iota + 1
	// DeclClass covers class definitions
	DeclClass
)

// String returns string representation of DeclarationKind
func (k DeclarationKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	default:
		return "unknown"
	}
}

// Declaration is a line-ranged function or class declaration. Any parser
// producing these satisfies the block extractor's contract; nothing outside
// this package depends on tree-sitter node types.
type Declaration struct {
	Kind      DeclarationKind
	Name      string
	StartLine int // 1-indexed, inclusive
	EndLine   int // 1-indexed, inclusive
}

// LineCount returns the number of source lines the declaration spans
func (d *Declaration) LineCount() int {
	return d.EndLine - d.StartLine + 1
}

// ExtractDeclarations walks the parse tree and returns every function and
// class declaration with its line range. Nested declarations each produce
// their own entry (a method inside a class yields both the class and the
// method).
func (p *Parser) ExtractDeclarations(result *ParseResult) []*Declaration {
	if result == nil || result.RootNode == nil {
		return nil
	}

	var decls []*Declaration

	_ = p.WalkTree(result.RootNode, func(node *sitter.Node) error {
		var kind DeclarationKind
		switch node.Type() {
		case "function_definition":
			kind = DeclFunction
		case "class_definition":
			kind = DeclClass
		default:
			return nil
		}

		decls = append(decls, &Declaration{
			Kind:      kind,
			Name:      declarationName(node, result.SourceCode),
			StartLine: int(node.StartPoint().Row) + 1,
			EndLine:   endLine(node),
		})
		return nil
	})

	return decls
}

// declarationName returns the identifier of a declaration node, if present
func declarationName(node *sitter.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Content(source)
}

// endLine computes the 1-indexed inclusive end line of a node. Tree-sitter
// end points are exclusive, so a node ending at column 0 stops on the
// previous line.
func endLine(node *sitter.Node) int {
	end := node.EndPoint()
	line := int(end.Row) + 1
	if end.Column == 0 && line > int(node.StartPoint().Row)+1 {
		line--
	}
	return line
}
