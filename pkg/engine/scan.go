package engine

import (
	"github.com/aymerick/raymond/ast"
	"github.com/aymerick/raymond/parser"
)

// helperUsage records how a template's call sites invoke each helper name:
// the positional parameter count per name, with names whose call sites
// disagree marked as conflicting. The underlying engine resolves a helper
// through a function whose signature must match the call site exactly, so
// the dispatch trampoline for a name is shaped by this scan.
type helperUsage struct {
	counts    map[string]int
	conflicts map[string]struct{}
}

func newHelperUsage() *helperUsage {
	return &helperUsage{
		counts:    make(map[string]int),
		conflicts: make(map[string]struct{}),
	}
}

// scanHelperUsage parses a template source and collects the helper call
// sites, including those nested in subexpressions and hash values.
func scanHelperUsage(source string) (*helperUsage, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	scan := &usageScanner{usage: newHelperUsage()}
	program.Accept(scan)
	return scan.usage, nil
}

func (u *helperUsage) record(name string, count int) {
	prev, seen := u.counts[name]
	if seen && prev != count {
		u.conflicts[name] = struct{}{}
		if count < prev {
			return
		}
	}
	u.counts[name] = count
}

// clone returns an independent copy.
func (u *helperUsage) clone() *helperUsage {
	c := newHelperUsage()
	for name, count := range u.counts {
		c.counts[name] = count
	}
	for name := range u.conflicts {
		c.conflicts[name] = struct{}{}
	}
	return c
}

// merge folds other's call sites into u.
func (u *helperUsage) merge(other *helperUsage) {
	for name, count := range other.counts {
		u.record(name, count)
	}
	for name := range other.conflicts {
		u.conflicts[name] = struct{}{}
	}
}

func (u *helperUsage) conflicted(name string) bool {
	_, ok := u.conflicts[name]
	return ok
}

// usageScanner walks a parsed template recording every expression that the
// engine could resolve as a helper call.
type usageScanner struct {
	usage *helperUsage
}

func (s *usageScanner) scanExpression(node *ast.Expression) {
	if node == nil {
		return
	}
	if name := node.HelperName(); name != "" {
		s.usage.record(name, len(node.Params))
	}
	for _, param := range node.Params {
		param.Accept(s)
	}
	if node.Hash != nil {
		node.Hash.Accept(s)
	}
}

func (s *usageScanner) VisitProgram(node *ast.Program) interface{} {
	for _, statement := range node.Body {
		statement.Accept(s)
	}
	return nil
}

func (s *usageScanner) VisitMustache(node *ast.MustacheStatement) interface{} {
	s.scanExpression(node.Expression)
	return nil
}

func (s *usageScanner) VisitBlock(node *ast.BlockStatement) interface{} {
	s.scanExpression(node.Expression)
	if node.Program != nil {
		node.Program.Accept(s)
	}
	if node.Inverse != nil {
		node.Inverse.Accept(s)
	}
	return nil
}

func (s *usageScanner) VisitPartial(node *ast.PartialStatement) interface{} {
	for _, param := range node.Params {
		param.Accept(s)
	}
	if node.Hash != nil {
		node.Hash.Accept(s)
	}
	return nil
}

func (s *usageScanner) VisitExpression(node *ast.Expression) interface{} {
	s.scanExpression(node)
	return nil
}

func (s *usageScanner) VisitSubExpression(node *ast.SubExpression) interface{} {
	s.scanExpression(node.Expression)
	return nil
}

func (s *usageScanner) VisitHash(node *ast.Hash) interface{} {
	for _, pair := range node.Pairs {
		pair.Accept(s)
	}
	return nil
}

func (s *usageScanner) VisitHashPair(node *ast.HashPair) interface{} {
	node.Val.Accept(s)
	return nil
}

func (s *usageScanner) VisitContent(*ast.ContentStatement) interface{} { return nil }
func (s *usageScanner) VisitComment(*ast.CommentStatement) interface{} { return nil }
func (s *usageScanner) VisitPath(*ast.PathExpression) interface{}     { return nil }
func (s *usageScanner) VisitString(*ast.StringLiteral) interface{}    { return nil }
func (s *usageScanner) VisitBoolean(*ast.BooleanLiteral) interface{}  { return nil }
func (s *usageScanner) VisitNumber(*ast.NumberLiteral) interface{}    { return nil }
