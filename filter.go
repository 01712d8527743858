package roseingrave

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// PieceFilter selects pieces with a boolean expression over the piece
// fields. The expression environment exposes:
//
//	title    the piece title (string)
//	barCount the final bar count (int)
//	sources  the source names in order ([]string)
//
// For example: `barCount > 10 && "Recording A" in sources`.
type PieceFilter struct {
	source  string
	program *vm.Program
}

// CompilePieceFilter compiles a filter expression. An empty expression
// matches every piece.
func CompilePieceFilter(expression string) (*PieceFilter, error) {
	f := &PieceFilter{source: expression}
	if expression == "" {
		return f, nil
	}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	f.program = program
	return f, nil
}

// Match evaluates the filter against a piece.
func (f *PieceFilter) Match(p *Piece) (bool, error) {
	if f.program == nil {
		return true, nil
	}
	env := map[string]any{
		"title":    p.Name(),
		"barCount": p.FinalBarCount(),
		"sources":  sourceNames(p),
	}
	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.source, err)
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q evaluated to %T, expected bool", f.source, result)
	}
	return b, nil
}

func sourceNames(p *Piece) []string {
	names := make([]string, 0, len(p.names))
	return append(names, p.names...)
}
