package types2

import (
	"github.com/you-not-fish/weft/internal/diag"
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
)

// Config specifies the configuration for semantic analysis.
type Config struct {
	// Error is called for the first semantic error.
	// If nil, the error is only returned.
	Error ErrorHandler

	// Diag receives warnings, the error and trace entries.
	// If nil, nothing is reported.
	Diag diag.Sink

	// Table holds symbols defined by earlier programs, as in an
	// interactive session. It is copied, never modified.
	// If nil, analysis starts from an empty table.
	Table *types.Table
}

// Check analyzes prog in a single forward pass. It returns the populated
// symbol table, or nil and the first error if the program is rejected.
func Check(prog *syntax.Program, conf *Config) (*types.Table, error) {
	if conf == nil {
		conf = &Config{}
	}

	table := types.NewTable()
	if conf.Table != nil {
		table = conf.Table.Clone()
	}

	c := &Checker{
		conf:  conf,
		table: table,
	}

	c.report(diag.Debug, syntax.Pos{}, "beginning semantic analysis")
	c.program(prog)

	if c.first != nil {
		c.report(diag.Debug, syntax.Pos{}, "semantic analysis failed")
		return nil, c.first
	}
	c.report(diag.Debug, syntax.Pos{}, "semantic analysis completed")
	return c.table, nil
}
