// Package tables persists a compiled lr.Tables to and from disk, using
// REZI for the wire encoding. Symbols are persisted by name only: a
// Snapshot is rebuilt against a caller-supplied symbol.Factory, so the
// ids line up with whatever grammar/lexer the rest of the program
// built from the same source in the current process.
package tables

import (
	"fmt"
	"os"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lr"
	"github.com/dekarrin/ictiobus/symbol"
	"github.com/dekarrin/rezi"
)

// ProductionSnapshot is one grammar production, symbols stored by name.
type ProductionSnapshot struct {
	LHS string
	RHS []string
}

// FollowSnapshot is one non-terminal's FOLLOW set.
type FollowSnapshot struct {
	NonTerminal string
	Members     []string
}

// Snapshot is the on-disk form of a compiled grammar and its SLR(1)
// tables.
type Snapshot struct {
	Start          string
	Productions    []ProductionSnapshot
	Action         [][]int
	Goto           [][]int
	RuleLengths    []int
	ReduceSymbol   []string
	Terminals      []string
	NonTerminals   []string
	Follow         []FollowSnapshot
	AcceptingState int
}

// FromTables flattens a compiled lr.Tables into its persistable form.
func FromTables(tbl *lr.Tables) Snapshot {
	s := Snapshot{
		Start:          tbl.Grammar.Start.Name(),
		Action:         tbl.Action,
		Goto:           tbl.Goto,
		RuleLengths:    tbl.RuleLengths,
		AcceptingState: tbl.AcceptingState,
	}

	for _, p := range tbl.Grammar.Productions {
		rhs := make([]string, len(p.RHS))
		for i, sym := range p.RHS {
			rhs[i] = sym.Name()
		}
		s.Productions = append(s.Productions, ProductionSnapshot{LHS: p.LHS.Name(), RHS: rhs})
	}

	for _, sym := range tbl.ReduceSymbol {
		s.ReduceSymbol = append(s.ReduceSymbol, sym.Name())
	}
	for _, sym := range tbl.Terminals {
		s.Terminals = append(s.Terminals, sym.Name())
	}
	for _, sym := range tbl.NonTerminals {
		s.NonTerminals = append(s.NonTerminals, sym.Name())
	}
	for _, nt := range tbl.NonTerminals {
		members := tbl.Follow.Of(nt)
		names := make([]string, len(members))
		for i, m := range members {
			names[i] = m.Name()
		}
		s.Follow = append(s.Follow, FollowSnapshot{NonTerminal: nt.Name(), Members: names})
	}

	return s
}

// Rebuild reconstructs a grammar and a usable lr.Tables from s, minting
// every symbol through f. Calling this with the same Factory used to
// build the matching lexer's rules is what keeps symbol identities
// consistent across the save/load boundary.
func (s Snapshot) Rebuild(f *symbol.Factory) (*grammar.Grammar, *lr.Tables, error) {
	g := grammar.New(f.Mint(s.Start))
	for _, p := range s.Productions {
		rhs := make([]symbol.Symbol, len(p.RHS))
		for i, name := range p.RHS {
			rhs[i] = f.Mint(name)
		}
		if _, err := g.AddProduction(f.Mint(p.LHS), rhs...); err != nil {
			return nil, nil, fmt.Errorf("tables: rebuilding grammar: %w", err)
		}
	}
	if err := g.Finalize(); err != nil {
		return nil, nil, fmt.Errorf("tables: rebuilding grammar: %w", err)
	}

	terminals := make([]symbol.Symbol, len(s.Terminals))
	terminalIndex := map[symbol.Symbol]int{}
	for i, name := range s.Terminals {
		terminals[i] = f.Mint(name)
		terminalIndex[terminals[i]] = i
	}
	nonTerminals := make([]symbol.Symbol, len(s.NonTerminals))
	nonTerminalIndex := map[symbol.Symbol]int{}
	for i, name := range s.NonTerminals {
		nonTerminals[i] = f.Mint(name)
		nonTerminalIndex[nonTerminals[i]] = i
	}
	reduceSymbol := make([]symbol.Symbol, len(s.ReduceSymbol))
	for i, name := range s.ReduceSymbol {
		reduceSymbol[i] = f.Mint(name)
	}

	follow := grammar.SymbolSets{}
	for _, entry := range s.Follow {
		nt := f.Mint(entry.NonTerminal)
		set := map[symbol.Symbol]bool{}
		for _, m := range entry.Members {
			set[f.Mint(m)] = true
		}
		follow[nt] = set
	}

	tbl := &lr.Tables{
		Grammar:          g,
		Action:           s.Action,
		Goto:             s.Goto,
		RuleLengths:      s.RuleLengths,
		ReduceSymbol:     reduceSymbol,
		Terminals:        terminals,
		NonTerminals:     nonTerminals,
		TerminalIndex:    terminalIndex,
		NonTerminalIndex: nonTerminalIndex,
		Follow:           follow,
		AcceptingState:   s.AcceptingState,
	}
	return g, tbl, nil
}

// SaveTo REZI-encodes tbl's snapshot and writes it to path.
func SaveTo(path string, tbl *lr.Tables) error {
	snap := FromTables(tbl)
	data := rezi.EncBinary(&snap)
	return os.WriteFile(path, data, 0o644)
}

// LoadFrom reads and REZI-decodes the snapshot at path, then rebuilds
// its grammar and tables against f.
func LoadFrom(path string, f *symbol.Factory) (*grammar.Grammar, *lr.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("tables: reading %s: %w", path, err)
	}

	var snap Snapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return nil, nil, fmt.Errorf("tables: decoding %s: %w", path, err)
	}
	if n != len(data) {
		return nil, nil, fmt.Errorf("tables: %s: decoded %d/%d bytes", path, n, len(data))
	}

	return snap.Rebuild(f)
}
