package flowkit

import (
	"fmt"
	"os"

	"github.com/shoo/voile-sub004/internal/tabular"
)

// CompileTable parses a YAML tabular spec and compiles it into a Table.
// The spec declares its state and event enumerations as ordered lists,
// one transition row per state, and optional display-name overrides:
//
//	name: handshake
//	states: [idle, syn_sent, established, closed]
//	events: [connect, synack, close]
//	transitions:
//	  idle:        {connect: syn_sent}
//	  syn_sent:    {synack: established, close: closed}
//	  established: {close: closed}
//	names:
//	  states: {syn_sent: "SYN sent"}
//
// Enumeration order is declaration order, so State and Event values are
// deterministic across compilations of the same spec. Structural problems
// are returned as a *ValidationError listing every issue found.
func CompileTable(src []byte) (*Table, error) {
	schema, err := tabular.Parse(src)
	if err != nil {
		return nil, err
	}
	return schema.Compile()
}

// LoadTableFile reads and compiles a table spec from disk. Convenience for
// hosts; the core itself has no file surface.
func LoadTableFile(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load table spec: %w", err)
	}
	return CompileTable(src)
}
