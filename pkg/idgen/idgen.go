package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out monotonically increasing int64 ids.
// Ledger entries rely on this ordering to break ties between entries
// that share a transaction date.
type Generator struct {
	node *snowflake.Node
}

// New builds a generator for the given node id (0-1023).
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

// NextID returns the next id. Safe for concurrent use.
func (g *Generator) NextID() int64 {
	return g.node.Generate().Int64()
}
