package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"

	"wms-finance/types"
)

// Generator mints time-ordered ids. Ordering by id therefore preserves
// insertion order, which the SQL store relies on.
type Generator struct {
	node *snowflake.Node
}

func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node %d: %w", nodeID, err)
	}
	return &Generator{node: node}, nil
}

func (g *Generator) Next() types.SnowflakeID {
	return types.SnowflakeID(g.node.Generate().Int64())
}
