package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/claimsy/karma/internal/domain/port/core"
)

// SnowflakeGenerator issues snowflake ids from a single node
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator creates a generator for nodeID (0..1023).
// Every running instance needs its own node id.
func NewSnowflakeGenerator(nodeID int64) (core.IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

// NextID returns a new unique id
func (g *SnowflakeGenerator) NextID() int64 {
	return g.node.Generate().Int64()
}
