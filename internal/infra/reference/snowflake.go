package reference

import (
	"strings"

	"github.com/bwmarrin/snowflake"
)

const Prefix = "COL-"

// Generator issues COL-<base36 snowflake> reference numbers. Node ids must
// be unique per running instance.
type Generator struct {
	node *snowflake.Node
}

func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Generator{node: node}, nil
}

func (g *Generator) Next() string {
	return Prefix + strings.ToUpper(g.node.Generate().Base36())
}
