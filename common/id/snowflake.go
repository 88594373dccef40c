package id

import (
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Node ids per process kind. Two processes of the same kind must not share a node.
const (
	NodeServer int64 = 1
	NodeWorker int64 = 2
	NodeCLI    int64 = 3
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init sets up the generator. Later calls are no-ops.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered int64 id. Init must have been called.
func New() int64 {
	return node.Generate().Int64()
}

// Parse reads an id rendered as a decimal string, as the API does.
func Parse(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// String renders an id for JSON and URLs.
func String(v int64) string {
	return strconv.FormatInt(v, 10)
}
