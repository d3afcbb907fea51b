package Snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node
var once sync.Once

func Init(workId int64) (err error) {
	node, err = snowflake.NewNode(workId)
	if err != nil {
		return
	}
	return
}

// GenerateId returns a new snowflake id, initializing a default node on
// first use.
func GenerateId() int64 {
	once.Do(func() {
		if node == nil {
			_ = Init(1)
		}
	})
	return node.Generate().Int64()
}
