package algo

import (
	"errors"
)

const (
	// 空节点，表示没有前驱
	NoNode NodeID = ""
)

var (
	// 错误：起点不在图中
	ErrInvalidQuery = errors.New("invalid query")
	// 错误：路径与图中的边不一致
	ErrBrokenPath = errors.New("broken path")
	// 错误：路径上的节点没有时区
	ErrUnknownZone = errors.New("unknown zone")
	// 错误：构建图时的非法输入
	ErrInvalidGraph = errors.New("invalid graph")
)
