package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/types"
)

// Relations 阵营关系表
//
// 阵营是无向图的顶点，两个阵营之间的关系存放在边数据上。
// 同一阵营为友方，没有边的两个阵营为中立。
type Relations struct {
	g graph.Graph[int, int]
}

// NewRelations 创建空的关系表
func NewRelations() *Relations {
	return &Relations{g: graph.New(graph.IntHash)}
}

// LoadRelations 根据配置创建关系表
//
// 参数:
//   - cfg: 阵营关系配置
//
// 返回:
//   - *Relations: 关系表
//   - error: 配置无效时返回错误
func LoadRelations(cfg *config.RelationsConfig) (*Relations, error) {
	if cfg == nil {
		return nil, fmt.Errorf("relations config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid relations config: %w", err)
	}

	r := NewRelations()
	for _, group := range cfg.Groups {
		r.AddGroup(group)
	}
	for _, entry := range cfg.Relations {
		if err := r.SetRelation(entry.A, entry.B, types.ParseRelation(entry.Relation)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// AddGroup 添加阵营，已存在时忽略
func (r *Relations) AddGroup(group int) {
	if err := r.g.AddVertex(group); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		// IntHash 下 AddVertex 只会返回顶点已存在
		panic(err)
	}
}

// SetRelation 设置两个阵营之间的关系，不存在的阵营会自动添加
func (r *Relations) SetRelation(a, b int, relation types.Relation) error {
	if a == b {
		return fmt.Errorf("group %d cannot have a relation with itself", a)
	}
	if relation == types.RelationUnknown {
		return fmt.Errorf("unknown relation between %d and %d", a, b)
	}
	r.AddGroup(a)
	r.AddGroup(b)

	err := r.g.AddEdge(a, b, graph.EdgeData(relation))
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		err = r.g.UpdateEdge(a, b, graph.EdgeData(relation))
	}
	if err != nil {
		return fmt.Errorf("failed to set relation between %d and %d: %w", a, b, err)
	}
	return nil
}

// RemoveRelation 删除两个阵营之间的关系，之后两者为中立
func (r *Relations) RemoveRelation(a, b int) {
	_ = r.g.RemoveEdge(a, b)
}

// GroupRelation 查询两个阵营之间的关系
func (r *Relations) GroupRelation(a, b int) types.Relation {
	if a == b {
		return types.RelationFriend
	}
	edge, err := r.g.Edge(a, b)
	if err != nil {
		return types.RelationNeutral
	}
	relation, ok := edge.Properties.Data.(types.Relation)
	if !ok {
		return types.RelationNeutral
	}
	return relation
}

// Relation 查询两个单位之间的关系
func (r *Relations) Relation(a, b action.Unit) types.Relation {
	return r.GroupRelation(a.Group(), b.Group())
}

// Groups 所有阵营（升序）
func (r *Relations) Groups() []int {
	adjacency, err := r.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	groups := make([]int, 0, len(adjacency))
	for group := range adjacency {
		groups = append(groups, group)
	}
	sort.Ints(groups)
	return groups
}
