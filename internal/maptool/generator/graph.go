package generator

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

// ============================================================
// Room graph
// ============================================================

const candidateNeighbours = 3

type edge [2]int

func newEdge(i, j int) edge {
	if i > j {
		i, j = j, i
	}
	return edge{i, j}
}

func mainRooms(rooms []models.Room) []int {
	var out []int
	for i, r := range rooms {
		if r.IsMain {
			out = append(out, i)
		}
	}
	return out
}

// spanningTree минимальное остовное дерево (Prim) по расстояниям между
// центрами. Начинает с первого узла, порядок ребер детерминирован.
func spanningTree(rooms []models.Room, nodes []int) []edge {
	if len(nodes) < 2 {
		return nil
	}

	inTree := make([]bool, len(nodes))
	best := make([]float64, len(nodes))
	from := make([]int, len(nodes))
	for i := range best {
		best[i] = math.Inf(1)
		from[i] = -1
	}
	best[0] = 0

	var edges []edge
	for range nodes {
		u := -1
		for i := range nodes {
			if !inTree[i] && (u < 0 || best[i] < best[u]) {
				u = i
			}
		}
		inTree[u] = true
		if from[u] >= 0 {
			edges = append(edges, newEdge(nodes[from[u]], nodes[u]))
		}
		for v := range nodes {
			if inTree[v] {
				continue
			}
			d := geometry.Dist2(rooms[nodes[u]].Center, rooms[nodes[v]].Center)
			if d < best[v] {
				best[v], from[v] = d, u
			}
		}
	}
	return edges
}

// nearest индексы nodes, упорядоченные по расстоянию до комнаты i.
func nearest(rooms []models.Room, nodes []int, i int) []int {
	out := make([]int, 0, len(nodes))
	for _, j := range nodes {
		if j != i {
			out = append(out, j)
		}
	}
	c := rooms[i].Center
	sort.SliceStable(out, func(a, b int) bool {
		return geometry.Dist2(c, rooms[out[a]].Center) < geometry.Dist2(c, rooms[out[b]].Center)
	})
	return out
}

// roomGraph ребра между главными комнатами: остовное дерево плюс доля
// CorridorRedundancy от ребер к ближайшим соседям, выбранная случайно.
func (g *Generator) roomGraph(rooms []models.Room) []edge {
	nodes := mainRooms(rooms)
	edges := spanningTree(rooms, nodes)

	seen := mapset.New[edge]()
	for _, e := range edges {
		seen.Put(e)
	}

	var candidates []edge
	for _, i := range nodes {
		near := nearest(rooms, nodes, i)
		for _, j := range near[:min(candidateNeighbours, len(near))] {
			e := newEdge(i, j)
			if seen.Has(e) {
				continue
			}
			seen.Put(e)
			candidates = append(candidates, e)
		}
	}

	g.rng.Shuffle(len(candidates), func(a, b int) {
		candidates[a], candidates[b] = candidates[b], candidates[a]
	})
	extra := int(math.Ceil(float64(len(candidates)) * g.params.CorridorRedundancy / 100))
	return append(edges, candidates[:extra]...)
}
