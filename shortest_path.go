package rescuepath

import (
	"container/heap"
)

// edgeFilter reports whether directed edge should be skipped during search
type edgeFilter func(id EdgeID) bool

// graphView is a non-mutating view over RoadNetwork adjacency with some
// directed edges filtered out. Avoids full graph duplication per request.
type graphView struct {
	net    *RoadNetwork
	filter edgeFilter
}

func (view graphView) outgoing(id NodeID) []*Edge {
	outgoing := view.net.Outgoing(id)
	if view.filter == nil {
		return outgoing
	}
	filtered := make([]*Edge, 0, len(outgoing))
	for _, edge := range outgoing {
		if view.filter(edge.ID) {
			continue
		}
		filtered = append(filtered, edge)
	}
	return filtered
}

type queueItem struct {
	node NodeID
	dist float64
}

type minQueue []queueItem

func (q minQueue) Len() int { return len(q) }

func (q minQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	// Stable order over equal-weight alternatives keeps search deterministic
	return q[i].node < q[j].node
}

func (q minQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *minQueue) Push(x interface{}) {
	*q = append(*q, x.(queueItem))
}

func (q *minQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// shortestPath computes path from source to target minimizing total edge
// length via binary-heap Dijkstra. All lengths are non-negative. Second
// return value is false when target is unreachable.
func shortestPath(view graphView, source, target NodeID) ([]NodeID, bool) {
	if source == target {
		return []NodeID{source}, true
	}

	dist := map[NodeID]float64{source: 0}
	prev := map[NodeID]NodeID{}
	visited := map[NodeID]struct{}{}

	queue := &minQueue{}
	heap.Push(queue, queueItem{node: source, dist: 0})

	for queue.Len() > 0 {
		current := heap.Pop(queue).(queueItem)
		u := current.node
		if u == target {
			break
		}
		if _, ok := visited[u]; ok {
			continue
		}
		visited[u] = struct{}{}

		for _, edge := range view.outgoing(u) {
			v := edge.ID.Target
			candidate := dist[u] + edge.LengthMeters
			known, found := dist[v]
			if !found || candidate < known {
				dist[v] = candidate
				prev[v] = u
				heap.Push(queue, queueItem{node: v, dist: candidate})
			}
		}
	}

	if _, ok := dist[target]; !ok {
		return nil, false
	}

	path := []NodeID{}
	for current := target; current != source; current = prev[current] {
		path = append(path, current)
	}
	path = append(path, source)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
