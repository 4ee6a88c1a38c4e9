package graph

// FindCycle returns one simple cycle from the adjacency structure as an
// ordered sequence of atom labels, or nil if the graph is acyclic.
//
// The search is a depth-first traversal with parent tracking, started from
// every unvisited atom in declaration order. When a step reaches a visited
// neighbor that is not the immediate parent, the cycle is the suffix of the
// current path from that neighbor's position onward, snapshotted at closure
// time. Only the first cycle found is returned; fused and bridged polycyclic
// systems are out of scope.
//
// Determinism: node order and neighbor order both come from the Adjacency,
// which derives them from declaration order, so identical input yields an
// identical cycle.
func FindCycle(adj *Adjacency) []string {
	visited := make(map[string]bool)
	pathIndex := make(map[string]int)
	var path []string

	var dfs func(node, parent string) []string
	dfs = func(node, parent string) []string {
		visited[node] = true
		pathIndex[node] = len(path)
		path = append(path, node)

		for _, nb := range adj.Neighbors(node) {
			if nb == parent {
				continue
			}
			if visited[nb] {
				if at, on := pathIndex[nb]; on {
					// Snapshot the suffix so later pops cannot alias it.
					cycle := make([]string, len(path)-at)
					copy(cycle, path[at:])
					return cycle
				}
				continue
			}
			if cycle := dfs(nb, node); cycle != nil {
				return cycle
			}
		}

		delete(pathIndex, node)
		path = path[:len(path)-1]
		return nil
	}

	for _, label := range adj.Labels() {
		if visited[label] {
			continue
		}
		if cycle := dfs(label, ""); cycle != nil {
			return cycle
		}
	}
	return nil
}
