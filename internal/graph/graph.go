package graph

import "slices"

// Graph maps each registered service key to the keys it depends on. It is not
// safe for concurrent use; the owning container serializes access.
type Graph struct {
	edges map[string][]string
}

func New() *Graph {
	return &Graph{edges: make(map[string][]string)}
}

func (g *Graph) Add(id string, dependencies []string) {
	g.edges[id] = slices.Clone(dependencies)
}

func (g *Graph) Remove(id string) {
	delete(g.edges, id)
}

// CycleThrough returns a dependency path that starts and ends at id, or nil
// when id is not part of a cycle. Dependencies with no node are skipped.
func (g *Graph) CycleThrough(id string) []string {
	visited := make(map[string]bool)
	var path []string

	var walk func(node string) bool
	walk = func(node string) bool {
		path = append(path, node)
		for _, dep := range g.edges[node] {
			if dep == id {
				path = append(path, dep)
				return true
			}
			if _, ok := g.edges[dep]; !ok || visited[dep] {
				continue
			}
			visited[dep] = true
			if walk(dep) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}

	if walk(id) {
		return path
	}
	return nil
}

// Missing returns the dependencies that no node provides, sorted.
func (g *Graph) Missing() []string {
	var missing []string
	for _, deps := range g.edges {
		for _, dep := range deps {
			if _, ok := g.edges[dep]; !ok && !slices.Contains(missing, dep) {
				missing = append(missing, dep)
			}
		}
	}
	slices.Sort(missing)
	return missing
}
