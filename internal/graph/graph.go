package graph

import (
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/IARD-Solutions/solidity-analyzer/internal/discovery"
	"github.com/IARD-Solutions/solidity-analyzer/internal/solidity"
)

// Node carries the import relations of one source file inside the discovered set.
type Node struct {
	Path       string
	Imports    []string // files this node imports, in order of appearance
	Dependents []string // files importing this node
}

// Graph is the project import graph. It is built fresh for every analysis
// run over the discovered file set and holds no state across runs.
type Graph struct {
	nodes map[string]*Node
}

// Build constructs the import graph for the discovered files. Every file gets
// a node, possibly with no relations. Edges pointing outside the discovered
// set (excluded folders, packaged dependencies) are dropped, and duplicate
// edges are inserted only once.
func Build(files []discovery.SourceFile, logger hclog.Logger) *Graph {
	g := &Graph{nodes: make(map[string]*Node, len(files))}

	for _, file := range files {
		g.nodes[file.Path] = &Node{Path: file.Path}
	}

	for _, file := range files {
		node := g.nodes[file.Path]
		seen := make(map[string]bool)

		for _, specifier := range solidity.ParseImports(file.Content) {
			target, ok := solidity.ResolveImport(file.Path, specifier)
			if !ok {
				continue
			}
			if _, member := g.nodes[target]; !member {
				logger.Debug("import resolves outside the discovered set, dropping edge",
					"file", file.RelPath, "specifier", specifier)
				continue
			}
			if target == file.Path || seen[target] {
				continue
			}
			seen[target] = true
			node.Imports = append(node.Imports, target)
			g.nodes[target].Dependents = append(g.nodes[target].Dependents, file.Path)
		}
	}

	return g
}

// Len returns the number of files in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all file paths in the graph, sorted.
func (g *Graph) Nodes() []string {
	paths := make([]string, 0, len(g.nodes))
	for path := range g.nodes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Imports returns the files the given file imports.
func (g *Graph) Imports(path string) []string {
	if node, ok := g.nodes[path]; ok {
		return node.Imports
	}
	return nil
}

// Dependents returns the files importing the given file.
func (g *Graph) Dependents(path string) []string {
	if node, ok := g.nodes[path]; ok {
		return node.Dependents
	}
	return nil
}

// Components partitions the graph into weakly-connected components: a file
// travels with everything it imports and everything importing it. Nodes are
// visited in sorted order, so the grouping is independent of discovery order.
// Each component is sorted, and components are ordered by their first member.
func (g *Graph) Components() [][]string {
	visited := make(map[string]bool, len(g.nodes))
	var components [][]string

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}

		var component []string
		stack := []string{start}
		visited[start] = true

		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, current)

			node := g.nodes[current]
			for _, neighbor := range node.Imports {
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
			for _, neighbor := range node.Dependents {
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
		}

		sort.Strings(component)
		components = append(components, component)
	}

	return components
}

// Closure computes the transitive import closure of a seed file using an
// explicit worklist, so cycles terminate and deep graphs cannot exhaust the
// call stack. The imports callback resolves one file's direct imports; the
// seed is always part of the result, and every file appears exactly once.
func Closure(seed string, imports func(path string) []string) []string {
	visited := map[string]bool{seed: true}
	worklist := []string{seed}
	closure := []string{seed}

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, target := range imports(current) {
			if visited[target] {
				continue
			}
			visited[target] = true
			closure = append(closure, target)
			worklist = append(worklist, target)
		}
	}

	return closure
}
