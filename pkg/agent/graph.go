package agent

import (
	"context"
	"fmt"
)

// Route is the typed discriminant returned by the routing decision. It is
// consumed only by the edge-dispatch table, never folded into state.
type Route int

const (
	RouteRetrieveContext Route = iota
	RouteGenerateDirect
)

func (r Route) String() string {
	switch r {
	case RouteRetrieveContext:
		return "retrieve_context"
	case RouteGenerateDirect:
		return "generate_direct"
	default:
		return fmt.Sprintf("route(%d)", int(r))
	}
}

// NodeFunc is a single graph node. Nodes of one request run sequentially in
// strict path order; a returned error aborts the traversal and surfaces at
// the request boundary.
type NodeFunc func(ctx context.Context, s *State) error

// Graph is the immutable routing definition: an entry node, a pure decision
// function, and the node sequence for each route. Build it once at process
// start and share it across requests; it holds no per-request state.
type Graph struct {
	entry  NodeFunc
	decide func(s *State) Route
	paths  map[Route][]NodeFunc
}

// NewGraph wires the default two paths:
//
//	entry -> route check -> retrieve_context -> generate_with_context -> end
//	entry -> route check -> generate_direct -> end
//
// The web-search node and the keyword model classifier are available on
// Nodes for hosts that want to compose their own graph, but are not part of
// the default edges.
func NewGraph(n *Nodes) *Graph {
	return &Graph{
		entry:  n.Entry,
		decide: n.CheckForRAG,
		paths: map[Route][]NodeFunc{
			RouteRetrieveContext: {n.RetrieveContext, n.GenerateWithContext},
			RouteGenerateDirect:  {n.GenerateDirect},
		},
	}
}

// Run executes one traversal. Exactly one terminal generation node runs and
// appends exactly one assistant message.
func (g *Graph) Run(ctx context.Context, s *State) error {
	if err := g.entry(ctx, s); err != nil {
		return err
	}

	route := g.decide(s)
	path, ok := g.paths[route]
	if !ok {
		return fmt.Errorf("no path wired for route %s", route)
	}

	for _, node := range path {
		if err := node(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
