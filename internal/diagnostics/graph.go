package diagnostics

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

const (
	graphName   = "diagnose"
	nodeDefault = "default"
	nodeDone    = "done"
)

func agentNode(i int) string {
	return fmt.Sprintf("agent-%d", i)
}

// graphNodes is the node count of a run over n agents, including done.
func graphNodes(n int) int {
	return max(n, 1) + 1
}

type stepFunc func(ctx context.Context) (Step, error)

// runGraph executes the run as a linear state graph: either the single
// default node or one node per agent, followed by done.
func (o *orchestrator) runGraph(ctx context.Context, x *execution) error {
	cfg := config.DefaultGraphConfig(graphName)
	// The graph is linear, so every node runs exactly once.
	cfg.MaxIterations = graphNodes(len(x.agents))
	if x.cfg.CheckpointInterval > 0 {
		cfg.Checkpoint.Interval = x.cfg.CheckpointInterval
		cfg.Checkpoint.Preserve = false
	}

	graph, err := state.NewGraphWithDeps(cfg, o.tracker.Observer(x.id), o.tracker.Checkpoints())
	if err != nil {
		return fmt.Errorf("create graph: %w", err)
	}

	// Node errors are kept here so callers can match domain errors after
	// the graph wraps them.
	var stepErr error
	names := make([]string, 0, graphNodes(len(x.agents)))

	add := func(name string, run stepFunc) error {
		node := state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
			step, err := run(ctx)
			if err != nil {
				stepErr = err
				return s, err
			}
			x.steps = append(x.steps, step)
			return s.
				Set("responses", x.result().Responses).
				Set("completed", len(x.steps)), nil
		})
		names = append(names, name)
		return graph.AddNode(name, node)
	}

	owner := x.req.OwnerIdentity

	if len(x.agents) == 0 {
		err := add(nodeDefault, func(ctx context.Context) (Step, error) {
			step := o.invoke(ctx, o.defaultStep(x))
			return step, o.record(ctx, owner, step)
		})
		if err != nil {
			return fmt.Errorf("add node %s: %w", nodeDefault, err)
		}
	}

	for i := range x.agents {
		name := agentNode(i)
		err := add(name, func(ctx context.Context) (Step, error) {
			step, err := o.agentStep(ctx, x, i)
			if err != nil {
				return step, err
			}
			step = o.invoke(ctx, step)
			return step, o.record(ctx, owner, step)
		})
		if err != nil {
			return fmt.Errorf("add node %s: %w", name, err)
		}
	}

	done := state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		return s.Set("status", string(StatusCompleted)), nil
	})
	if err := graph.AddNode(nodeDone, done); err != nil {
		return fmt.Errorf("add node %s: %w", nodeDone, err)
	}
	names = append(names, nodeDone)

	for i := 1; i < len(names); i++ {
		if err := graph.AddEdge(names[i-1], names[i], nil); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", names[i-1], names[i], err)
		}
	}

	if err := graph.SetEntryPoint(names[0]); err != nil {
		return fmt.Errorf("set entry point: %w", err)
	}
	if err := graph.SetExitPoint(nodeDone); err != nil {
		return fmt.Errorf("set exit point: %w", err)
	}

	initial := state.New(nil).
		Set("owner", owner).
		Set("agents", len(x.agents))
	initial.RunID = x.id.String()

	if _, err := graph.Execute(ctx, initial); err != nil {
		if stepErr != nil {
			return stepErr
		}
		return fmt.Errorf("execute graph: %w", err)
	}
	return nil
}
