package diagnostics

import (
	"context"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/observability"
	"golang.org/x/sync/errgroup"
)

// runConcurrent composes and invokes every agent in parallel, bounded by
// MaxConcurrency, then records history in agent order. Stage events are
// emitted to the run observer as if each agent were a graph node.
func (o *orchestrator) runConcurrent(ctx context.Context, x *execution) error {
	observer := o.tracker.Observer(x.id)
	steps := make([]Step, len(x.agents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.cfg.MaxConcurrency)

	for i := range x.agents {
		g.Go(func() error {
			node := agentNode(i)
			nodeStarted(gctx, observer, node)

			step, err := o.agentStep(gctx, x, i)
			if err == nil {
				steps[i] = o.invoke(gctx, step)
			}

			nodeCompleted(gctx, observer, node, err)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, step := range steps {
		if err := o.record(ctx, x.req.OwnerIdentity, step); err != nil {
			return err
		}
		x.steps = append(x.steps, step)
	}
	return nil
}

func nodeStarted(ctx context.Context, observer observability.Observer, node string) {
	observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventNodeStart,
		Source:    graphName,
		Timestamp: time.Now(),
		Data: map[string]any{
			"node":      node,
			"iteration": 0,
		},
	})
}

func nodeCompleted(ctx context.Context, observer observability.Observer, node string, err error) {
	data := map[string]any{
		"node":      node,
		"iteration": 0,
		"error":     err != nil,
	}
	if err != nil {
		data["error_message"] = err.Error()
	}

	observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventNodeComplete,
		Source:    graphName,
		Timestamp: time.Now(),
		Data:      data,
	})
}
