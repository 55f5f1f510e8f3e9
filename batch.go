package bikestress

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Location is identified coordinate in graph CRS
type Location struct {
	ID    string
	Point orb.Point
}

// TaggedRoute is a route tagged with identity of its origin and destination
type TaggedRoute struct {
	OriginID      string
	DestinationID string
	*RouteResult
}

// PairError is error log entry for a pair which couldn't be routed
type PairError struct {
	OriginID      string
	DestinationID string
	// Kind is short error label: no_route, timeout, empty_graph, malformed_input or internal
	Kind    string
	Message string
}

// BatchResult is merged outcome of a batch. All routes share CRS of the graph
type BatchResult struct {
	RunID  uuid.UUID
	CRS    string
	Weight Weight
	Routes []TaggedRoute
	Errors []PairError
}

// pairOutcome is success-or-error result of routing a single pair
type pairOutcome struct {
	route *TaggedRoute
	err   *PairError
}

type pair struct {
	origin      Location
	destination Location
}

// BatchRouter repeats routing over many origin/destination pairs isolating per-pair failures
type BatchRouter struct {
	router       *Router
	workers      int
	routeTimeout time.Duration
	logger       *zap.Logger
	metrics      *Metrics
}

func NewBatchRouter(router *Router, options ...func(*BatchRouter)) *BatchRouter {
	batch := &BatchRouter{
		router:  router,
		workers: runtime.NumCPU(),
		logger:  zap.L(),
	}
	for _, option := range options {
		option(batch)
	}
	if batch.workers < 1 {
		batch.workers = 1
	}
	return batch
}

func WithWorkers(workers int) func(*BatchRouter) {
	return func(batch *BatchRouter) {
		batch.workers = workers
	}
}

// WithRouteTimeout bounds every single route search. Zero disables the limit
func WithRouteTimeout(timeout time.Duration) func(*BatchRouter) {
	return func(batch *BatchRouter) {
		batch.routeTimeout = timeout
	}
}

func WithBatchLogger(logger *zap.Logger) func(*BatchRouter) {
	return func(batch *BatchRouter) {
		batch.logger = logger
	}
}

func WithMetrics(metrics *Metrics) func(*BatchRouter) {
	return func(batch *BatchRouter) {
		batch.metrics = metrics
	}
}

// Run routes every origin to every destination. Sweeps go destination by destination,
// origins keep their order inside a sweep and the result preserves that order.
// Unsupported weight is *ConfigError before any routing. Per-pair failures land in the error log;
// Run itself fails only when ctx is done
func (batch *BatchRouter) Run(ctx context.Context, origins, destinations []Location, w Weight) (*BatchResult, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	pairs := make([]pair, 0, len(origins)*len(destinations))
	for _, destination := range destinations {
		for _, origin := range origins {
			pairs = append(pairs, pair{origin: origin, destination: destination})
		}
	}
	result := &BatchResult{
		RunID:  uuid.New(),
		CRS:    batch.router.Graph().CRS,
		Weight: w,
		Routes: []TaggedRoute{},
		Errors: []PairError{},
	}
	log := batch.logger.With(zap.String("run_id", result.RunID.String()), zap.String("weight", w.String()))
	log.Info("Batch routing started",
		zap.Int("origins", len(origins)),
		zap.Int("destinations", len(destinations)),
		zap.Int("workers", batch.workers),
	)
	batch.metrics.observeBatch(len(pairs))
	st := time.Now()

	chunks := splitPairs(pairs, batch.workers)
	accumulators := make([][]pairOutcome, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			outcomes := make([]pairOutcome, 0, len(chunk))
			for _, p := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes = append(outcomes, batch.routePair(gctx, p, w))
			}
			accumulators[i] = outcomes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "Batch routing interrupted")
	}
	// A pair can fail because the whole batch has been cancelled in the middle of its search
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "Batch routing interrupted")
	}

	for _, outcomes := range accumulators {
		for _, outcome := range outcomes {
			if outcome.err != nil {
				result.Errors = append(result.Errors, *outcome.err)
				continue
			}
			result.Routes = append(result.Routes, *outcome.route)
		}
	}
	log.Info("Batch routing done",
		zap.Int("routes", len(result.Routes)),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("elapsed", time.Since(st)),
	)
	return result, nil
}

// routePair routes a single pair. It never fails: errors become part of the outcome
func (batch *BatchRouter) routePair(ctx context.Context, p pair, w Weight) pairOutcome {
	if batch.routeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, batch.routeTimeout)
		defer cancel()
	}
	st := time.Now()
	route, err := batch.router.Route(ctx, p.origin.Point, p.destination.Point, w)
	if err != nil {
		kind := errorKind(err)
		batch.metrics.observeRoute(w, kind, time.Since(st))
		batch.logger.Debug("Pair can't be routed",
			zap.String("origin", p.origin.ID),
			zap.String("destination", p.destination.ID),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return pairOutcome{err: &PairError{
			OriginID:      p.origin.ID,
			DestinationID: p.destination.ID,
			Kind:          kind,
			Message:       err.Error(),
		}}
	}
	batch.metrics.observeRoute(w, "ok", time.Since(st))
	return pairOutcome{route: &TaggedRoute{
		OriginID:      p.origin.ID,
		DestinationID: p.destination.ID,
		RouteResult:   route,
	}}
}

// splitPairs cuts pairs into at most n contiguous non-empty chunks of near-equal size
func splitPairs(pairs []pair, n int) [][]pair {
	if len(pairs) == 0 {
		return nil
	}
	if n > len(pairs) {
		n = len(pairs)
	}
	chunks := make([][]pair, 0, n)
	size := len(pairs) / n
	rest := len(pairs) % n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rest {
			end++
		}
		chunks = append(chunks, pairs[start:end])
		start = end
	}
	return chunks
}
