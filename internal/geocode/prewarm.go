package geocode

import (
	"context"
	"log"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/stations"
)

// Prewarm resolves coordinates for the cheapest unresolved stations,
// spending at most limit geocoder calls, so the first planning requests
// hit a warm cache. Best-effort: failures are logged and skipped. Returns
// the number of stations resolved.
func Prewarm(ctx context.Context, sts []*domain.Station, broker *Broker, limit int) int {
	if limit <= 0 {
		return 0
	}

	budget := NewBudget(limit)
	resolved := 0

	for _, st := range stations.SortedByPrice(sts) {
		if st.Resolved() {
			continue
		}
		if budget.Exhausted() {
			break
		}
		if ctx.Err() != nil {
			log.Printf("prewarm stopped: %v", ctx.Err())
			break
		}

		if _, ok := broker.Resolve(ctx, st, budget, true); ok {
			resolved++
		}
	}

	log.Printf("prewarm done resolved=%d budget_left=%d", resolved, budget.Remaining())
	return resolved
}
