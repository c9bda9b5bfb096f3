package services

import (
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// edgeKey identifies a directed edge between two commodities.
type edgeKey struct {
	from int64
	to   int64
}

// rateGraph is a snapshot of the conversion graph: directed edges between
// commodity IDs weighted by the latest observed rate. It is built fresh for
// every conversion call; no cached graph is kept across calls.
type rateGraph struct {
	neighbors map[int64][]int64
	rates     map[edgeKey]decimal.Decimal
}

// newRateGraph builds the graph from the latest price per (commodity, unit)
// pair. Every price contributes a forward edge; a non-zero price also
// contributes the implicit reverse edge at 1/price, so one observed quote
// enables conversion in both directions.
func newRateGraph(latest []domain.Price) *rateGraph {
	g := &rateGraph{
		neighbors: make(map[int64][]int64, len(latest)),
		rates:     make(map[edgeKey]decimal.Decimal, 2*len(latest)),
	}

	for _, p := range latest {
		g.neighbors[p.CommodityID] = append(g.neighbors[p.CommodityID], p.UnitID)
		g.rates[edgeKey{p.CommodityID, p.UnitID}] = p.Price

		// A zero price has no usable inverse.
		if !p.Price.IsZero() {
			g.neighbors[p.UnitID] = append(g.neighbors[p.UnitID], p.CommodityID)
			g.rates[edgeKey{p.UnitID, p.CommodityID}] = decimal.NewFromInt(1).Div(p.Price)
		}
	}

	return g
}

// queueEntry is one BFS frontier element with its accumulated factor.
type queueEntry struct {
	commodityID int64
	factor      decimal.Decimal
}

// factor runs a breadth-first search from fromID and returns the accumulated
// multiplicative factor of the first path that reaches toID, along with
// whether any path was found. The search is shortest by hop count, not
// optimal by rate; the first-discovered path wins and commodities are never
// revisited, which also guarantees termination on cyclic rate data.
func (g *rateGraph) factor(fromID, toID int64) (decimal.Decimal, bool) {
	queue := []queueEntry{{commodityID: fromID, factor: decimal.NewFromInt(1)}}
	visited := make(map[int64]bool)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.commodityID == toID {
			return current.factor, true
		}

		visited[current.commodityID] = true

		for _, neighbor := range g.neighbors[current.commodityID] {
			if visited[neighbor] {
				continue
			}
			rate := g.rates[edgeKey{current.commodityID, neighbor}]
			queue = append(queue, queueEntry{
				commodityID: neighbor,
				factor:      current.factor.Mul(rate),
			})
		}
	}

	return decimal.NewFromInt(1), false
}
