package pricing

import "math"

// MinCostAtLeastTokens finds the cheapest combination granting at least
// targetTokens. Quantities are unbounded.
func MinCostAtLeastTokens(cat Catalog, targetTokens int, first FirstTimeState) Plan {
	vs := cat.variants(first)
	maxTok := 0
	for _, v := range vs {
		maxTok = max(maxTok, v.tokens)
	}
	if targetTokens <= 0 || maxTok == 0 {
		return Plan{Currency: cat.Currency}
	}

	// dp[t]: min cost for exactly t tokens, overshoot capped at limit
	limit := targetTokens + maxTok
	const inf = math.MaxInt
	dp := make([]int, limit+1)
	pick := make([]int, limit+1)
	prev := make([]int, limit+1)
	for t := range dp {
		dp[t], pick[t], prev[t] = inf, -1, -1
	}
	dp[0] = 0

	for t := 0; t <= limit; t++ {
		if dp[t] == inf {
			continue
		}
		for i, v := range vs {
			if v.tokens <= 0 {
				continue
			}
			nt := min(t+v.tokens, limit)
			if cost := dp[t] + v.cost; cost < dp[nt] {
				dp[nt], pick[nt], prev[nt] = cost, i, t
			}
		}
	}

	best := targetTokens
	for t := targetTokens; t <= limit; t++ {
		if dp[t] < dp[best] {
			best = t
		}
	}
	if dp[best] == inf {
		return Plan{Currency: cat.Currency}
	}

	var picks []int
	for t := best; t > 0 && pick[t] != -1; t = prev[t] {
		picks = append(picks, pick[t])
	}
	return cat.plan(vs, picks)
}

// MaxTokensUnderBudget computes the most tokens budgetCents can buy, tax
// included, by unbounded knapsack over pre-tax cost.
func MaxTokensUnderBudget(cat Catalog, budgetCents int, first FirstTimeState) Plan {
	vs := cat.variants(first)
	if budgetCents <= 0 || len(vs) == 0 {
		return Plan{Currency: cat.Currency}
	}

	// spend that still fits the budget once tax is added
	budget := budgetCents
	if cat.TaxRate > 0 {
		budget = int(math.Floor(float64(budgetCents) / (1 + cat.TaxRate)))
	}

	// dp[c]: max tokens with cost exactly c
	dp := make([]int, budget+1)
	pick := make([]int, budget+1)
	for c := range pick {
		pick[c] = -1
	}
	for c := 0; c <= budget; c++ {
		if c > 0 && pick[c] == -1 {
			continue
		}
		for i, v := range vs {
			if v.cost <= 0 {
				continue
			}
			if nc := c + v.cost; nc <= budget && dp[c]+v.tokens > dp[nc] {
				dp[nc], pick[nc] = dp[c]+v.tokens, i
			}
		}
	}

	best := 0
	for c := range dp {
		if dp[c] > dp[best] {
			best = c
		}
	}

	var picks []int
	for c := best; c > 0 && pick[c] != -1; c -= vs[pick[c]].cost {
		picks = append(picks, pick[c])
	}
	return cat.plan(vs, picks)
}
