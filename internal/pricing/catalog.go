package pricing

import "math"

// Pack is a purchasable bundle of premium currency.
type Pack struct {
	ID          string // SKU id, e.g. "6480"
	Name        string
	Tokens      int  // base tokens granted
	BonusTokens int  // extra tokens on every purchase
	FirstTimeX2 bool // first purchase doubles Tokens (not BonusTokens)
	PriceCents  int
}

// Catalog is a regional store.
type Catalog struct {
	TokenName string
	Currency  string // ISO code, e.g. "CAD"
	// TaxRate applies to the subtotal; use 0 for tax-inclusive prices.
	TaxRate float64
	Packs   []Pack
}

// FirstTimeState maps pack id to whether its first-time bonus is unused.
type FirstTimeState map[string]bool

// Plan summarizes a purchase plan.
type Plan struct {
	Purchases   []Purchase
	SubCents    int
	TaxCents    int
	TotalCents  int
	TotalTokens int
	Currency    string
}

// Purchase is one line item in the plan.
type Purchase struct {
	PackID     string
	Name       string
	Qty        int
	UnitPrice  int // cents
	UnitTokens int // tokens per unit, bonuses applied
	Subtotal   int // cents
}

// variant is one way of buying a pack: first-time doubled or regular.
type variant struct {
	id, name     string
	tokens, cost int
}

// variants expands packs into purchasable variants. A first-time doubled
// variant may be picked more than once by the optimisers; the DP treats
// packs as unbounded.
func (c Catalog) variants(first FirstTimeState) []variant {
	var out []variant
	for _, p := range c.Packs {
		if p.FirstTimeX2 && first[p.ID] {
			out = append(out, variant{
				id:     p.ID + "#x2",
				name:   p.Name + " (x2)",
				tokens: p.Tokens*2 + p.BonusTokens,
				cost:   p.PriceCents,
			})
		}
		out = append(out, variant{id: p.ID, name: p.Name, tokens: p.Tokens + p.BonusTokens, cost: p.PriceCents})
	}
	return out
}

// plan turns chosen variant indexes into a Plan.
func (c Catalog) plan(vs []variant, picks []int) Plan {
	plan := Plan{Currency: c.Currency}
	counts := make(map[int]int)
	var order []int
	for _, i := range picks {
		if counts[i] == 0 {
			order = append(order, i)
		}
		counts[i]++
	}
	for _, i := range order {
		v, qty := vs[i], counts[i]
		sub := v.cost * qty
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:     v.id,
			Name:       v.name,
			Qty:        qty,
			UnitPrice:  v.cost,
			UnitTokens: v.tokens,
			Subtotal:   sub,
		})
		plan.SubCents += sub
		plan.TotalTokens += v.tokens * qty
	}
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubCents, c.TaxRate)
	return plan
}

// applyTax computes tax and total given a subtotal and a tax rate.
func applyTax(sub int, taxRate float64) (tax int, total int) {
	if taxRate <= 0 {
		return 0, sub
	}
	t := int(math.Round(float64(sub) * taxRate))
	return t, sub + t
}
