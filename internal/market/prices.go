package market

// TradingPostCommission is the fixed cut the trading post takes from sell-side
// revenue (5% listing fee + 10% exchange fee). Costs are never taxed.
const TradingPostCommission = 15

// PriceInfo is one side of a top-of-book price snapshot.
type PriceInfo struct {
	UnitPrice int `json:"unit_price"`
	Quantity  int `json:"quantity"`
}

// Price is the top-of-book snapshot for one item, as served by
// commerce/prices. Used only by the estimated-cost screening pass; the
// precise simulation works on full ItemListings ladders instead.
type Price struct {
	ID    int       `json:"id"`
	Buys  PriceInfo `json:"buys"`
	Sells PriceInfo `json:"sells"`
}

// EffectiveBuyPrice returns the revenue actually received after commission
// when an item sells to a buy order at unitPrice.
func EffectiveBuyPrice(unitPrice int) int {
	return unitPrice * (100 - TradingPostCommission) / 100
}

// EffectiveSellPrice returns the lowest list price that still nets at least
// cost after commission, i.e. the break-even sell price for a given
// production cost.
func EffectiveSellPrice(cost int) int {
	return DivIntCeil(cost*100, 100-TradingPostCommission)
}

// DivIntCeil divides x by y rounding up. y must be positive.
func DivIntCeil(x, y int) int {
	return (x + y - 1) / y
}
