package market

// Listing is a single price level in an order book ladder.
type Listing struct {
	UnitPrice int `json:"unit_price"`
	Quantity  int `json:"quantity"`
}

// ItemListings is the full order book for one item: every standing buy and
// sell offer grouped by price level. Both ladders are kept in ascending price
// order so the best level (cheapest sell, highest buy) sits at the tail and
// can be popped without reslicing the front.
//
// The book is mutable: the profit simulator consumes levels as it commits
// purchases and sales, so later iterations see correctly depleted liquidity.
type ItemListings struct {
	ID    int
	Buys  []Listing
	Sells []Listing
}

// LowestSellOffer returns the total cost of the cheapest count units across
// the sell ladder without consuming them. ok is false when the ladder holds
// fewer than count units in total.
func (l *ItemListings) LowestSellOffer(count int) (cost int, ok bool) {
	for i := len(l.Sells) - 1; i >= 0 && count > 0; i-- {
		level := l.Sells[i]
		if level.Quantity < count {
			count -= level.Quantity
			cost += level.UnitPrice * level.Quantity
		} else {
			cost += level.UnitPrice * count
			count = 0
		}
	}
	if count > 0 {
		return 0, false
	}
	return cost, true
}

// Buy consumes count units from the cheap end of the sell ladder, one unit at
// a time, removing price levels as they empty. It returns the total cost and
// a unit-price → quantity breakdown of what was taken.
//
// On failure (ladder exhausted before count units) ok is false and the units
// consumed so far stay consumed; callers are expected to have verified
// availability with LowestSellOffer first.
func (l *ItemListings) Buy(count int) (cost int, breakdown map[int]int, ok bool) {
	breakdown = make(map[int]int)
	for count > 0 {
		if len(l.Sells) == 0 {
			return cost, breakdown, false
		}
		level := &l.Sells[len(l.Sells)-1]
		level.Quantity--
		count--
		cost += level.UnitPrice
		breakdown[level.UnitPrice]++
		if level.Quantity == 0 {
			l.Sells = l.Sells[:len(l.Sells)-1]
		}
	}
	return cost, breakdown, true
}

// Sell fills one unit against the highest standing buy order and returns its
// raw unit price. Commission is the caller's concern. ok is false when no buy
// orders remain.
func (l *ItemListings) Sell() (price int, ok bool) {
	if len(l.Buys) == 0 {
		return 0, false
	}
	level := &l.Buys[len(l.Buys)-1]
	level.Quantity--
	price = level.UnitPrice
	if level.Quantity == 0 {
		l.Buys = l.Buys[:len(l.Buys)-1]
	}
	return price, true
}

// BestBuyOffer returns the unit price of the highest standing buy order
// without consuming it. ok is false when no buy orders remain.
func (l *ItemListings) BestBuyOffer() (price int, ok bool) {
	if len(l.Buys) == 0 {
		return 0, false
	}
	return l.Buys[len(l.Buys)-1].UnitPrice, true
}

// TotalSellQuantity reports the number of units listed across the sell ladder.
func (l *ItemListings) TotalSellQuantity() int {
	total := 0
	for _, level := range l.Sells {
		total += level.Quantity
	}
	return total
}
