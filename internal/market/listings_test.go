package market

import "testing"

func TestLowestSellOffer_SpansLevels(t *testing.T) {
	l := &ItemListings{
		ID: 1,
		// ascending price, cheapest at tail
		Sells: []Listing{{30, 10}, {20, 2}, {10, 3}},
	}

	cost, ok := l.LowestSellOffer(1)
	if !ok || cost != 10 {
		t.Fatalf("LowestSellOffer(1) = %d, %v, want 10, true", cost, ok)
	}
	cost, ok = l.LowestSellOffer(4)
	if !ok || cost != 3*10+20 {
		t.Fatalf("LowestSellOffer(4) = %d, %v, want 50, true", cost, ok)
	}
	cost, ok = l.LowestSellOffer(15)
	if !ok || cost != 3*10+2*20+10*30 {
		t.Fatalf("LowestSellOffer(15) = %d, %v, want 370, true", cost, ok)
	}
	if _, ok = l.LowestSellOffer(16); ok {
		t.Fatal("LowestSellOffer(16) should be unavailable")
	}
}

func TestLowestSellOffer_DoesNotMutate(t *testing.T) {
	l := &ItemListings{ID: 1, Sells: []Listing{{20, 2}, {10, 3}}}

	first, _ := l.LowestSellOffer(5)
	second, _ := l.LowestSellOffer(5)
	if first != second {
		t.Fatalf("repeated LowestSellOffer differ: %d vs %d", first, second)
	}
	if got := l.TotalSellQuantity(); got != 5 {
		t.Fatalf("TotalSellQuantity = %d after read-only calls, want 5", got)
	}
}

func TestBuy_ConsumesCheapestFirst(t *testing.T) {
	l := &ItemListings{ID: 1, Sells: []Listing{{30, 5}, {10, 2}}}

	cost, breakdown, ok := l.Buy(3)
	if !ok {
		t.Fatal("Buy(3) should succeed")
	}
	if cost != 2*10+30 {
		t.Fatalf("Buy(3) cost = %d, want 50", cost)
	}
	if breakdown[10] != 2 || breakdown[30] != 1 {
		t.Fatalf("breakdown = %v, want 2@10 1@30", breakdown)
	}
}

func TestBuy_MonotonicExhaustion(t *testing.T) {
	l := &ItemListings{ID: 1, Sells: []Listing{{30, 5}, {10, 2}}}

	before := l.TotalSellQuantity()
	if _, _, ok := l.Buy(4); !ok {
		t.Fatal("Buy(4) should succeed")
	}
	if got := l.TotalSellQuantity(); got != before-4 {
		t.Fatalf("TotalSellQuantity = %d, want %d", got, before-4)
	}

	// After consuming past the cheap level, the top of book never drops
	// below what used to be the nth-cheapest price.
	price, ok := l.LowestSellOffer(1)
	if !ok || price < 30 {
		t.Fatalf("LowestSellOffer(1) = %d, %v after exhaustion, want >= 30", price, ok)
	}
}

func TestBuy_FailsWhenExhausted(t *testing.T) {
	l := &ItemListings{ID: 1, Sells: []Listing{{10, 2}}}

	if _, _, ok := l.Buy(3); ok {
		t.Fatal("Buy(3) against 2 listed units should fail")
	}
	// Partial consumption stays consumed; the caller was supposed to check
	// availability first.
	if got := l.TotalSellQuantity(); got != 0 {
		t.Fatalf("TotalSellQuantity = %d after failed Buy, want 0", got)
	}
}

func TestSell_PopsBestBuyOrder(t *testing.T) {
	l := &ItemListings{ID: 1, Buys: []Listing{{80, 3}, {120, 1}}}

	price, ok := l.Sell()
	if !ok || price != 120 {
		t.Fatalf("Sell() = %d, %v, want raw 120", price, ok)
	}
	price, ok = l.Sell()
	if !ok || price != 80 {
		t.Fatalf("second Sell() = %d, %v, want 80", price, ok)
	}
	if _, ok := l.BestBuyOffer(); !ok {
		t.Fatal("two buy units should remain")
	}
	l.Sell()
	l.Sell()
	if _, ok := l.Sell(); ok {
		t.Fatal("Sell() on empty buy ladder should fail")
	}
}

func TestBestBuyOffer_ReadOnly(t *testing.T) {
	l := &ItemListings{ID: 1, Buys: []Listing{{120, 1}}}
	for i := 0; i < 3; i++ {
		price, ok := l.BestBuyOffer()
		if !ok || price != 120 {
			t.Fatalf("BestBuyOffer = %d, %v, want 120, true", price, ok)
		}
	}
}

func TestDivIntCeil(t *testing.T) {
	cases := []struct{ x, y, want int }{
		{7, 2, 4},
		{6, 2, 3},
		{0, 5, 0},
		{1, 1, 1},
		{5, 3, 2},
		{250, 250, 1},
	}
	for _, c := range cases {
		if got := DivIntCeil(c.x, c.y); got != c.want {
			t.Errorf("DivIntCeil(%d, %d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestEffectivePrices(t *testing.T) {
	if got := EffectiveBuyPrice(100); got != 85 {
		t.Fatalf("EffectiveBuyPrice(100) = %d, want 85", got)
	}
	if got := EffectiveBuyPrice(120); got != 102 {
		t.Fatalf("EffectiveBuyPrice(120) = %d, want 102", got)
	}

	// Break-even: listing at the effective sell price must net >= cost.
	for _, cost := range []int{1, 17, 25, 85, 100, 12345} {
		price := EffectiveSellPrice(cost)
		if EffectiveBuyPrice(price) < cost {
			t.Errorf("EffectiveSellPrice(%d) = %d nets %d, below cost", cost, price, EffectiveBuyPrice(price))
		}
		if price > 1 && EffectiveBuyPrice(price-1) >= cost {
			t.Errorf("EffectiveSellPrice(%d) = %d is not minimal", cost, price)
		}
	}
}
