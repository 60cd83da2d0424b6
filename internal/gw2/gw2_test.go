package gw2

import (
	"encoding/json"
	"testing"

	"gw2-arbitrage/internal/market"
)

func TestListingsResponse_UnmarshalJSON(t *testing.T) {
	raw := `{"id":19684,"buys":[{"listings":2,"unit_price":120,"quantity":50}],"sells":[{"listings":1,"unit_price":150,"quantity":10}]}`
	var r listingsResponse
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.ID != 19684 {
		t.Errorf("ID = %d", r.ID)
	}
	if len(r.Buys) != 1 || r.Buys[0].UnitPrice != 120 || r.Buys[0].Quantity != 50 {
		t.Errorf("Buys = %+v", r.Buys)
	}
	if len(r.Sells) != 1 || r.Sells[0].UnitPrice != 150 || r.Sells[0].Quantity != 10 {
		t.Errorf("Sells = %+v", r.Sells)
	}
}

func TestReverse_PutsBestOfferAtTail(t *testing.T) {
	// API order: sells ascending, buys descending.
	sells := []market.Listing{{UnitPrice: 10, Quantity: 1}, {UnitPrice: 20, Quantity: 1}, {UnitPrice: 30, Quantity: 1}}
	reverse(sells)
	if sells[len(sells)-1].UnitPrice != 10 {
		t.Fatalf("cheapest sell should be at tail, got %+v", sells)
	}

	buys := []market.Listing{{UnitPrice: 120, Quantity: 1}, {UnitPrice: 80, Quantity: 1}}
	reverse(buys)
	if buys[len(buys)-1].UnitPrice != 120 {
		t.Fatalf("highest buy should be at tail, got %+v", buys)
	}
}

func TestJoinIDs(t *testing.T) {
	if got := joinIDs([]int{1, 2, 30}); got != "1,2,30" {
		t.Fatalf("joinIDs = %q", got)
	}
	if got := joinIDs(nil); got != "" {
		t.Fatalf("joinIDs(nil) = %q", got)
	}
}

func TestNewClient_NonNil(t *testing.T) {
	c := NewClient(nil)
	if c == nil {
		t.Fatal("NewClient(nil) returned nil")
	}
}
