package engine

import (
	"math/big"
	"testing"
)

func TestPurchaseLog_MarkRollback(t *testing.T) {
	log := &PurchaseLog{}
	log.Append(1, big.NewRat(2, 1))

	mark := log.Mark()
	log.Append(2, big.NewRat(1, 1))
	log.Append(3, big.NewRat(5, 2))
	if log.Len() != 3 {
		t.Fatalf("Len = %d, want 3", log.Len())
	}

	log.RollbackTo(mark)
	if log.Len() != 1 {
		t.Fatalf("Len after rollback = %d, want 1", log.Len())
	}
	if got := log.Entries()[0]; got.ItemID != 1 || got.Count.Cmp(big.NewRat(2, 1)) != 0 {
		t.Fatalf("surviving entry = %+v, want item 1 x 2", got)
	}
}

func TestPurchaseLog_RollbackToZero(t *testing.T) {
	log := &PurchaseLog{}
	mark := log.Mark()
	log.Append(1, big.NewRat(1, 1))
	log.RollbackTo(mark)
	if log.Len() != 0 {
		t.Fatalf("Len = %d, want 0", log.Len())
	}
}

func TestPurchaseLog_ScaleFrom(t *testing.T) {
	log := &PurchaseLog{}
	log.Append(1, big.NewRat(4, 1))

	mark := log.Mark()
	log.Append(2, big.NewRat(2, 1))
	log.Append(3, big.NewRat(1, 2))

	// Subtree resolved for one batch, parent needs 3/2 of it.
	log.ScaleFrom(mark, big.NewRat(3, 2))

	entries := log.Entries()
	if entries[0].Count.Cmp(big.NewRat(4, 1)) != 0 {
		t.Errorf("entry before mark scaled: %v", entries[0].Count)
	}
	if entries[1].Count.Cmp(big.NewRat(3, 1)) != 0 {
		t.Errorf("entry 2 = %v, want 3", entries[1].Count)
	}
	if entries[2].Count.Cmp(big.NewRat(3, 4)) != 0 {
		t.Errorf("entry 3 = %v, want 3/4", entries[2].Count)
	}
}
