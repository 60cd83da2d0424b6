package engine

import "math/big"

// Purchase is one tentative trading-post debit: the item to buy and the
// possibly-fractional number of units one top-level craft needs. It is not
// applied to the order book until the profit simulator commits the iteration.
type Purchase struct {
	ItemID int
	Count  *big.Rat
}

// PurchaseLog is the transaction log of tentative purchases recorded during
// one top-level precise cost resolution. The resolver marks the log before
// descending into a subtree and rolls back to the mark when the subtree loses
// to a cheaper acquisition source, so a discarded branch leaves no trace.
type PurchaseLog struct {
	entries []Purchase
}

// Mark returns a position that can later be passed to RollbackTo or
// ScaleFrom.
func (l *PurchaseLog) Mark() int {
	return len(l.entries)
}

// Append records a tentative purchase. The log takes ownership of count.
func (l *PurchaseLog) Append(itemID int, count *big.Rat) {
	l.entries = append(l.entries, Purchase{ItemID: itemID, Count: count})
}

// RollbackTo discards every purchase recorded since the given mark.
func (l *PurchaseLog) RollbackTo(mark int) {
	l.entries = l.entries[:mark]
}

// ScaleFrom multiplies the count of every purchase recorded since the given
// mark by factor. Used when a crafted ingredient's subtree, resolved for one
// batch of the ingredient, turns out to be needed a fractional number of
// times per parent batch.
func (l *PurchaseLog) ScaleFrom(mark int, factor *big.Rat) {
	for i := mark; i < len(l.entries); i++ {
		l.entries[i].Count.Mul(l.entries[i].Count, factor)
	}
}

// Entries returns the recorded purchases in depth-first, left-to-right
// recording order. The slice is owned by the log.
func (l *PurchaseLog) Entries() []Purchase {
	return l.entries
}

// Len returns the number of recorded purchases.
func (l *PurchaseLog) Len() int {
	return len(l.entries)
}
