package domain

type Money struct {
	Currency string
	Amount   int64
}

type QuoteLine struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice Money
	LineTotal Money
	// Available is true when current stock covers Quantity.
	Available bool
}

type Quote struct {
	Lines []QuoteLine
	Total Money
}

// Orderable reports whether every line could be placed right now.
func (q Quote) Orderable() bool {
	for _, ln := range q.Lines {
		if !ln.Available {
			return false
		}
	}
	return len(q.Lines) > 0
}
