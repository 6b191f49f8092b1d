package billing

// LedgerUpdate records the latest invoice number issued to a client, to be
// persisted by the store as the client's "last invoice number".
type LedgerUpdate struct {
	ClientName    string
	InvoiceNumber string
}

// LedgerUpdates derives the persisted ledger state from the produced
// invoices: one entry per distinct client, in the order clients were first
// seen. When a client received more than one invoice in the batch, the last
// one in scan order wins, so the returned length counts clients rather than
// invoices.
func LedgerUpdates(groups []*InvoiceGroup) []LedgerUpdate {
	index := make(map[string]int)
	var updates []LedgerUpdate
	for _, g := range groups {
		if i, ok := index[g.ClientName]; ok {
			updates[i].InvoiceNumber = g.InvoiceNumber
			continue
		}
		index[g.ClientName] = len(updates)
		updates = append(updates, LedgerUpdate{
			ClientName:    g.ClientName,
			InvoiceNumber: g.InvoiceNumber,
		})
	}
	return updates
}
