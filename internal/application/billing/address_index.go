package billing

import (
	"golang.org/x/text/cases"

	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

// addressIndex is the per-run, case-insensitive client address lookup,
// built once from the client table. Case folding matches the store's
// ILIKE-style lookup semantics.
type addressIndex struct {
	byName map[string]*entity.ClientAddress
}

func newAddressIndex(clients []*entity.ClientAddress) *addressIndex {
	fold := cases.Fold()
	byName := make(map[string]*entity.ClientAddress, len(clients))
	for _, c := range clients {
		byName[fold.String(c.Name)] = c
	}
	return &addressIndex{byName: byName}
}

// find returns the address for a client name, nil when unknown.
func (i *addressIndex) find(name string) *entity.ClientAddress {
	return i.byName[cases.Fold().String(name)]
}
