package service

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/models"
)

// uniqueShipIDs collapses duplicates, keeping first occurrence order
func uniqueShipIDs(shipIDs []string) ([]string, error) {
	seen := make(map[string]bool, len(shipIDs))
	unique := make([]string, 0, len(shipIDs))
	for _, id := range shipIDs {
		if strings.TrimSpace(id) == "" {
			return nil, newValidationError("ship id must not be blank")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, newValidationError("a pool needs at least one ship")
	}
	return unique, nil
}

// AllocatePool redistributes surplus from donors to deficit members.
//
// Members are ordered by CBBefore descending (ties keep input order). Each donor,
// largest first, covers deficits starting from the tail of the list, giving
// min(deficit, remaining surplus) per transfer. A donor's scan ends at the first
// member whose CBAfter is already non-negative, so a deficit sitting behind one
// that an earlier donor covered stays uncovered. Nothing is re-sorted between
// transfers. The returned members are in that sorted order; the input slice is
// left untouched.
func AllocatePool(members []*models.PoolMember) ([]*models.PoolMember, error) {
	if len(members) == 0 {
		return nil, newValidationError("a pool needs at least one ship")
	}

	total := decimal.Zero
	sorted := make([]*models.PoolMember, len(members))
	for i, m := range members {
		total = total.Add(m.CBBefore)
		sorted[i] = &models.PoolMember{
			PoolID:   m.PoolID,
			ShipID:   m.ShipID,
			CBBefore: m.CBBefore,
			CBAfter:  m.CBBefore,
		}
	}
	if total.IsNegative() {
		return nil, newValidationError("pool total compliance balance %s is negative", total)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CBBefore.GreaterThan(sorted[j].CBBefore)
	})

	for i := range sorted {
		donor := sorted[i]
		if !donor.CBAfter.IsPositive() {
			continue
		}
		for j := len(sorted) - 1; j > i; j-- {
			receiver := sorted[j]
			if !receiver.CBAfter.IsNegative() {
				break
			}
			transfer := decimal.Min(receiver.CBAfter.Neg(), donor.CBAfter)
			donor.CBAfter = donor.CBAfter.Sub(transfer)
			receiver.CBAfter = receiver.CBAfter.Add(transfer)
			if !donor.CBAfter.IsPositive() {
				break
			}
		}
	}

	if err := validateAllocation(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

func validateAllocation(members []*models.PoolMember) error {
	for _, m := range members {
		if m.CBBefore.IsNegative() && m.CBAfter.LessThan(m.CBBefore) {
			return newValidationError("deficit ship %s would exit the pool worse off (%s -> %s)", m.ShipID, m.CBBefore, m.CBAfter)
		}
		if m.CBBefore.IsPositive() && m.CBAfter.IsNegative() {
			return newValidationError("surplus ship %s would exit the pool in deficit (%s -> %s)", m.ShipID, m.CBBefore, m.CBAfter)
		}
	}
	return nil
}
