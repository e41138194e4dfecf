package sip

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrNotSelected is returned when changing the allocation of an asset that is not selected.
var ErrNotSelected = errors.New("asset not selected")

// Asset is a token symbol like "BTC". It is only used as a key.
type Asset string

// ParseAsset returns the canonical (upper case) Asset for s.
func ParseAsset(s string) (Asset, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", errors.New("empty asset symbol")
	}
	return Asset(s), nil
}

// SupportedAssets lists the tokens offered for selection.
var SupportedAssets = []Asset{"BTC", "ETH", "BNB", "SOL"}

// AllocationBook holds the selected assets, in selection order, and the
// percentage of each contribution directed to them.
//
// Allocations are always within [0, 100] but their total is never corrected:
// a book whose total is not 100 is simply not valid.
type AllocationBook struct {
	selected    []Asset
	allocations map[Asset]Percent
}

// NewAllocationBook returns an empty book.
func NewAllocationBook() *AllocationBook {
	return &AllocationBook{allocations: make(map[Asset]Percent)}
}

// Select adds asset to the selection and returns the resulting allocations.
//
// The first asset receives 100%, any later one receives floor(100/n) where n
// is the new selection size. Allocations of already selected assets are left
// untouched. Selecting an asset twice is a no-op.
func (b *AllocationBook) Select(asset Asset) map[Asset]Percent {
	if b.allocations == nil {
		b.allocations = make(map[Asset]Percent)
	}
	if !b.Has(asset) {
		b.selected = append(b.selected, asset)
		b.allocations[asset] = Percent(100 / len(b.selected))
	}
	return b.Allocations()
}

// Deselect removes asset and its allocation. It is a no-op if asset is not selected.
func (b *AllocationBook) Deselect(asset Asset) {
	i := slices.Index(b.selected, asset)
	if i < 0 {
		return
	}
	b.selected = slices.Delete(b.selected, i, i+1)
	delete(b.allocations, asset)
}

// SetAllocation sets the allocation of a selected asset, clamped to [0, 100].
func (b *AllocationBook) SetAllocation(asset Asset, percent Percent) error {
	if !b.Has(asset) {
		return fmt.Errorf("cannot allocate %d%% to %s: %w", percent, asset, ErrNotSelected)
	}
	b.allocations[asset] = percent.Clamp()
	return nil
}

// Has reports whether asset is selected.
func (b *AllocationBook) Has(asset Asset) bool { return slices.Contains(b.selected, asset) }

// Len returns the number of selected assets.
func (b *AllocationBook) Len() int { return len(b.selected) }

// Selected returns the selected assets in selection order.
func (b *AllocationBook) Selected() []Asset { return slices.Clone(b.selected) }

// Allocation returns the allocation of asset, 0 if it is not selected.
func (b *AllocationBook) Allocation(asset Asset) Percent { return b.allocations[asset] }

// Allocations returns a copy of the allocation mapping.
func (b *AllocationBook) Allocations() map[Asset]Percent { return maps.Clone(b.allocations) }

// Total returns the sum of all allocations.
func (b *AllocationBook) Total() Percent {
	var total Percent
	for _, p := range b.allocations {
		total += p
	}
	return total
}

// IsValid reports whether at least one asset is selected and allocations total exactly 100%.
func (b *AllocationBook) IsValid() bool {
	return len(b.selected) > 0 && b.Total() == 100
}

// restore appends asset with an explicit allocation, bypassing the default
// allocation policy. It is used to reload a saved book.
func (b *AllocationBook) restore(asset Asset, percent Percent) {
	if b.Has(asset) {
		return
	}
	if b.allocations == nil {
		b.allocations = make(map[Asset]Percent)
	}
	b.selected = append(b.selected, asset)
	b.allocations[asset] = percent.Clamp()
}
