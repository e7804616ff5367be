package stay

import (
	"fmt"
	"sort"
	"time"

	"github.com/jstramigioli/riviera-app/internal/calendar"
)

type CoveredRange struct {
	Range calendar.Range `json:"range"`
	Block *SeasonBlock   `json:"block"`
}

// Coverage splits a queried range into parts covered by confirmed blocks and the uncovered gaps.
// Drafts is filled only when no confirmed block touches the range; it is a price hint and
// never counts as availability, so Gaps still spans the whole range in that case.
type Coverage struct {
	Covered         []CoveredRange   `json:"covered"`
	Gaps            []calendar.Range `json:"gaps"`
	Drafts          []CoveredRange   `json:"drafts,omitempty"`
	IsDraftFallback bool             `json:"is_draft_fallback"`
}

// Index answers coverage queries over the season blocks of a single hotel.
type Index struct {
	hotelID   string
	confirmed []*SeasonBlock
	drafts    []*SeasonBlock
}

// NewIndex keeps the blocks of hotelID, sorted by start date and id.
func NewIndex(hotelID string, blocks []SeasonBlock) (*Index, error) {
	idx := &Index{hotelID: hotelID}

	for i := range blocks {
		if blocks[i].HotelID != hotelID {
			continue
		}

		if err := blocks[i].Range.Validate(); err != nil {
			return nil, &DataIntegrityError{HotelID: hotelID, BlockIDs: []string{blocks[i].ID}, Err: err}
		}

		block := blocks[i]
		block.Range = calendar.Range{Start: calendar.Day(block.Range.Start), End: calendar.Day(block.Range.End)}

		if block.IsDraft {
			idx.drafts = append(idx.drafts, &block)

			continue
		}

		idx.confirmed = append(idx.confirmed, &block)
	}

	sortBlocks(idx.confirmed)
	sortBlocks(idx.drafts)

	return idx, nil
}

func sortBlocks(blocks []*SeasonBlock) {
	sort.Slice(blocks, func(i, j int) bool {
		if !blocks[i].Range.Start.Equal(blocks[j].Range.Start) {
			return blocks[i].Range.Start.Before(blocks[j].Range.Start)
		}

		return lessID(blocks[i].ID, blocks[j].ID)
	})
}

func (idx *Index) HotelID() string {
	return idx.hotelID
}

func (idx *Index) CoveredSubranges(r calendar.Range) (Coverage, error) {
	if err := r.Validate(); err != nil {
		return Coverage{}, err
	}

	var cov Coverage

	for _, block := range idx.confirmed {
		part, ok := calendar.Intersect(r, block.Range)
		if !ok {
			continue
		}

		if last := len(cov.Covered) - 1; last >= 0 && part.Start.Before(cov.Covered[last].Range.End) {
			prev := cov.Covered[last]
			overlap, _ := calendar.Intersect(prev.Range, part)

			return Coverage{}, &DataIntegrityError{
				HotelID:  idx.hotelID,
				BlockIDs: []string{prev.Block.ID, block.ID},
				Overlap:  overlap,
			}
		}

		cov.Covered = append(cov.Covered, CoveredRange{Range: part, Block: block})
	}

	covered := make([]calendar.Range, 0, len(cov.Covered))
	for _, c := range cov.Covered {
		covered = append(covered, c.Range)
	}

	gaps, err := calendar.Subtract(r, covered)
	if err != nil {
		return Coverage{}, fmt.Errorf("subtract covered ranges: %w", err)
	}

	cov.Gaps = gaps

	if len(cov.Covered) == 0 {
		drafts, err := idx.draftCoverage(r)
		if err != nil {
			return Coverage{}, err
		}

		cov.Drafts = drafts
		cov.IsDraftFallback = len(drafts) > 0
	}

	return cov, nil
}

// draftCoverage lays drafts over r in index order; a day already claimed by an earlier draft
// is not claimed again.
func (idx *Index) draftCoverage(r calendar.Range) ([]CoveredRange, error) {
	var (
		res     []CoveredRange
		claimed []calendar.Range
	)

	for _, block := range idx.drafts {
		part, ok := calendar.Intersect(r, block.Range)
		if !ok {
			continue
		}

		free, err := calendar.Subtract(part, claimed)
		if err != nil {
			return nil, fmt.Errorf("subtract claimed draft ranges: %w", err)
		}

		for _, f := range free {
			res = append(res, CoveredRange{Range: f, Block: block})
		}

		claimed = append(claimed, part)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Range.Start.Before(res[j].Range.Start)
	})

	return res, nil
}

type blockResolver func(cov Coverage) (*SeasonBlock, bool)

// blockResolvers are tried in order for a single day; the first hit wins.
var blockResolvers = []blockResolver{
	confirmedBlock,
	draftBlock,
}

func confirmedBlock(cov Coverage) (*SeasonBlock, bool) {
	if len(cov.Covered) == 0 {
		return nil, false
	}

	return cov.Covered[0].Block, true
}

func draftBlock(cov Coverage) (*SeasonBlock, bool) {
	if len(cov.Drafts) == 0 {
		return nil, false
	}

	return cov.Drafts[0].Block, true
}

// BlockFor returns the block that prices the night of date, or nil when none applies.
func (idx *Index) BlockFor(date time.Time) (*SeasonBlock, error) {
	d := calendar.Day(date)

	cov, err := idx.CoveredSubranges(calendar.Range{Start: d, End: d.AddDate(0, 0, 1)})
	if err != nil {
		return nil, err
	}

	for _, resolve := range blockResolvers {
		if block, ok := resolve(cov); ok {
			return block, nil
		}
	}

	return nil, nil //nolint:nilnil
}
