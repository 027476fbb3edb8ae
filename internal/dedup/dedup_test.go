package dedup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foreclosed/internal/models"
)

func strp(s string) *string { return &s }

func explicitRecord(id string, mutate func(*models.CanonicalRecord)) models.CanonicalRecord {
	rec := models.CanonicalRecord{
		PropertyID: id,
		Source:     models.SourceBDO,
		Title:      strp("House and Lot"),
		Address:    strp("Lot 4 Blk 2, Imus"),
		Price:      &models.Money{Amount: 1200000, Currency: "PHP"},
	}

	if mutate != nil {
		mutate(&rec)
	}

	return rec
}

func synthesizedRecord(title, address string, price float64) models.CanonicalRecord {
	return models.CanonicalRecord{
		PropertyID:    fmt.Sprintf("bdo-%s-%s", title, address),
		Source:        models.SourceBDO,
		Title:         strp(title),
		Address:       strp(address),
		Price:         &models.Money{Amount: price, Currency: "PHP"},
		IDSynthesized: true,
	}
}

func TestDeduplicate_PaginationRescrape(t *testing.T) {
	// 50 distinct properties, each re-scraped 18 times.
	var records []models.CanonicalRecord

	for repeat := 0; repeat < 18; repeat++ {
		for i := 0; i < 50; i++ {
			records = append(records, explicitRecord(fmt.Sprintf("BDO-%03d", i), nil))
		}
	}

	res := Deduplicate(models.SourceBDO, records, 0.99)

	assert.Equal(t, 900, res.InputCount)
	assert.Equal(t, 50, res.UniqueCount)
	require.Len(t, res.Records, 50)

	// First-appearance order is preserved.
	assert.Equal(t, "BDO-000", res.Records[0].PropertyID)
	assert.Equal(t, "BDO-049", res.Records[49].PropertyID)
}

func TestDeduplicate_MostCompleteRepresentativeWins(t *testing.T) {
	sparse := explicitRecord("BDO-001", func(r *models.CanonicalRecord) {
		r.Address = nil
		r.Price = nil
	})
	complete := explicitRecord("BDO-001", func(r *models.CanonicalRecord) {
		r.Bedrooms = new(int)
	})

	res := Deduplicate(models.SourceBDO, []models.CanonicalRecord{sparse, complete}, 0)

	require.Len(t, res.Records, 1)
	assert.NotNil(t, res.Records[0].Address)
	assert.NotNil(t, res.Records[0].Bedrooms)
}

func TestDeduplicate_FieldConflictWarning(t *testing.T) {
	a := explicitRecord("BDO-001", nil)
	b := explicitRecord("BDO-001", func(r *models.CanonicalRecord) {
		r.Price = &models.Money{Amount: 1300000, Currency: "PHP"}
	})

	res := Deduplicate(models.SourceBDO, []models.CanonicalRecord{a, b, b}, 0)

	require.Len(t, res.Records, 1)

	conflicts := 0

	for _, w := range res.Warnings {
		if w.Kind == models.WarnFieldConflict {
			conflicts++
			assert.Equal(t, "price", w.Field)
		}
	}

	// One warning per group and field, no matter how often the conflicting
	// value reappears.
	assert.Equal(t, 1, conflicts)
}

func TestDeduplicate_SynthesizedIDsGroupOnExactTuple(t *testing.T) {
	records := []models.CanonicalRecord{
		synthesizedRecord("House A", "Addr 1", 1000000),
		synthesizedRecord("House A", "Addr 1", 1000000),
		// Same price, different address: a distinct property.
		synthesizedRecord("House A", "Addr 2", 1000000),
		// Same address, different title: also distinct.
		synthesizedRecord("House B", "Addr 1", 1000000),
	}

	res := Deduplicate(models.SourceBDO, records, 0)

	assert.Equal(t, 3, res.UniqueCount)
}

func TestDeduplicate_NullTupleFieldsDoNotMerge(t *testing.T) {
	a := synthesizedRecord("House A", "Addr 1", 1000000)
	a.Address = nil

	b := synthesizedRecord("House A", "Addr 2", 1000000)
	b.Address = nil

	// Both have a null address but the same remaining tuple; they collapse,
	// while a record with a real address stays separate.
	c := synthesizedRecord("House A", "Addr 3", 1000000)

	res := Deduplicate(models.SourceBDO, []models.CanonicalRecord{a, b, c}, 0)

	assert.Equal(t, 2, res.UniqueCount)
}

func TestDeduplicate_HighCollapseRatioWarns(t *testing.T) {
	var records []models.CanonicalRecord
	for i := 0; i < 100; i++ {
		records = append(records, explicitRecord("BDO-001", nil))
	}

	res := Deduplicate(models.SourceBDO, records, DefaultCollapseWarnRatio)

	assert.Equal(t, 1, res.UniqueCount)
	assert.InDelta(t, 0.99, res.DuplicateRatio, 0.001)

	found := false

	for _, w := range res.Warnings {
		if w.Kind == models.WarnDuplicateRatio {
			found = true
		}
	}

	assert.True(t, found, "expected a duplicate_ratio warning")
}

func TestDeduplicate_RatioAtThresholdDoesNotWarn(t *testing.T) {
	records := []models.CanonicalRecord{
		explicitRecord("BDO-001", nil),
		explicitRecord("BDO-002", nil),
	}

	res := Deduplicate(models.SourceBDO, records, DefaultCollapseWarnRatio)

	assert.Zero(t, res.DuplicateRatio)

	for _, w := range res.Warnings {
		assert.NotEqual(t, models.WarnDuplicateRatio, w.Kind)
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	res := Deduplicate(models.SourceBDO, nil, 0)

	assert.Zero(t, res.InputCount)
	assert.Zero(t, res.UniqueCount)
	assert.Empty(t, res.Records)
	assert.Zero(t, res.DuplicateRatio)
}
