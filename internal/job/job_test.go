package job

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemUnitPrice(t *testing.T) {
	item := LineItem{Quantity: 2, SubTotal: decimal.NewFromInt(100000)}
	assert.True(t, item.UnitPrice().Equal(decimal.NewFromInt(50000)))

	free := LineItem{Quantity: 0, SubTotal: decimal.NewFromInt(100000)}
	assert.True(t, free.UnitPrice().IsZero())

	rounded := LineItem{Quantity: 3, SubTotal: decimal.NewFromInt(100)}
	assert.True(t, rounded.UnitPrice().Equal(decimal.NewFromInt(33)))
}

func TestLineItemDimension(t *testing.T) {
	tests := []struct {
		name   string
		length string
		width  string
		want   string
	}{
		{"both present", "300", "100", "300 x 100"},
		{"length missing", "", "100", "-"},
		{"width missing", "300", "", "-"},
		{"literal null from upstream", "null", "100", "-"},
		{"both null", "null", "null", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := LineItem{Length: tt.length, Width: tt.width}
			assert.Equal(t, tt.want, item.Dimension())
		})
	}
}

func TestLineItemFinishingLabel(t *testing.T) {
	assert.Equal(t, "Lembaran", LineItem{}.FinishingLabel())
	assert.Equal(t, "Mata Ayam", LineItem{Finishing: "Mata Ayam"}.FinishingLabel())
}

func TestSelectedItems(t *testing.T) {
	items := []LineItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	t.Run("nil selection means all items", func(t *testing.T) {
		j := &PrintJob{Items: items}
		got, empty := j.SelectedItems()
		assert.False(t, empty)
		assert.Len(t, got, 3)
	})

	t.Run("empty selection means placeholder", func(t *testing.T) {
		j := &PrintJob{Items: items, SelectedItemIDs: []string{}}
		got, empty := j.SelectedItems()
		assert.True(t, empty)
		assert.Empty(t, got)
	})

	t.Run("subset keeps item order", func(t *testing.T) {
		j := &PrintJob{Items: items, SelectedItemIDs: []string{"c", "a"}}
		got, empty := j.SelectedItems()
		require.False(t, empty)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		j := &PrintJob{Items: items, SelectedItemIDs: []string{"zzz"}}
		got, empty := j.SelectedItems()
		assert.False(t, empty)
		assert.Empty(t, got)
	})
}

func TestValidate(t *testing.T) {
	valid := &PrintJob{
		Type:     TypeReceipt,
		Settings: Settings{Copies: 1, CutType: CutFull},
	}
	require.NoError(t, valid.Validate())

	badType := &PrintJob{Type: "poster", Settings: Settings{Copies: 1, CutType: CutFull}}
	assert.ErrorIs(t, badType.Validate(), ErrInvalidJob)

	noCopies := &PrintJob{Type: TypeGeneric, Settings: Settings{Copies: 0, CutType: CutNone}}
	assert.ErrorIs(t, noCopies.Validate(), ErrInvalidJob)

	badCut := &PrintJob{Type: TypeGeneric, Settings: Settings{Copies: 1, CutType: "tear"}}
	assert.ErrorIs(t, badCut.Validate(), ErrInvalidJob)
}
