package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

func TestKardexExcelExporter_EscribeFilas(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	from := t0.Add(-24 * time.Hour)
	report := &inventory.KardexReport{
		Product: entity.Product{ID: "p1", SKU: "AMX-500", Name: "Amoxicilina 500mg x 50"},
		From:    &from,
		Opening: decimal.NewFromInt(10),
		Closing: decimal.NewFromInt(35),
		Entries: []entity.KardexEntry{
			{
				Movement:      entity.Movement{ID: 1, Kind: entity.MovementPurchaseIn, Quantity: decimal.NewFromInt(50), Sign: 1, Reference: "OC-7", OccurredAt: t0, CreatedBy: "u1"},
				BalanceBefore: decimal.NewFromInt(10),
				BalanceAfter:  decimal.NewFromInt(60),
			},
			{
				Movement:      entity.Movement{ID: 2, Kind: entity.MovementSaleOut, Quantity: decimal.NewFromInt(25), Sign: -1, Reference: "V-3", OccurredAt: t0.Add(time.Hour)},
				BalanceBefore: decimal.NewFromInt(60),
				BalanceAfter:  decimal.NewFromInt(35),
			},
		},
		GeneratedAt: t0,
	}

	exp := NewKardexExcelExporter()
	out, err := exp.ExportKardex(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", exp.Extension())

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, headerRow+2)

	assert.Equal(t, []string{"Producto", "AMX-500", "Amoxicilina 500mg x 50"}, rows[0])
	assert.Equal(t, "hoy", rows[1][2])
	assert.Equal(t, headings, rows[headerRow-1])

	compra := rows[headerRow]
	assert.Equal(t, "PURCHASE_IN", compra[1])
	assert.Equal(t, "OC-7", compra[2])
	assert.Equal(t, "50", compra[4])
	assert.Equal(t, "", compra[5])
	assert.Equal(t, "60", compra[7])
	assert.Equal(t, "u1", compra[8])

	venta := rows[headerRow+1]
	assert.Equal(t, "SALE_OUT", venta[1])
	assert.Equal(t, "", venta[4])
	assert.Equal(t, "25", venta[5])
	assert.Equal(t, "35", venta[7])
}

func TestKardexExcelExporter_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKardexExcelExporter().ExportKardex(ctx, &inventory.KardexReport{})
	assert.ErrorIs(t, err, context.Canceled)
}
