package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

func sampleReport() *inventory.KardexReport {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	in := entity.Movement{ID: 1, ProductID: "p1", Kind: entity.MovementPurchaseIn, Quantity: decimal.NewFromInt(100), Sign: 1, Reference: "OC-1", OccurredAt: t0}
	out := entity.Movement{ID: 2, ProductID: "p1", Kind: entity.MovementSaleOut, Quantity: decimal.NewFromInt(30), Sign: -1, Reference: "V-9", OccurredAt: t0.Add(time.Hour)}
	return &inventory.KardexReport{
		Product: entity.Product{ID: "p1", SKU: "ACE-500", Name: "Acetaminofén 500mg x 100", Active: true},
		Opening: decimal.Zero,
		Closing: decimal.NewFromInt(70),
		Entries: []entity.KardexEntry{
			{Movement: in, BalanceBefore: decimal.Zero, BalanceAfter: decimal.NewFromInt(100)},
			{Movement: out, BalanceBefore: decimal.NewFromInt(100), BalanceAfter: decimal.NewFromInt(70)},
		},
		GeneratedAt: t0.Add(2 * time.Hour),
	}
}

func TestKardexPDFGenerator_GeneraDocumento(t *testing.T) {
	g := NewKardexPDFGenerator("Farmacia")
	out, err := g.ExportKardex(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", g.ContentType())
	assert.Equal(t, "pdf", g.Extension())
}

func TestKardexPDFGenerator_SinMovimientos(t *testing.T) {
	r := sampleReport()
	r.Entries = nil
	out, err := NewKardexPDFGenerator("").ExportKardex(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestKardexPDFGenerator_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKardexPDFGenerator("").ExportKardex(ctx, sampleReport())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatQuantity(t *testing.T) {
	tests := map[string]string{
		"0":        "0",
		"25000":    "25.000",
		"1000000":  "1.000.000",
		"-1234.5":  "-1.234,5",
		"12.25":    "12,25",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatQuantity(decimal.RequireFromString(in)), in)
	}
}
