// Package excel exporta el kardex a una hoja de cálculo .xlsx.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
)

const (
	sheetName  = "Kardex"
	dateFormat = "2006-01-02 15:04:05"
	// headerRow fila de la cabecera de la tabla; arriba quedan los datos del producto.
	headerRow = 5
)

var headings = []string{"Fecha", "Tipo", "Referencia", "Nota", "Entrada", "Salida", "Saldo anterior", "Saldo", "Usuario"}

var _ inventory.KardexExporter = (*KardexExcelExporter)(nil)

// KardexExcelExporter implementa inventory.KardexExporter con excelize.
type KardexExcelExporter struct{}

// NewKardexExcelExporter construye el exportador.
func NewKardexExcelExporter() *KardexExcelExporter { return &KardexExcelExporter{} }

func (e *KardexExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *KardexExcelExporter) Extension() string { return "xlsx" }

// ExportKardex escribe una hoja con el resumen del periodo y una fila por movimiento.
func (e *KardexExcelExporter) ExportKardex(ctx context.Context, report *inventory.KardexReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	// El libro nuevo trae "Sheet1"; se renombra en lugar de crear otra hoja.
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	from, to := "inicio", "hoy"
	if report.From != nil {
		from = report.From.Format(dateFormat)
	}
	if report.To != nil {
		to = report.To.Format(dateFormat)
	}
	summary := [][]interface{}{
		{"Producto", report.Product.SKU, report.Product.Name},
		{"Periodo", from, to},
		{"Saldo inicial", report.Opening.InexactFloat64(), "Saldo final", report.Closing.InexactFloat64()},
	}
	for i, values := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: resumen: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, bold); err != nil {
			return nil, fmt.Errorf("excel: resumen: %w", err)
		}
	}

	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headings), headerRow)
	if err := f.SetSheetRow(sheetName, first, &headings); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	if err := f.SetCellStyle(sheetName, first, last, header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}

	for i, entry := range report.Entries {
		m := entry.Movement
		var in, out interface{}
		if m.Sign > 0 {
			in = m.Quantity.InexactFloat64()
		} else {
			out = m.Quantity.InexactFloat64()
		}
		values := []interface{}{
			m.OccurredAt.Format(dateFormat),
			string(m.Kind),
			m.Reference,
			m.Note,
			in,
			out,
			entry.BalanceBefore.InexactFloat64(),
			entry.BalanceAfter.InexactFloat64(),
			m.CreatedBy,
		}
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 20); err != nil {
		return nil, fmt.Errorf("excel: ancho de columna: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "D", 24); err != nil {
		return nil, fmt.Errorf("excel: ancho de columna: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
