package export_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"seftali/internal/upstream"
)

type DeliverySource interface {
	DeliveryHistory(ctx context.Context) ([]upstream.Delivery, error)
}

type ExportService struct {
	source DeliverySource
}

func NewExportService(source DeliverySource) *ExportService {
	return &ExportService{source: source}
}

// DeliveryHistoryExcel renders the delivery history as an xlsx workbook, one
// row per delivered line.
func (s *ExportService) DeliveryHistoryExcel(ctx context.Context) ([]byte, error) {
	deliveries, err := s.source.DeliveryHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch deliveries: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Teslimat Geçmişi"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{"Teslimat No", "Tarih", "Müşteri", "Durum", "Ürün", "Miktar"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	rowNum := 2
	for _, d := range deliveries {
		if len(d.Items) == 0 {
			f.SetCellValue(sheet, cellName(1, rowNum), d.ID)
			f.SetCellValue(sheet, cellName(2, rowNum), d.DeliveryDate)
			f.SetCellValue(sheet, cellName(3, rowNum), d.CustomerName)
			f.SetCellValue(sheet, cellName(4, rowNum), d.Status)
			rowNum++
			continue
		}
		for _, item := range d.Items {
			f.SetCellValue(sheet, cellName(1, rowNum), d.ID)
			f.SetCellValue(sheet, cellName(2, rowNum), d.DeliveryDate)
			f.SetCellValue(sheet, cellName(3, rowNum), d.CustomerName)
			f.SetCellValue(sheet, cellName(4, rowNum), d.Status)
			f.SetCellValue(sheet, cellName(5, rowNum), item.ProductName)
			f.SetCellValue(sheet, cellName(6, rowNum), item.Qty)
			rowNum++
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "A", "F", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
