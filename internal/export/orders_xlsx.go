// Package export renders the order ledger as an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/xyzlearns/ShopEase1/internal/models"
)

const SheetName = "Orders"

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteOrders writes a header row and one ledger row per order to w.
func WriteOrders(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range models.LedgerHeader {
		header.AddCell().SetString(h)
	}
	for i := range orders {
		row := sheet.AddRow()
		for _, v := range orders[i].LedgerRow() {
			row.AddCell().SetString(v)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
