package export

import (
	"github.com/xuri/excelize/v2"
)

func WriteExcel(path string, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := Header
	err := f.SetSheetRow(sheet, "A1", &header)
	if err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.Values()
		err = f.SetSheetRow(sheet, cell, &values)
		if err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
