package export

import (
	"encoding/csv"
	"os"
)

func WriteCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(Header)
	if err != nil {
		return err
	}
	for _, r := range records {
		err = w.Write(r.Strings())
		if err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
