package importer

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/tealeg/xlsx/v3"
)

// ReadXLSX reads the first sheet of a workbook. The first non-empty row
// is the header row; fully empty rows are skipped.
func ReadXLSX(r io.Reader) ([]string, [][]string, error) {
	// xlsx.OpenBinary needs the whole document
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read workbook")
	}
	if len(data) == 0 {
		return nil, nil, nil
	}

	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open workbook")
	}
	if len(wb.Sheets) == 0 {
		return nil, nil, nil
	}
	sheet := wb.Sheets[0]

	var table [][]string
	err = sheet.ForEachRow(func(row *xlsx.Row) error {
		var cells []string
		blank := true
		if err := row.ForEachCell(func(c *xlsx.Cell) error {
			v := c.String()
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			cells = append(cells, v)
			return nil
		}); err != nil {
			return err
		}
		if !blank {
			table = append(table, cells)
		}
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read sheet %s", sheet.Name)
	}

	if len(table) == 0 {
		return nil, nil, nil
	}
	return table[0], table[1:], nil
}
