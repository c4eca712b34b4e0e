package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Columns understood by ParseCSV. Only id and year are required.
const (
	colID          = "id"
	colYear        = "year"
	colName        = "name"
	colBrand       = "brand"
	colDescription = "description"
	colAccent      = "accent_color"
	colColor       = "color"
	colSpecs       = "specs"
	colVideoID     = "video_id"
)

// specSeparator splits the specs cell into tags.
const specSeparator = ";"

// ParseCSV reads cars from CSV with a header row. Header names are matched
// case-insensitively; unknown columns are ignored.
func ParseCSV(r io.Reader) ([]Car, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV header: %v", ErrDatasetFormat, err)
	}

	columnMap := make(map[string]int, len(header))
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{colID, colYear} {
		if _, ok := columnMap[required]; !ok {
			return nil, fmt.Errorf("%w: column %q not found in CSV. Available columns: %v", ErrDatasetFormat, required, header)
		}
	}

	var cars []Car
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDatasetFormat, line, err)
		}

		car, err := parseRow(record, columnMap)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDatasetFormat, line, err)
		}
		cars = append(cars, car)
	}

	if err := checkIDs(cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func parseRow(record []string, columnMap map[string]int) (Car, error) {
	cell := func(name string) string {
		i, ok := columnMap[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	year, err := strconv.Atoi(cell(colYear))
	if err != nil {
		return Car{}, fmt.Errorf("unable to parse year %q", cell(colYear))
	}

	var specs []string
	for _, s := range strings.Split(cell(colSpecs), specSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			specs = append(specs, s)
		}
	}

	return Car{
		ID:          cell(colID),
		Year:        year,
		Name:        cell(colName),
		Brand:       cell(colBrand),
		Description: cell(colDescription),
		AccentColor: cell(colAccent),
		Color:       cell(colColor),
		Specs:       specs,
		VideoID:     cell(colVideoID),
	}, nil
}
