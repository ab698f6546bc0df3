package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cafe-api/model"
	"cafe-api/utils"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const exportSheet = "Cafes"

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Imported int          `json:"imported"`
	Skipped  []SkippedRow `json:"skipped"`
}

// ImportCafes reads the first sheet of an xlsx workbook and inserts every valid row
// in a single transaction. Row 1 must name the columns.
func (s *CafeService) ImportCafes(ctx context.Context, r io.Reader) (ImportResult, error) {
	result := ImportResult{Skipped: []SkippedRow{}}

	xl, err := excelize.OpenReader(r)
	if err != nil {
		return result, &ValidationError{Field: "file", Message: "is not a valid xlsx workbook"}
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		return result, &ValidationError{Field: "file", Message: "must have a header row and at least one row of data"}
	}

	idx := make(map[string]int)
	for _, col := range model.Columns() {
		idx[col] = headerIndex(rows[0], col)
	}
	for _, col := range []string{"name", "map_url", "img_url", "location", "seats"} {
		if idx[col] < 0 {
			return result, &ValidationError{Field: "file", Message: "is missing the " + col + " column"}
		}
	}

	var candidates []rowInput
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(col string) string {
			j := idx[col]
			if j < 0 || j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}
		if isBlank(row) {
			continue
		}

		in := CreateCafeInput{
			Name:         cell("name"),
			MapURL:       cell("map_url"),
			ImgURL:       cell("img_url"),
			Location:     cell("location"),
			Seats:        cell("seats"),
			HasToilet:    utils.ParseAffirmative(cell("has_toilet")),
			HasWifi:      utils.ParseAffirmative(cell("has_wifi")),
			HasSockets:   utils.ParseAffirmative(cell("has_sockets")),
			CanTakeCalls: utils.ParseAffirmative(cell("can_take_calls")),
		}
		if price := cell("coffee_price"); price != "" {
			in.CoffeePrice = &price
		}
		if err := in.Validate(); err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNum, Reason: err.Error()})
			continue
		}
		candidates = append(candidates, rowInput{row: rowNum, in: in})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.in.Name)
		}
		var existing []string
		if len(names) > 0 {
			if err := tx.Model(&model.Cafe{}).Where("name IN ?", names).Pluck("name", &existing).Error; err != nil {
				return fmt.Errorf("look up existing names: %w", err)
			}
		}
		seen := make(map[string]struct{}, len(existing)+len(candidates))
		for _, n := range existing {
			seen[n] = struct{}{}
		}

		var cafes []model.Cafe
		for _, c := range candidates {
			if _, dup := seen[c.in.Name]; dup {
				result.Skipped = append(result.Skipped, SkippedRow{Row: c.row, Reason: ErrConflict.Error()})
				continue
			}
			seen[c.in.Name] = struct{}{}
			cafes = append(cafes, c.in.cafe())
		}
		if len(cafes) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&cafes, 100).Error; err != nil {
			if isDuplicate(err) {
				return ErrConflict
			}
			return fmt.Errorf("insert cafes: %w", err)
		}
		result.Imported = len(cafes)
		return nil
	})
	if err != nil {
		return result, err
	}
	if result.Imported == 0 {
		return result, &ValidationError{Field: "file", Message: "contains no valid rows"}
	}
	return result, nil
}

// ExportCafes writes every cafe, ordered by id, to an xlsx workbook.
func (s *CafeService) ExportCafes(ctx context.Context, w io.Writer) error {
	cafes, err := s.ListAll(ctx)
	if err != nil {
		return err
	}

	xl := excelize.NewFile()
	defer xl.Close()
	if err := xl.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	cols := model.Columns()
	header := make([]interface{}, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	if err := xl.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, cafe := range cafes {
		m := cafe.ToMap()
		values := make([]interface{}, len(cols))
		for j, col := range cols {
			if v := m[col]; v != nil {
				values[j] = v
			} else {
				values[j] = ""
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := xl.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type rowInput struct {
	row int
	in  CreateCafeInput
}

func headerIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
