package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	xl := excelize.NewFile()
	defer xl.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := xl.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := xl.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf
}

var importHeader = []interface{}{
	"Name", "map_url", "img_url", "location", "seats",
	"has_toilet", "has_wifi", "has_sockets", "can_take_calls", "coffee_price",
}

func TestImportCafes(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	mustCreate(t, s, "Existing", "London")

	buf := workbook(t,
		importHeader,
		[]interface{}{"Fresh", "m1", "i1", "Paris", "10-20", "yes", "no", "1", "", "€2.00"},
		[]interface{}{"", "m2", "i2", "Paris", "10-20"},
		[]interface{}{"Existing", "m3", "i3", "Rome", "0-10"},
		[]interface{}{"Fresh", "m4", "i4", "Rome", "0-10"},
		[]interface{}{},
		[]interface{}{"Second", "m5", "i5", "Oslo", "50+", "TRUE", "t", "false", "Y"},
	)

	result, err := s.ImportCafes(ctx, buf)
	if err != nil {
		t.Fatalf("ImportCafes: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	wantSkipped := map[int]bool{3: true, 4: true, 5: true}
	if len(result.Skipped) != len(wantSkipped) {
		t.Fatalf("Skipped = %+v, want rows 3, 4 and 5", result.Skipped)
	}
	for _, sk := range result.Skipped {
		if !wantSkipped[sk.Row] {
			t.Errorf("unexpected skipped row %+v", sk)
		}
	}

	paris, _ := s.SearchByLocation(ctx, "Paris")
	if len(paris) != 1 {
		t.Fatalf("Paris cafes = %d, want 1", len(paris))
	}
	fresh := paris[0]
	if !fresh.HasToilet || fresh.HasWifi || !fresh.HasSockets || fresh.CanTakeCalls {
		t.Errorf("flags = %+v", fresh)
	}
	if fresh.CoffeePrice == nil || *fresh.CoffeePrice != "€2.00" {
		t.Errorf("CoffeePrice = %v, want €2.00", fresh.CoffeePrice)
	}

	oslo, _ := s.SearchByLocation(ctx, "Oslo")
	if len(oslo) != 1 || oslo[0].CoffeePrice != nil {
		t.Errorf("Oslo = %+v, want one cafe without a price", oslo)
	}
}

func TestImportCafesRejectsBadWorkbooks(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		data *bytes.Buffer
	}{
		{"not xlsx", bytes.NewBufferString("name,location\n")},
		{"header only", workbook(t, importHeader)},
		{"missing column", workbook(t,
			[]interface{}{"name", "map_url", "img_url", "location"},
			[]interface{}{"A", "m", "i", "London"},
		)},
		{"no valid rows", workbook(t,
			importHeader,
			[]interface{}{"A", "", "i", "London", "1"},
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ImportCafes(ctx, tt.data)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ImportCafes error = %v, want *ValidationError", err)
			}
		})
	}

	all, _ := s.ListAll(ctx)
	if len(all) != 0 {
		t.Errorf("rejected imports stored %d cafes", len(all))
	}
}

func TestExportCafes(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	a := mustCreate(t, s, "A", "London")
	in := sampleInput("B", "Paris")
	in.CoffeePrice = nil
	if _, err := s.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var buf bytes.Buffer
	if err := s.ExportCafes(ctx, &buf); err != nil {
		t.Fatalf("ExportCafes: %v", err)
	}

	xl, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer xl.Close()
	rows, err := xl.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][10] != "coffee_price" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != a.Name || rows[1][10] != "£2.50" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[1][6] != "TRUE" {
		t.Errorf("has_toilet cell = %q, want TRUE", rows[1][6])
	}
	if rows[2][1] != "B" {
		t.Errorf("second row = %v", rows[2])
	}
}
