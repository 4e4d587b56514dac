package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"nshopping-manager/models"
)

// XLSXSheet is the worksheet rows are written to.
const XLSXSheet = "Results"

// XLSXPlacementSheet holds each keyword's best rank per tracked brand.
const XLSXPlacementSheet = "Placements"

// XLSXWriter buffers rows in a workbook and saves it on Close.
type XLSXWriter struct {
	mu   sync.Mutex
	path string
	file *excelize.File
	next int
}

// NewXLSXWriter prepares a workbook with a header row. Nothing touches the
// disk until Close.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := make([]interface{}, len(rowHeader))
	for i, h := range rowHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: write header: %w", err)
	}

	return &XLSXWriter{path: path, file: f, next: 2}, nil
}

// Write appends rows below the previous ones. Numeric columns stay numeric.
func (x *XLSXWriter) Write(rows []models.ClassifiedRow) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, r := range rows {
		var rank interface{} = r.RankLabel()
		if r.Rank > 0 {
			rank = r.Rank
		}
		values := []interface{}{
			r.Date, r.Keyword, r.SearchVolume, r.AvgClicks, r.CTR, rank,
			r.MerchantName, r.Title, r.Price, r.Link, string(r.Category),
		}

		cell, err := excelize.CoordinatesToCellName(1, x.next)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := x.file.SetSheetRow(XLSXSheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", x.next, err)
		}
		x.next++
	}
	return nil
}

// WritePlacements fills the placement sheet: keyword, top merchant, best own
// rank, then one rank column per brand label. Absent brands get the placeholder.
func (x *XLSXWriter) WritePlacements(placements []models.Placement) error {
	if len(placements) == 0 {
		return nil
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, err := x.file.NewSheet(XLSXPlacementSheet); err != nil {
		return fmt.Errorf("xlsx: add placement sheet: %w", err)
	}

	header := []interface{}{"keyword", "top_mall", "own_best"}
	for _, b := range placements[0].Brands {
		header = append(header, b.Label)
	}
	if err := x.file.SetSheetRow(XLSXPlacementSheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write placement header: %w", err)
	}

	for i, p := range placements {
		values := []interface{}{p.Keyword, p.TopMerchant, rankCell(p.OwnBest)}
		for _, b := range p.Brands {
			values = append(values, rankCell(b.Rank))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := x.file.SetSheetRow(XLSXPlacementSheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: write placement %d: %w", i+2, err)
		}
	}
	return nil
}

func rankCell(rank int) interface{} {
	if rank <= 0 {
		return models.Placeholder
	}
	return rank
}

// Close saves the workbook to its path.
func (x *XLSXWriter) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.file.SaveAs(x.path); err != nil {
		_ = x.file.Close()
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return x.file.Close()
}
