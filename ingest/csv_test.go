package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp csv: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTemp(t, "Date,Close,High,Low,Open,Volume\n"+
		"2024-01-15,42980.25,43250.5,41800.0,42100.0,18234567\n"+
		"2024-01-16,43100.00,43500.0,42700.0,42980.25,16020044\n")

	candles, skipped, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	if skipped != 0 {
		t.Errorf("Expected 0 skipped rows, got %d", skipped)
	}
	if len(candles) != 2 {
		t.Fatalf("Expected 2 candles, got %d", len(candles))
	}

	expectedDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !candles[0].Date.Equal(expectedDate) {
		t.Errorf("Expected date %v, got %v", expectedDate, candles[0].Date)
	}
	if candles[0].Close != 42980.25 {
		t.Errorf("Expected close 42980.25, got %f", candles[0].Close)
	}
	if candles[1].Volume != 16020044 {
		t.Errorf("Expected volume 16020044, got %f", candles[1].Volume)
	}
}

func TestReadCSVIndexHeader(t *testing.T) {
	// Frames exported with the date in the index column.
	path := writeTemp(t, "index,close,high,low,open,volume\n"+
		"2024-01-15,100,101,99,100,5\n")

	candles, _, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	if len(candles) != 1 {
		t.Fatalf("Expected 1 candle, got %d", len(candles))
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	path := writeTemp(t, "Date,Close,High,Low,Open\n"+
		"2024-01-15,100,101,99,100\n")

	_, _, err := ReadCSV(path)
	if err == nil {
		t.Fatal("Expected error for missing volume column, got nil")
	}
	if !errors.Is(err, ErrBadSchema) {
		t.Errorf("Expected ErrBadSchema, got %v", err)
	}
}

func TestReadCSVDropsMalformedRows(t *testing.T) {
	path := writeTemp(t, "date,open,high,low,close,volume\n"+
		"2024-01-15,100,101,99,100,5\n"+
		"not-a-date,100,101,99,100,5\n"+
		"2024-01-16,100,101,99,,5\n"+
		"2024-01-17,100,101,99,100,-5\n"+
		"2024-01-18,100,101,99,100,5\n")

	candles, skipped, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	if len(candles) != 2 {
		t.Errorf("Expected 2 valid candles, got %d", len(candles))
	}
	if skipped != 3 {
		t.Errorf("Expected 3 skipped rows, got %d", skipped)
	}
}

func TestParseCandleInvalidPrice(t *testing.T) {
	idx, err := columnIndex([]string{"date", "open", "high", "low", "close", "volume"})
	if err != nil {
		t.Fatalf("failed to map header: %v", err)
	}

	_, err = parseCandle([]string{"2024-01-15", "100", "101", "99", "invalid-price", "5"}, idx)
	if err == nil {
		t.Error("Expected error for invalid price, got nil")
	}
}
