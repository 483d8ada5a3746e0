package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrBadSchema reports an ingested file missing a required column.
var ErrBadSchema = errors.New("missing required column")

// Candle is one parsed OHLCV row before an asset id is attached.
type Candle struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

var required = []string{"open", "high", "low", "close", "volume"}

// columnIndex maps lowercased header names to positions. The date column
// may be labelled either "date" or "index" (exported frames use both).
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	if _, ok := idx["date"]; !ok {
		if pos, ok := idx["index"]; ok {
			idx["date"] = pos
		} else {
			return nil, fmt.Errorf("%w: date", ErrBadSchema)
		}
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrBadSchema, name)
		}
	}
	return idx, nil
}

func parseCandle(record []string, idx map[string]int) (Candle, error) {
	var candle Candle

	field := func(name string) (string, error) {
		pos := idx[name]
		if pos >= len(record) {
			return "", fmt.Errorf("record too short for column %s", name)
		}
		v := strings.TrimSpace(record[pos])
		if v == "" {
			return "", fmt.Errorf("empty value for column %s", name)
		}
		return v, nil
	}

	dateStr, err := field("date")
	if err != nil {
		return candle, err
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return candle, fmt.Errorf("invalid date format: %w", err)
	}

	values := make(map[string]float64, len(required))
	for _, name := range required {
		raw, err := field(name)
		if err != nil {
			return candle, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return candle, fmt.Errorf("invalid %s value: %w", name, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return candle, fmt.Errorf("non-finite %s value", name)
		}
		values[name] = v
	}

	if values["volume"] < 0 {
		return candle, fmt.Errorf("negative volume %f", values["volume"])
	}

	candle.Date = date
	candle.Open = values["open"]
	candle.High = values["high"]
	candle.Low = values["low"]
	candle.Close = values["close"]
	candle.Volume = values["volume"]
	return candle, nil
}

// ReadCSV parses a daily OHLCV file with a header row. Rows with missing
// or malformed fields are dropped; a missing column fails the whole load.
func ReadCSV(path string) ([]Candle, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	var candles []Candle
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		candle, err := parseCandle(record, idx)
		if err != nil {
			skipped++
			continue
		}
		candles = append(candles, candle)
	}

	return candles, skipped, nil
}
