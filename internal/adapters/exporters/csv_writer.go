package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/terratensor/siruta/internal/core/ports"
)

type CSVWriter struct {
	writer  *csv.Writer
	options ports.ExportOptions
	columns []string
}

func NewCSVWriter(w io.Writer, options ports.ExportOptions) (*CSVWriter, error) {
	csvWriter := csv.NewWriter(w)
	if options.Delimiter != 0 {
		csvWriter.Comma = options.Delimiter
	} else {
		csvWriter.Comma = ',' // default
	}

	return &CSVWriter{
		writer:  csvWriter,
		options: options,
		columns: options.Columns,
	}, nil
}

func (w *CSVWriter) WriteHeader(columns []string) error {
	// Порядок колонок фиксируется первым источником: опции или заголовок
	if len(w.columns) == 0 {
		w.columns = columns
	}
	if !w.options.IncludeHeader {
		return nil
	}
	return w.writer.Write(w.columns)
}

func (w *CSVWriter) WriteRecord(record map[string]interface{}) error {
	if len(w.columns) == 0 {
		return fmt.Errorf("no columns configured")
	}

	row := make([]string, len(w.columns))
	for i, col := range w.columns {
		row[i] = formatValue(record[col])
	}

	return w.writer.Write(row)
}

func (w *CSVWriter) Close() error {
	w.writer.Flush()
	return w.writer.Error()
}

// formatValue приводит значение записи к строке для CSV
func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
