package exporters

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/terratensor/siruta/internal/core/ports"
)

// JSONWriter пишет записи как массив объектов, по одному объекту на запись
type JSONWriter struct {
	writer  *bufio.Writer
	options ports.ExportOptions
	started bool
}

func NewJSONWriter(w io.Writer, options ports.ExportOptions) (*JSONWriter, error) {
	return &JSONWriter{
		writer:  bufio.NewWriter(w),
		options: options,
	}, nil
}

// WriteHeader is a no-op: JSON records carry their own keys
func (w *JSONWriter) WriteHeader(columns []string) error {
	return nil
}

func (w *JSONWriter) WriteRecord(record map[string]interface{}) error {
	var data []byte
	var err error

	if w.options.PrettyPrint {
		data, err = json.MarshalIndent(record, "  ", "  ")
	} else {
		data, err = json.Marshal(record)
	}
	if err != nil {
		return err
	}

	if !w.started {
		if _, err := w.writer.WriteString("[\n  "); err != nil {
			return err
		}
		w.started = true
	} else {
		if _, err := w.writer.WriteString(",\n  "); err != nil {
			return err
		}
	}

	_, err = w.writer.Write(data)
	return err
}

func (w *JSONWriter) Close() error {
	if !w.started {
		if _, err := w.writer.WriteString("[]\n"); err != nil {
			return err
		}
		return w.writer.Flush()
	}
	if _, err := w.writer.WriteString("\n]\n"); err != nil {
		return err
	}
	return w.writer.Flush()
}
