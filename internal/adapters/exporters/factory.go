package exporters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/terratensor/siruta/internal/core/ports"
)

type WriterFactory struct{}

func NewWriterFactory() *WriterFactory {
	return &WriterFactory{}
}

func (f *WriterFactory) CreateWriter(w io.Writer, options ports.ExportOptions) (ports.RecordWriter, error) {
	switch options.Format {
	case ports.FormatCSV:
		return NewCSVWriter(w, options)
	case ports.FormatJSON:
		return NewJSONWriter(w, options)
	default:
		return nil, fmt.Errorf("unsupported format: %s", options.Format)
	}
}

// CreateFileWriter открывает файл (создавая директорию при необходимости)
// и оборачивает его в writer выбранного формата
func (f *WriterFactory) CreateFileWriter(filePath string, options ports.ExportOptions) (ports.RecordWriter, error) {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	writer, err := f.CreateWriter(file, options)
	if err != nil {
		file.Close()
		return nil, err
	}

	// Close должен закрыть и writer, и сам файл
	return &fileWriter{
		RecordWriter: writer,
		file:         file,
	}, nil
}

type fileWriter struct {
	ports.RecordWriter
	file *os.File
}

func (w *fileWriter) Close() error {
	if err := w.RecordWriter.Close(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
