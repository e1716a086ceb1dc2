package ports

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

type ExportOptions struct {
	Format        ExportFormat
	FilePath      string
	IncludeHeader bool
	Delimiter     rune     // для CSV
	PrettyPrint   bool     // для JSON
	Columns       []string // порядок колонок в записи
}

// Writer interface for different formats
type RecordWriter interface {
	WriteHeader(columns []string) error
	WriteRecord(record map[string]interface{}) error
	Close() error
}
