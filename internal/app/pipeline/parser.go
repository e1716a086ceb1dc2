package pipeline

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/terratensor/siruta/internal/config"
)

// BaseParser holds what every file parser needs: config and csv plumbing
type BaseParser struct {
	cfg *config.Config
}

func NewBaseParser(cfg *config.Config) *BaseParser {
	return &BaseParser{cfg: cfg}
}

// DelimitedReader creates a csv.Reader tuned for registry exports
func (p *BaseParser) DelimitedReader(file *os.File, comma rune) *csv.Reader {
	br := bufio.NewReader(file)
	skipBOM(br)

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // в выгрузках встречаются строки с неполным хвостом
	reader.ReuseRecord = true
	return reader
}

// ProgressBar returns a byte-based progress bar sized to the file
func (p *BaseParser) ProgressBar(file *os.File, description string) (*progressbar.ProgressBar, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return progressbar.NewOptions64(
		stat.Size(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	), nil
}

// ParseInt parses a base-10 integer, rejecting empty values
func (p *BaseParser) ParseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseInt(s, 10, 64)
}

// skipBOM отбрасывает UTF-8 BOM, которым часто начинаются выгрузки из Windows
func skipBOM(br *bufio.Reader) {
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		br.Discard(3)
	}
}

// columnIndex строит отображение имени колонки (в нижнем регистре) в позицию
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// columnAt возвращает значение именованной колонки или пустую строку
func columnAt(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok {
		return ""
	}
	return safeString(record, i)
}

func safeString(record []string, index int) string {
	if index >= 0 && index < len(record) {
		return strings.TrimSpace(record[index])
	}
	return ""
}
