package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/terratensor/siruta/internal/config"
	"github.com/terratensor/siruta/internal/core/domain"
)

const seedHeader = "id,code,registry_code,level,parent_code,name,nuts_hint,type_hint,urban_flag,source"

// registryFixture повторяет срез официальной выгрузки: строки других уровней
// перемешаны с единицами NIV=2
const registryFixture = `NIV;SIRUTA;DENLOC;JUD;NUTS;MED;TIP
1;10;JUDETUL ALBA;1;RO121;;40
2;1017;MUNICIPIUL ALBA IULIA;1;RO121;1;1
3;1026;ALBA IULIA;1;RO121;1;9
2;54975;MUNICIPIUL CLUJ-NAPOCA;12;RO113;1;1
2;12345;COMUNA EXEMPLU;1;RO121;0;23
`

func generatorConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		SirutaPath:      filepath.Join(dir, "siruta.csv"),
		PriorExportPath: filepath.Join(dir, "prior.csv"),
		OutputPath:      filepath.Join(dir, "territories.csv"),
		OutputFormat:    "csv",
		SirutaDelimiter: ';',
		OutputDelimiter: ',',
	}
}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

// readSeed разбирает готовый seed в записи по колонкам
func readSeed(t *testing.T, path string) []map[string]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(rows) < 1 {
		t.Fatal("output is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, col := range header {
			record[col] = row[i]
		}
		records = append(records, record)
	}
	return records
}

func seedIDs(t *testing.T, records []map[string]string) map[string]int64 {
	t.Helper()
	ids := make(map[string]int64, len(records))
	for _, record := range records {
		id, err := strconv.ParseInt(record["id"], 10, 64)
		if err != nil {
			t.Fatalf("invalid id %q in output", record["id"])
		}
		ids[record["code"]] = id
	}
	return ids
}

func TestGeneratorFirstRun(t *testing.T) {
	cfg := generatorConfig(t)
	writeFixture(t, cfg.SirutaPath, registryFixture)

	// Большинство жудецов без единиц: находки консультативны, запуск успешен
	if err := NewGenerator(cfg).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	raw, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if lines[0] != seedHeader {
		t.Errorf("header = %q; want %q", lines[0], seedHeader)
	}

	records := readSeed(t, cfg.OutputPath)

	// 55 строк каркаса + 3 единицы реестра + 2 ручные
	if len(records) != 60 {
		t.Fatalf("output has %d records; want 60", len(records))
	}

	// Первая строка данных: национальный корень с id 1
	root := records[0]
	if root["code"] != "RO" || root["id"] != "1" || root["name"] != "TOTAL" {
		t.Errorf("first record = %v; want id 1, code RO, name TOTAL", root)
	}
	if root["level"] != "NATIONAL" || root["source"] != "STATIC" || root["parent_code"] != "" {
		t.Errorf("first record = %v; want root national static row", root)
	}

	byCode := make(map[string]map[string]string, len(records))
	for _, record := range records {
		byCode[record["code"]] = record
	}

	unit := byCode["1017"]
	if unit == nil {
		t.Fatal("output missing registry unit 1017")
	}
	if unit["parent_code"] != "AB" || unit["urban_flag"] != "1" || unit["source"] != "REGISTRY" {
		t.Errorf("unit 1017 = %v; want parent AB, urban, REGISTRY", unit)
	}
	if unit["registry_code"] != "1017" || unit["level"] != "LAU" {
		t.Errorf("unit 1017 = %v; want registry_code 1017, level LAU", unit)
	}

	// Сельская единица: MED не равен 1
	rural := byCode["12345"]
	if rural == nil {
		t.Fatal("output missing registry unit 12345")
	}
	if rural["parent_code"] != "AB" || rural["urban_flag"] != "0" || rural["source"] != "REGISTRY" {
		t.Errorf("unit 12345 = %v; want parent AB, rural, REGISTRY", rural)
	}

	manual := byCode["70049"]
	if manual == nil {
		t.Fatal("output missing manual unit 70049")
	}
	if manual["parent_code"] != "DJ" || manual["urban_flag"] != "0" || manual["source"] != "MANUAL_OVERRIDE" {
		t.Errorf("manual unit = %v; want parent DJ, rural, MANUAL_OVERRIDE", manual)
	}

	// Порядок: глубина уровня, внутри уровня код по возрастанию
	prevDepth := -1
	prevCode := ""
	for _, record := range records {
		level, err := domain.ParseLevel(record["level"])
		if err != nil {
			t.Fatalf("output has invalid level %q", record["level"])
		}
		depth := level.Depth()
		if depth < prevDepth {
			t.Fatalf("record %s breaks level ordering", record["code"])
		}
		if depth == prevDepth && record["code"] < prevCode {
			t.Fatalf("record %s breaks code ordering within level", record["code"])
		}
		prevDepth = depth
		prevCode = record["code"]
	}

	// Первый запуск чеканит плотно: максимум id равен числу территорий
	ids := seedIDs(t, records)
	seen := make(map[int64]bool, len(ids))
	var max int64
	for code, id := range ids {
		if id < 1 {
			t.Errorf("id for %s = %d; want positive", code, id)
		}
		if seen[id] {
			t.Errorf("id %d assigned twice", id)
		}
		seen[id] = true
		if id > max {
			max = id
		}
	}
	if max != int64(len(records)) {
		t.Errorf("max id = %d; want %d", max, len(records))
	}

	// Подъём по родителям достигает корня ровно за глубину уровня
	for _, record := range records {
		level, _ := domain.ParseLevel(record["level"])
		steps := 0
		current := record
		for current["parent_code"] != "" {
			next, ok := byCode[current["parent_code"]]
			if !ok {
				t.Fatalf("record %s has dangling parent %s", record["code"], current["parent_code"])
			}
			current = next
			steps++
			if steps > 10 {
				t.Fatalf("record %s walks more than 10 parents", record["code"])
			}
		}
		if current["code"] != "RO" {
			t.Errorf("record %s does not reach the national root", record["code"])
		}
		if steps != level.Depth() {
			t.Errorf("record %s reaches root in %d steps; want %d", record["code"], steps, level.Depth())
		}
	}
}

func TestGeneratorIDStability(t *testing.T) {
	cfg := generatorConfig(t)
	writeFixture(t, cfg.SirutaPath, registryFixture)

	if err := NewGenerator(cfg).Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	firstIDs := seedIDs(t, readSeed(t, cfg.OutputPath))

	// Вторая генерация: прежний выход становится предыдущим экспортом,
	// в реестре появляется новая единица
	cfg2 := generatorConfig(t)
	cfg2.PriorExportPath = cfg.OutputPath
	writeFixture(t, cfg2.SirutaPath, registryFixture+"2;101;COMUNA NOUA;2;RO421;2;23\n")

	if err := NewGenerator(cfg2).Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	secondIDs := seedIDs(t, readSeed(t, cfg2.OutputPath))

	// Все прежние территории сохраняют идентификаторы
	for code, id := range firstIDs {
		if secondIDs[code] != id {
			t.Errorf("id for %s changed from %d to %d", code, id, secondIDs[code])
		}
	}

	// Новая единица чеканится за максимумом предыдущего экспорта
	var max int64
	for _, id := range firstIDs {
		if id > max {
			max = id
		}
	}
	if got := secondIDs["101"]; got != max+1 {
		t.Errorf("new unit id = %d; want %d", got, max+1)
	}
}

func TestGeneratorJSONOutput(t *testing.T) {
	cfg := generatorConfig(t)
	cfg.OutputFormat = "json"
	cfg.OutputPath = filepath.Join(filepath.Dir(cfg.OutputPath), "territories.json")
	writeFixture(t, cfg.SirutaPath, registryFixture)

	if err := NewGenerator(cfg).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	raw, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 60 {
		t.Fatalf("output has %d records; want 60", len(records))
	}
	if records[0]["code"] != "RO" || records[0]["id"] != float64(1) {
		t.Errorf("first record = %v; want code RO, id 1", records[0])
	}
}

func TestGeneratorMissingExtract(t *testing.T) {
	cfg := generatorConfig(t)
	// SIRUTA файл не создаём

	err := NewGenerator(cfg).Run(context.Background())
	if err == nil {
		t.Fatal("Run() without registry extract should fail")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v; want not found", err)
	}
}

func TestSortTerritories(t *testing.T) {
	territories := []*domain.Territory{
		{Code: "54975", Level: domain.LevelLAU},
		{Code: "RO", Level: domain.LevelNational},
		{Code: "CJ", Level: domain.LevelNUTS3},
		{Code: "AB", Level: domain.LevelNUTS3},
		{Code: "1017", Level: domain.LevelLAU},
		{Code: "RO11", Level: domain.LevelNUTS2},
	}

	SortTerritories(territories)

	want := []string{"RO", "RO11", "AB", "CJ", "1017", "54975"}
	for i, code := range want {
		if territories[i].Code != code {
			t.Errorf("position %d = %s; want %s", i, territories[i].Code, code)
		}
	}
}
