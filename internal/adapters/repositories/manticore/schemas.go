package manticore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	manticoresearch "github.com/manticoresoftware/manticoresearch-go"
	"github.com/terratensor/siruta/internal/core/domain"
)

const TableTerritories = "territories"

// Схема поисковой таблицы: имя хранится как есть и в ASCII-свёртке,
// материализованный путь индексируется для выборки поддерева
const createTerritoriesSQL = `CREATE TABLE IF NOT EXISTS ` + TableTerritories + ` (
        id bigint,
        code string attribute indexed,
        registry_code string attribute indexed,
        level string,
        parent_code string,
        name text,
        name_ascii text,
        nuts_hint string,
        type_hint string,
        urban_flag string,
        source string,
        hierarchy_path string attribute indexed
    )
    morphology='libstemmer_ro'
    min_stemming_len='4'
    index_exact_words='1'
    min_infix_len='2'
    expand_keywords='1'`

type ManticoreClient struct {
	client *manticoresearch.APIClient
	host   string
	port   int
}

func NewClient(host string, port int) (*ManticoreClient, error) {
	configuration := manticoresearch.NewConfiguration()
	configuration.Servers = manticoresearch.ServerConfigurations{
		{
			URL: fmt.Sprintf("http://%s:%d", host, port),
		},
	}

	// Bulk на полной выгрузке идёт долго, стандартного таймаута не хватает
	configuration.HTTPClient = &http.Client{
		Timeout: 5 * time.Minute,
	}

	return &ManticoreClient{
		client: manticoresearch.NewAPIClient(configuration),
		host:   host,
		port:   port,
	}, nil
}

// execSQL выполняет запрос через /sql и возвращает hits сырого ответа
func (c *ManticoreClient) execSQL(ctx context.Context, sql string) (map[string]interface{}, error) {
	req := c.client.UtilsAPI.Sql(ctx).Body(sql).RawResponse(true)

	resp, httpResp, err := c.client.UtilsAPI.SqlExecute(req)
	if err != nil {
		if httpResp != nil {
			body, _ := io.ReadAll(httpResp.Body)
			return nil, fmt.Errorf("failed to execute SQL: %w, response: %s", err, string(body))
		}
		return nil, fmt.Errorf("failed to execute SQL: %w", err)
	}
	if httpResp != nil && httpResp.StatusCode != 200 {
		return nil, fmt.Errorf("SQL request returned HTTP %d", httpResp.StatusCode)
	}

	if resp == nil || resp.SqlObjResponse == nil {
		return nil, nil
	}
	hits := resp.SqlObjResponse.GetHits()

	// SELECT отдаёт "error":"" и при успехе, ругаемся только на непустой текст
	if errVal, ok := hits["error"]; ok && errVal != nil && errVal != "" {
		return nil, fmt.Errorf("SQL error: %v", errVal)
	}
	return hits, nil
}

// InitSchema создаёт поисковую таблицу, если её ещё нет
func (c *ManticoreClient) InitSchema(ctx context.Context) error {
	if _, err := c.execSQL(ctx, createTerritoriesSQL); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// territoryDoc собирает тело документа: id туда не входит,
// Manticore принимает его на уровне команды insert
func territoryDoc(t *domain.Territory) map[string]interface{} {
	doc := map[string]interface{}{
		"code":          t.Code,
		"registry_code": t.RegistryCode,
		"level":         string(t.Level),
		"parent_code":   t.ParentCode,
		"name":          t.Name,
		"name_ascii":    domain.FoldDiacritics(t.Name),
		"nuts_hint":     t.NUTSHint,
		"type_hint":     t.TypeHint,
		"urban_flag":    t.UrbanFlag,
		"source":        string(t.Source),
	}

	if t.HierarchyPath != "" {
		doc["hierarchy_path"] = t.HierarchyPath
	}

	return doc
}

// InsertBatch вставляет территории одним NDJSON запросом к /bulk
func (c *ManticoreClient) InsertBatch(ctx context.Context, territories []*domain.Territory) error {
	if len(territories) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, t := range territories {
		cmd := map[string]interface{}{
			"insert": map[string]interface{}{
				"table": TableTerritories,
				"id":    t.ID,
				"doc":   territoryDoc(t),
			},
		}

		line, err := json.Marshal(cmd)
		if err != nil {
			return fmt.Errorf("failed to marshal insert for %s: %w", t.Code, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	return c.bulkRequest(ctx, buf.Bytes())
}

// Truncate очищает таблицу территорий перед полной переиндексацией
func (c *ManticoreClient) Truncate(ctx context.Context) error {
	exists, err := c.TableExists(ctx, TableTerritories)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if _, err := c.execSQL(ctx, "TRUNCATE TABLE "+TableTerritories); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", TableTerritories, err)
	}
	return nil
}

// Count возвращает число документов в таблице территорий
func (c *ManticoreClient) Count(ctx context.Context) (int64, error) {
	hits, err := c.execSQL(ctx, "SELECT COUNT(*) FROM "+TableTerritories)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", TableTerritories, err)
	}

	data, ok := hits["data"].([]interface{})
	if !ok || len(data) == 0 {
		return 0, nil
	}
	row, ok := data[0].(map[string]interface{})
	if !ok {
		return 0, nil
	}

	// Тип значения зависит от версии сервера
	switch v := row["count(*)"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	}
	return 0, nil
}

// bulkRequest отправляет NDJSON на /bulk, сетевые сбои повторяет
func (c *ManticoreClient) bulkRequest(ctx context.Context, data []byte) error {
	url := fmt.Sprintf("http://%s:%d/bulk", c.host, c.port)
	client := &http.Client{Timeout: 30 * time.Second}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Second * time.Duration(attempt))
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-ndjson")

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode != 200 {
			return fmt.Errorf("bulk request returned HTTP %d: %s", resp.StatusCode, string(body))
		}

		return checkBulkResponse(body)
	}

	return fmt.Errorf("failed to send bulk after 3 attempts: %w", lastErr)
}

// checkBulkResponse ищет ошибки в теле ответа: HTTP 200 их не исключает
func checkBulkResponse(body []byte) error {
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to parse bulk response: %w", err)
	}

	if hasErrors, ok := response["errors"].(bool); ok && hasErrors {
		if errVal, ok := response["error"]; ok && errVal != nil {
			return fmt.Errorf("bulk insert error: %v", errVal)
		}
		return fmt.Errorf("bulk insert completed with errors: %v", response)
	}
	return nil
}

// TableExists проверяет наличие таблицы через SHOW CREATE TABLE
func (c *ManticoreClient) TableExists(ctx context.Context, table string) (bool, error) {
	if _, err := c.execSQL(ctx, "SHOW CREATE TABLE "+table); err != nil {
		// Сервер отвечает ошибкой на отсутствующую таблицу
		return false, nil
	}
	return true, nil
}

// DropTable удаляет таблицу целиком
func (c *ManticoreClient) DropTable(ctx context.Context, table string) error {
	if _, err := c.execSQL(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	return nil
}
