package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/mkravtsov/fishshop/internal/models"
)

// Index keeps the search index in step with the catalog. Both writes are
// best effort: the catalog service logs a warning when they fail instead of
// failing the mutation.
func Index(ctx context.Context, es *elasticsearch.Client, index string, fish *models.Fish) error {
	data, err := json.Marshal(fish)
	if err != nil {
		return fmt.Errorf("index fish: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(data),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(fish.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index fish: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index fish: %s", res.Status())
	}
	return nil
}

func Delete(ctx context.Context, es *elasticsearch.Client, index string, id uint) error {
	res, err := es.Delete(
		index,
		strconv.FormatUint(uint64(id), 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete fish from index: %w", err)
	}
	defer res.Body.Close()

	// 404 just means the document was never indexed
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete fish from index: %s", res.Status())
	}
	return nil
}

func Search(ctx context.Context, es *elasticsearch.Client, index, query string) ([]models.Fish, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "type", "diet_use"},
				"fuzziness": "AUTO",
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Fish `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	items := make([]models.Fish, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return items, nil
}
