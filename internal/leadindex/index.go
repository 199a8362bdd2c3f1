// Package leadindex maintains the Elasticsearch index behind the lead list's
// server-side search. Indexing after discovery is best-effort; searching is
// strict.
package leadindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"leadflow/internal/models"
)

type Index struct {
	client *elasticsearch.Client
	name   string
}

func New(client *elasticsearch.Client, name string) *Index {
	return &Index{client: client, name: name}
}

// IndexLeads stores discovered leads, keyed by lead id.
func (x *Index) IndexLeads(ctx context.Context, leads []models.Lead) error {
	for _, lead := range leads {
		body, err := json.Marshal(lead)
		if err != nil {
			return fmt.Errorf("marshal lead %s: %w", lead.ID, err)
		}

		req := esapi.IndexRequest{
			Index:      x.name,
			DocumentID: lead.ID,
			Body:       bytes.NewReader(body),
		}
		res, err := req.Do(ctx, x.client)
		if err != nil {
			return fmt.Errorf("index lead %s: %w", lead.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index lead %s: %s", lead.ID, res.Status())
		}
	}
	return nil
}

// Search runs a full-text match over name, industry, location and description.
func (x *Index) Search(ctx context.Context, query string, size int) ([]models.Lead, error) {
	if size <= 0 {
		size = 20
	}

	body, err := json.Marshal(map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "industry", "location", "description"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.name),
		x.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search leads: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return nil, fmt.Errorf("search leads: %s: %s", res.Status(), snippet)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Lead `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	leads := make([]models.Lead, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		leads = append(leads, hit.Source)
	}
	return leads, nil
}
