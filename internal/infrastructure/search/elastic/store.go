// Package elastic implements the club search store on an Elasticsearch
// cluster.
package elastic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/scorepipe/scorepipe/internal/domain/clubindex"
)

const defaultIndex = "clubs"

// indexMapping keeps club names analyzable for fuzzy matching while country
// and league filters stay exact, case-insensitive keyword lookups.
const indexMapping = `{
  "settings": {
    "analysis": {
      "normalizer": {
        "folded": {"type": "custom", "filter": ["lowercase", "asciifolding"]}
      }
    }
  },
  "mappings": {
    "properties": {
      "key":             {"type": "keyword"},
      "name":            {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "country":         {"type": "keyword", "normalizer": "folded"},
      "leagues":         {"type": "keyword", "normalizer": "folded"},
      "logo":            {"type": "keyword", "index": false},
      "total_matches":   {"type": "integer"},
      "wins":            {"type": "integer"},
      "draws":           {"type": "integer"},
      "losses":          {"type": "integer"},
      "goals_for":       {"type": "integer"},
      "goals_against":   {"type": "integer"},
      "goal_difference": {"type": "integer"},
      "win_rate":        {"type": "float"},
      "updated_at":      {"type": "date"}
    }
  }
}`

type Store struct {
	client *elasticsearch.Client
	index  string
}

func NewStore(client *elasticsearch.Client, index string) *Store {
	if index == "" {
		index = defaultIndex
	}
	return &Store{client: client, index: index}
}

func (s *Store) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", s.index, err)
	}
	defer drain(exists)
	if exists.StatusCode == 200 {
		return nil
	}

	create, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", s.index, err)
	}
	defer drain(create)
	// Concurrent rebuild workers can race on creation.
	if create.IsError() && create.StatusCode != 400 {
		return fmt.Errorf("create index %s: %s", s.index, create.String())
	}
	return nil
}

func (s *Store) Replace(ctx context.Context, club clubindex.ClubAggregate) error {
	body, err := sonic.Marshal(club)
	if err != nil {
		return fmt.Errorf("encode club %s: %w", club.Key, err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: club.Key,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("index club %s: %w", club.Key, err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("index club %s: %s", club.Key, res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source clubindex.ClubAggregate `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *Store) Search(ctx context.Context, query clubindex.Query) ([]clubindex.ClubAggregate, error) {
	must := []map[string]any{{
		"match": map[string]any{
			"name": map[string]any{
				"query":     query.Name,
				"fuzziness": "AUTO",
			},
		},
	}}

	filter := make([]map[string]any, 0, 2)
	if query.Country != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"country": strings.ToLower(query.Country)}})
	}
	if query.League != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"leagues": strings.ToLower(query.League)}})
	}

	size := query.Limit
	if size <= 0 {
		size = 10
	}

	body, err := sonic.Marshal(map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search clubs: %w", err)
	}
	defer drain(res)
	if res.IsError() {
		return nil, fmt.Errorf("search clubs: %s", res.String())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	var parsed searchResponse
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]clubindex.ClubAggregate, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	res, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(s.index),
	)
	if err != nil {
		return 0, fmt.Errorf("count clubs: %w", err)
	}
	defer drain(res)
	if res.IsError() {
		if res.StatusCode == 404 {
			return 0, nil
		}
		return 0, fmt.Errorf("count clubs: %s", res.String())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, fmt.Errorf("read count response: %w", err)
	}
	var parsed countResponse
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return parsed.Count, nil
}

func drain(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
