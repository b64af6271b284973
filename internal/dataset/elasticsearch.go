package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "deal-pulse/internal/common/errors"
	"deal-pulse/internal/common/logger"
	"deal-pulse/internal/models"
)

const DefaultSearchSize = 1000

// ElasticsearchSource reads startup documents from an index. Each hit's
// _source has the same shape as a file dataset entry.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
	size   int
	logger logger.Logger
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchSource {
	return &ElasticsearchSource{
		client: client,
		index:  index,
		size:   DefaultSearchSize,
		logger: log.With(map[string]interface{}{"component": "dataset", "source": "elasticsearch", "index": index}),
	}
}

func (e *ElasticsearchSource) Name() string { return "elasticsearch" }

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string         `json:"_id"`
			Source models.Startup `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticsearchSource) Load(ctx context.Context) ([]models.Startup, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{map[string]interface{}{"position": map[string]interface{}{"order": "asc", "unmapped_type": "long"}}},
		"size":  e.size,
	})

	req := esapi.SearchRequest{
		Index: []string{e.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(e.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(e.index, fmt.Errorf("search failed: %s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(e.index, err)
	}

	startups := make([]models.Startup, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		st := hit.Source
		if st.ID == "" {
			st.ID = hit.ID
		}
		startups = append(startups, st)
	}

	e.logger.Info("dataset loaded", map[string]interface{}{"count": len(startups)})
	return startups, nil
}
