// internal/search/index.go

// Package search mirrors matches into an Elasticsearch index for dashboard
// queries. The index is a projection; Postgres stays the source of truth.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

const matchMapping = `{
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"investor_id": {"type": "keyword"},
			"startup_id": {"type": "keyword"},
			"compatibility_score": {"type": "float"},
			"confidence_level": {"type": "keyword"},
			"status": {"type": "keyword"},
			"is_mutual_match": {"type": "boolean"},
			"match_reasons": {"type": "keyword"},
			"created_at": {"type": "date"},
			"updated_at": {"type": "date"}
		}
	}
}`

type matchDocument struct {
	ID                 string    `json:"id"`
	InvestorID         string    `json:"investor_id"`
	StartupID          string    `json:"startup_id"`
	CompatibilityScore float64   `json:"compatibility_score"`
	ConfidenceLevel    string    `json:"confidence_level"`
	Status             string    `json:"status"`
	IsMutualMatch      bool      `json:"is_mutual_match"`
	MatchReasons       []string  `json:"match_reasons"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type MatchIndex struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewMatchIndex(client *elasticsearch.Client, index string, log logger.Logger) *MatchIndex {
	return &MatchIndex{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "match-index", "index": index}),
	}
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (ix *MatchIndex) EnsureIndex(ctx context.Context) error {
	res, err := ix.client.Indices.Exists([]string{ix.index}, ix.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return apperrors.NewSearchIndexFailedError(ix.index, err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return apperrors.NewSearchIndexFailedError(ix.index, fmt.Errorf("exists check: %s", res.Status()))
	}

	res, err = ix.client.Indices.Create(
		ix.index,
		ix.client.Indices.Create.WithBody(strings.NewReader(matchMapping)),
		ix.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return apperrors.NewSearchIndexFailedError(ix.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewSearchIndexFailedError(ix.index, fmt.Errorf("create index: %s", res.String()))
	}

	ix.logger.Info("created match index", nil)
	return nil
}

// IndexMatch upserts the match document under the match id.
func (ix *MatchIndex) IndexMatch(ctx context.Context, m *models.Match) error {
	body, err := json.Marshal(matchDocument{
		ID:                 m.ID,
		InvestorID:         m.InvestorID,
		StartupID:          m.StartupID,
		CompatibilityScore: m.CompatibilityScore,
		ConfidenceLevel:    string(m.ConfidenceLevel),
		Status:             string(m.Status),
		IsMutualMatch:      m.IsMutualMatch(),
		MatchReasons:       m.MatchReasons,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	})
	if err != nil {
		return apperrors.NewSearchIndexFailedError(ix.index, err)
	}

	res, err := ix.client.Index(
		ix.index,
		bytes.NewReader(body),
		ix.client.Index.WithDocumentID(m.ID),
		ix.client.Index.WithContext(ctx),
	)
	if err != nil {
		return apperrors.NewSearchIndexFailedError(ix.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewSearchIndexFailedError(ix.index, fmt.Errorf("index document: %s", res.Status()))
	}
	return nil
}
