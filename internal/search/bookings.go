package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"hallbook/internal/config"
	"hallbook/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// BookingDocumentStore is the fallback booking store, backed by an
// Elasticsearch index. It mirrors the primary store's surface so the
// persistence coordinator can swap between the two.
type BookingDocumentStore struct {
	client *elasticsearch.Client
	config config.ElasticsearchConfig

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewBookingDocumentStore(cfg config.ElasticsearchConfig) (*BookingDocumentStore, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
		Transport:     &http.Transport{ResponseHeaderTimeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	store := &BookingDocumentStore{
		client: es,
		config: cfg,
		locks:  make(map[string]*sync.Mutex),
	}

	if err := store.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return store, nil
}

func (s *BookingDocumentStore) Name() string {
	return "elasticsearch"
}

// ensureIndex creates the bookings index if it does not exist
func (s *BookingDocumentStore) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{s.config.Index},
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", s.config.Index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":          map[string]interface{}{"type": "keyword"},
				"tenantId":    map[string]interface{}{"type": "keyword"},
				"resourceIds": map[string]interface{}{"type": "keyword"},
				"bookingDate": map[string]interface{}{"type": "keyword"},
				"startTime":   map[string]interface{}{"type": "keyword"},
				"endTime":     map[string]interface{}{"type": "keyword"},
				"status":      map[string]interface{}{"type": "keyword"},
				"bookingCode": map[string]interface{}{"type": "keyword"},
				"customerName": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{
							"type":         "keyword",
							"ignore_above": 256,
						},
					},
				},
				"createdAt": map[string]interface{}{"type": "date"},
				"updatedAt": map[string]interface{}{"type": "date"},
			},
		},
	}

	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: s.config.Index,
		Body:  bytes.NewReader(mappingJSON),
	}

	createRes, err := createReq.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", s.config.Index)
	return nil
}

// Insert indexes the booking document. Refresh is forced so that a
// conflict query issued right after the write sees the new document.
func (s *BookingDocumentStore) Insert(ctx context.Context, booking *models.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      s.config.Index,
		DocumentID: booking.ID,
		Body:       bytes.NewReader(payload),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to index booking: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index booking: %s", res.String())
	}

	return nil
}

func (s *BookingDocumentStore) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"bookingCode": code,
			},
		},
		"size": 1,
	}

	bookings, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return &bookings[0], nil
}

// ListForDate returns the tenant's bookings on the given calendar date.
func (s *BookingDocumentStore) ListForDate(ctx context.Context, tenantID, bookingDate string) ([]models.Booking, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{"term": map[string]interface{}{"tenantId": tenantID}},
					{"term": map[string]interface{}{"bookingDate": bookingDate}},
				},
			},
		},
		"size": 1000,
	}

	return s.search(ctx, query)
}

// WithSlotLock serializes same-slot writers with an in-process keyed
// mutex. Unlike the advisory lock of the primary store this does not
// protect against other instances, which is accepted for the degraded
// fallback path.
func (s *BookingDocumentStore) WithSlotLock(ctx context.Context, tenantID, bookingDate string, fn func(ctx context.Context) error) error {
	key := tenantID + ":" + bookingDate

	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	return fn(ctx)
}

func (s *BookingDocumentStore) search(ctx context.Context, query map[string]interface{}) ([]models.Booking, error) {
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.config.Index},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				Source models.Booking `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	bookings := make([]models.Booking, len(response.Hits.Hits))
	for i, hit := range response.Hits.Hits {
		bookings[i] = hit.Source
	}

	return bookings, nil
}
