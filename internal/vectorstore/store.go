package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/dgallion1/texgest/internal/chunker"
)

// Store is a thin client over the external Weaviate index. It only moves
// chunks in and queries out; embedding, ranking, and score fusion are all
// owned by Weaviate.
type Store struct {
	client *weaviate.Client
	class  string
	log    *slog.Logger
}

// Result is one ranked hit from the index.
type Result struct {
	ID             string  `json:"id"`
	Text           string  `json:"text"`
	SourceDocument string  `json:"source_document"`
	SectionTitle   string  `json:"section_title"`
	ChunkType      string  `json:"chunk_type"`
	Score          float64 `json:"score"`
}

// New connects to Weaviate at rawURL and stores chunks under the given
// class name.
func New(rawURL, class string, log *slog.Logger) (*Store, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse weaviate url: %w", err)
	}
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   u.Host,
		Scheme: u.Scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Store{client: client, class: class, log: log}, nil
}

// Ready reports whether the cluster accepts requests.
func (s *Store) Ready(ctx context.Context) bool {
	ready, err := s.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		s.log.Warn("weaviate readiness check failed", "error", err)
		return false
	}
	return ready
}

// EnsureSchema creates the chunk class if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	class := &models.Class{
		Class:       s.class,
		Description: "Retrieval-ready text chunk with structural metadata",
		Vectorizer:  "text2vec-transformers",
		Properties: []*models.Property{
			{Name: "text", DataType: []string{"text"}},
			{Name: "startIdx", DataType: []string{"int"}},
			{Name: "endIdx", DataType: []string{"int"}},
			{Name: "chunkId", DataType: []string{"int"}},
			{Name: "totalChunks", DataType: []string{"int"}},
			{Name: "sourceDocument", DataType: []string{"text"}},
			{Name: "pageNumber", DataType: []string{"int"}},
			{Name: "sectionTitle", DataType: []string{"text"}},
			{Name: "chunkType", DataType: []string{"text"}},
			{Name: "createdAt", DataType: []string{"text"}},
			{Name: "emailSubject", DataType: []string{"text"}},
			{Name: "emailSender", DataType: []string{"text"}},
			{Name: "emailRecipient", DataType: []string{"text"}},
		},
	}

	err := s.client.Schema().ClassCreator().WithClass(class).Do(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("create class %s: %w", s.class, err)
	}
	s.log.Info("created weaviate class", "class", s.class)
	return nil
}

// StoreChunks persists a batch of chunks and returns their generated
// object identifiers, in input order.
func (s *Store) StoreChunks(ctx context.Context, chunks []chunker.Chunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	objects := make([]*models.Object, 0, len(chunks))
	ids := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		id := uuid.NewString()
		ids = append(ids, id)
		objects = append(objects, &models.Object{
			Class: s.class,
			ID:    strfmt.UUID(id),
			Properties: map[string]any{
				"text":           chunk.Text,
				"startIdx":       chunk.StartIdx,
				"endIdx":         chunk.EndIdx,
				"chunkId":        chunk.Metadata.ChunkID,
				"totalChunks":    chunk.Metadata.TotalChunks,
				"sourceDocument": chunk.Metadata.SourceDocument,
				"pageNumber":     chunk.Metadata.PageNumber,
				"sectionTitle":   chunk.Metadata.SectionTitle,
				"chunkType":      chunk.Metadata.ChunkType,
				"createdAt":      chunk.Metadata.CreatedAt,
				"emailSubject":   chunk.Metadata.EmailSubject,
				"emailSender":    chunk.Metadata.EmailSender,
				"emailRecipient": chunk.Metadata.EmailRecipient,
			},
		})
	}

	resp, err := s.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}
	for _, item := range resp {
		if item.Result != nil && item.Result.Errors != nil && len(item.Result.Errors.Error) > 0 {
			return ids, fmt.Errorf("store chunks: %s", item.Result.Errors.Error[0].Message)
		}
	}

	s.log.Info("stored chunks", "class", s.class, "count", len(chunks))
	return ids, nil
}

// Search runs a vector similarity query.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	nearText := (&graphql.NearTextArgumentBuilder{}).
		WithConcepts([]string{query})
	return s.search(ctx, limit, func(q *graphql.GetBuilder) *graphql.GetBuilder {
		return q.WithNearText(nearText)
	})
}

// HybridSearch combines vector and keyword scoring; alpha is the vector
// weight in [0, 1].
func (s *Store) HybridSearch(ctx context.Context, query string, alpha float32, limit int) ([]Result, error) {
	hybrid := (&graphql.HybridArgumentBuilder{}).
		WithQuery(query).
		WithAlpha(alpha)
	return s.search(ctx, limit, func(q *graphql.GetBuilder) *graphql.GetBuilder {
		return q.WithHybrid(hybrid)
	})
}

func (s *Store) search(ctx context.Context, limit int, apply func(*graphql.GetBuilder) *graphql.GetBuilder) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	q := s.client.GraphQL().Get().WithClassName(s.class)
	q = apply(q)

	resp, err := q.
		WithFields(
			graphql.Field{Name: "text"},
			graphql.Field{Name: "sourceDocument"},
			graphql.Field{Name: "sectionTitle"},
			graphql.Field{Name: "chunkType"},
			graphql.Field{Name: "_additional", Fields: []graphql.Field{
				{Name: "id"},
				{Name: "score"},
			}},
		).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate search: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("weaviate search: %s", resp.Errors[0].Message)
	}

	return parseResults(resp, s.class), nil
}

func parseResults(resp *models.GraphQLResponse, class string) []Result {
	results := []Result{}
	get, ok := resp.Data["Get"].(map[string]any)
	if !ok {
		return results
	}
	items, ok := get[class].([]any)
	if !ok {
		return results
	}

	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		r := Result{
			Text:           asString(m["text"]),
			SourceDocument: asString(m["sourceDocument"]),
			SectionTitle:   asString(m["sectionTitle"]),
			ChunkType:      asString(m["chunkType"]),
		}
		if add, ok := m["_additional"].(map[string]any); ok {
			r.ID = asString(add["id"])
			r.Score = asFloat(add["score"])
		}
		results = append(results, r)
	}
	return results
}

// DeleteBySource removes every chunk ingested from one source document.
func (s *Store) DeleteBySource(ctx context.Context, source string) (int, error) {
	where := filters.Where().
		WithPath([]string{"sourceDocument"}).
		WithOperator(filters.Equal).
		WithValueText(source)

	resp, err := s.client.Batch().ObjectsBatchDeleter().
		WithClassName(s.class).
		WithWhere(where).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete chunks for %s: %w", source, err)
	}
	if resp == nil || resp.Results == nil {
		return 0, nil
	}
	return int(resp.Results.Successful), nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asFloat tolerates Weaviate returning scores either as JSON numbers or
// strings.
func asFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	}
	return 0
}
