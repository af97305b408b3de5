package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/w-h-a/qa/retriever"
)

// memoryRetriever scores seeded documents by lexical overlap with the query.
// It stands in for a real vector index in demos and tests.
type memoryRetriever struct {
	options retriever.Options
	docs    []Document
	mtx     sync.RWMutex
}

func (r *memoryRetriever) Retrieve(ctx context.Context, query string, k int) ([]retriever.Chunk, error) {
	if k < 1 {
		return nil, nil
	}

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	terms := tokenize(query)

	scored := make([]retriever.Chunk, 0, len(r.docs))
	for _, doc := range r.docs {
		score := overlap(terms, tokenize(doc.Text))
		if score <= 0 {
			continue
		}
		scored = append(scored, retriever.Chunk{
			Score:   score,
			ChunkId: doc.ChunkId,
			DocId:   doc.DocId,
			Source:  doc.Source,
			Text:    doc.Text,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	for i := range scored {
		scored[i].Rank = i + 1
	}

	return scored, nil
}

func tokenize(text string) map[string]bool {
	tokens := map[string]bool{}
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.Trim(field, ".,;:!?()[]\"'")
		if len(token) > 0 {
			tokens[token] = true
		}
	}
	return tokens
}

func overlap(query, doc map[string]bool) float64 {
	if len(query) == 0 {
		return 0
	}

	matched := 0
	for token := range query {
		if doc[token] {
			matched++
		}
	}

	return float64(matched) / float64(len(query))
}

func NewRetriever(opts ...retriever.Option) retriever.Retriever {
	options := retriever.NewOptions(opts...)

	r := &memoryRetriever{
		options: options,
	}

	if docs, ok := DocumentsFrom(options.Context); ok {
		r.docs = docs
	}

	return r
}
