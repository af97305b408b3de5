package chat

import (
	"context"
	"fmt"

	"github.com/w-h-a/qa/retriever"
)

// retrieveAndFilter fetches up to TopK candidates and drops every chunk
// scoring below MinScore. Citations mirror the kept chunks 1:1, preserving
// the retriever's original ranks. An empty kept set is a normal "no context"
// condition, not an error; a failed retrieval call propagates.
func (s *Service) retrieveAndFilter(ctx context.Context, query string) ([]retriever.Chunk, []Citation, error) {
	results, err := s.retriever.Retrieve(ctx, query, s.options.TopK)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieval failed: %w", err)
	}

	var kept []retriever.Chunk
	citations := []Citation{}

	for _, r := range results {
		if r.Score < s.options.MinScore {
			continue
		}
		kept = append(kept, r)
		citations = append(citations, Citation{
			Rank:    r.Rank,
			Source:  r.Source,
			ChunkId: r.ChunkId,
			Score:   r.Score,
		})
	}

	return kept, citations, nil
}
