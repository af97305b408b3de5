package retriever

import "context"

// Retriever returns up to k chunks relevant to the query, ordered by
// non-increasing score with contiguous 1-based ranks.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Chunk, error)
}
