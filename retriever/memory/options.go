package memory

import (
	"context"

	"github.com/w-h-a/qa/retriever"
)

// Document is a seeded span of source text.
type Document struct {
	ChunkId string
	DocId   string
	Source  string
	Text    string
}

type documentsKey struct{}

func WithDocuments(docs ...Document) retriever.Option {
	return func(o *retriever.Options) {
		o.Context = context.WithValue(o.Context, documentsKey{}, docs)
	}
}

func DocumentsFrom(ctx context.Context) ([]Document, bool) {
	docs, ok := ctx.Value(documentsKey{}).([]Document)
	return docs, ok
}
