package retriever

// Chunk is one retrieved span of source text with its similarity score.
type Chunk struct {
	Rank    int     `json:"rank"`
	Score   float64 `json:"score"`
	ChunkId string  `json:"chunk_id"`
	DocId   string  `json:"doc_id"`
	Source  string  `json:"source"`
	Text    string  `json:"text"`
}
