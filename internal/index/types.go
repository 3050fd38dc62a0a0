package index

// Manifest describes a persisted vector index and how to interpret it.
type Manifest struct {
	IndexVersion int    `json:"index_version"`
	CreatedAt    string `json:"created_at"`
	ModelID      string `json:"model_id"`
	Dim          int    `json:"dim"`
	Normalize    bool   `json:"normalize"`
	ChunkSize    int    `json:"chunk_size"`
	ChunkOverlap int    `json:"chunk_overlap"`
	VectorFile   string `json:"vector_file"`
	MetaFile     string `json:"meta_file"`
}

// ChunkEntry is one metadata record in chunks.jsonl. Record i describes the
// chunk whose vector occupies row i of the vector file; that positional
// correspondence is the binding invariant of the whole index.
type ChunkEntry struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Index is a loaded vector index with its parallel metadata table.
type Index struct {
	Manifest Manifest
	Chunks   []ChunkEntry
	Vectors  []float32 // row-major, len == len(Chunks) * Manifest.Dim
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.Chunks)
}

// Vector returns row i of the vector table.
func (ix *Index) Vector(i int) []float32 {
	start := i * ix.Manifest.Dim
	return ix.Vectors[start : start+ix.Manifest.Dim]
}
