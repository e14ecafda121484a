package domain

// DefaultTopK is the number of chunks retrieved for a query when the
// planner does not specify one.
const DefaultTopK = 5

// ChunkSeparator joins context chunks when they are presented to the
// answer model. It is visible in the prompt so the model can tell
// chunks apart.
const ChunkSeparator = "\n\n---\n\n"

// DocumentSeparator joins the extracted text of consecutive documents
// before chunking.
const DocumentSeparator = "\n\n"

// IngestReport is the outcome of an ingestion run.
type IngestReport struct {
	// Status is one of StatusSuccess or StatusError.
	Status string `json:"status"`

	// ChunksCreated is the number of chunks written to the store.
	ChunksCreated int `json:"chunks_created"`

	// Message carries the failure reason when Status is StatusError.
	Message string `json:"message,omitempty"`
}

// IndexReport is the outcome of an index build.
type IndexReport struct {
	// Status is one of StatusSuccess or StatusWarning.
	Status string `json:"status"`

	// VectorsIndexed is the number of vectors in the fresh index.
	VectorsIndexed int `json:"vectors_indexed"`

	// Message carries detail for StatusWarning.
	Message string `json:"message,omitempty"`
}

// Report status values shared by the ingestion and retrieval agents.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)
