package chunker

// Metadata describes one chunk's position and provenance.
//
// TotalChunks is back-filled in a second pass after the full sequence for
// a call has been produced: it is zero on freshly created chunks and only
// meaningful once Chunk() has returned.
type Metadata struct {
	ChunkID        int    `json:"chunk_id"`
	ChunkSize      int    `json:"chunk_size"`
	TotalChunks    int    `json:"total_chunks"`
	SourceDocument string `json:"source_document,omitempty"`
	PageNumber     int    `json:"page_number,omitempty"`
	SectionTitle   string `json:"section_title,omitempty"`
	ChunkType      string `json:"chunk_type,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`

	// Email-specific fields, set only by the email ingestion path.
	EmailSubject   string `json:"email_subject,omitempty"`
	EmailSender    string `json:"email_sender,omitempty"`
	EmailRecipient string `json:"email_recipient,omitempty"`
	EmailDate      string `json:"email_date,omitempty"`
	EmailID        string `json:"email_id,omitempty"`
	EmailFolder    string `json:"email_folder,omitempty"`
}

// Chunk is a contiguous slice of source text with attached metadata,
// the unit of retrieval handed to the vector store. StartIdx/EndIdx are
// half-open character offsets into the source text. Chunks are created
// only by the chunking engine and read-only afterward.
type Chunk struct {
	Text     string   `json:"text"`
	StartIdx int      `json:"start_idx"`
	EndIdx   int      `json:"end_idx"`
	Metadata Metadata `json:"metadata"`

	// Denormalized for convenience.
	ChunkType      string `json:"chunk_type,omitempty"`
	SourceDocument string `json:"source_document,omitempty"`
}
