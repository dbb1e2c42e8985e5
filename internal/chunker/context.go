package chunker

// Context carries the metadata and configuration for one chunking call.
// It is not persisted; it exists only for the duration of the call.
type Context struct {
	ChunkType      string
	SourceDocument string
	PageNumber     int
	SectionTitle   string
	CreatedAt      string

	EmailSubject   string
	EmailSender    string
	EmailRecipient string
	EmailDate      string
	EmailID        string
	EmailFolder    string

	StartChunkID int

	// Custom holds caller-defined fields for future extensions.
	Custom map[string]any
}

// ContextBuilder builds a Context with a fluent API.
type ContextBuilder struct {
	ctx Context
}

func NewContext() *ContextBuilder {
	return &ContextBuilder{ctx: Context{ChunkType: TypeText}}
}

func (b *ContextBuilder) ForText() *ContextBuilder {
	b.ctx.ChunkType = TypeText
	return b
}

func (b *ContextBuilder) ForDocument() *ContextBuilder {
	b.ctx.ChunkType = TypeDocument
	return b
}

func (b *ContextBuilder) ForEmail() *ContextBuilder {
	b.ctx.ChunkType = TypeEmail
	return b
}

func (b *ContextBuilder) WithSource(source string) *ContextBuilder {
	b.ctx.SourceDocument = source
	return b
}

func (b *ContextBuilder) WithPage(page int) *ContextBuilder {
	b.ctx.PageNumber = page
	return b
}

func (b *ContextBuilder) WithSection(section string) *ContextBuilder {
	b.ctx.SectionTitle = section
	return b
}

func (b *ContextBuilder) WithCreatedAt(createdAt string) *ContextBuilder {
	b.ctx.CreatedAt = createdAt
	return b
}

// WithEmailInfo sets the email-specific metadata fields.
func (b *ContextBuilder) WithEmailInfo(subject, sender, recipient, id, date, folder string) *ContextBuilder {
	b.ctx.EmailSubject = subject
	b.ctx.EmailSender = sender
	b.ctx.EmailRecipient = recipient
	b.ctx.EmailID = id
	b.ctx.EmailDate = date
	b.ctx.EmailFolder = folder
	return b
}

// WithStartChunkID sets the first sequence ID, letting callers keep IDs
// unique across consecutive chunking calls.
func (b *ContextBuilder) WithStartChunkID(id int) *ContextBuilder {
	b.ctx.StartChunkID = id
	return b
}

func (b *ContextBuilder) WithCustom(custom map[string]any) *ContextBuilder {
	b.ctx.Custom = custom
	return b
}

func (b *ContextBuilder) Build() Context {
	return b.ctx
}
