package chunker

// DataChunker dispatches chunking calls to the strategy registered for
// the context's chunk type, falling back to the default strategy for
// unregistered tags. The registry must only be mutated at setup time;
// after that a single DataChunker can serve concurrent Chunk calls.
type DataChunker struct {
	defaultStrategy Strategy
	strategies      map[string]Strategy
}

// New returns a DataChunker with the built-in text, document, and email
// strategies registered. The text strategy is the fallback default.
func New() *DataChunker {
	text := NewTextStrategy()
	return &DataChunker{
		defaultStrategy: text,
		strategies: map[string]Strategy{
			TypeText:     text,
			TypeDocument: NewDocumentStrategy(),
			TypeEmail:    NewEmailStrategy(),
		},
	}
}

// NewWithDefault returns a DataChunker whose fallback is the given
// strategy instead of the built-in text strategy.
func NewWithDefault(def Strategy) *DataChunker {
	c := New()
	if def != nil {
		c.defaultStrategy = def
	}
	return c
}

// Chunk slices text into overlapping segments using the strategy for
// ctx.ChunkType. An unknown tag is not an error: the default strategy
// handles it.
func (c *DataChunker) Chunk(text string, ctx Context) []Chunk {
	strategy, ok := c.strategies[ctx.ChunkType]
	if !ok {
		strategy = c.defaultStrategy
	}
	return strategy.Chunk(text, ctx)
}

// RegisterStrategy adds or replaces the strategy for a chunk type tag.
// Call during setup only; the registry is not synchronized.
func (c *DataChunker) RegisterStrategy(chunkType string, strategy Strategy) {
	c.strategies[chunkType] = strategy
}
