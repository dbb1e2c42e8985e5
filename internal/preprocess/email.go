package preprocess

import (
	"strings"
	"time"

	"github.com/dgallion1/texgest/internal/chunker"
)

// EmailMessage is one message on the email ingestion path. Value record,
// never mutated by preprocessing.
type EmailMessage struct {
	Subject    string
	Sender     string
	Recipients []string
	MessageID  string
	DateSent   time.Time
	Folder     string
	Body       string
}

// EmailPreprocessor converts email messages into chunks using the email
// strategy, mirroring the document path for consistency.
type EmailPreprocessor struct {
	chunker *chunker.DataChunker
}

func NewEmailPreprocessor(ch *chunker.DataChunker) *EmailPreprocessor {
	if ch == nil {
		ch = chunker.New()
	}
	return &EmailPreprocessor{chunker: ch}
}

// PreprocessEmail chunks a single email body, numbering chunks from
// startChunkID.
func (p *EmailPreprocessor) PreprocessEmail(email EmailMessage, startChunkID int) []chunker.Chunk {
	var date string
	if !email.DateSent.IsZero() {
		date = email.DateSent.Format(time.RFC3339)
	}
	ctx := chunker.NewContext().
		ForEmail().
		WithEmailInfo(
			email.Subject,
			email.Sender,
			strings.Join(email.Recipients, ", "),
			email.MessageID,
			date,
			email.Folder,
		).
		WithStartChunkID(startChunkID).
		Build()
	return p.chunker.Chunk(email.Body, ctx)
}

// PreprocessEmails chunks a batch of emails, keeping chunk IDs sequential
// across messages.
func (p *EmailPreprocessor) PreprocessEmails(emails []EmailMessage, startChunkID int) []chunker.Chunk {
	var all []chunker.Chunk
	id := startChunkID
	for _, email := range emails {
		chunks := p.PreprocessEmail(email, id)
		all = append(all, chunks...)
		id += len(chunks)
	}
	return all
}
