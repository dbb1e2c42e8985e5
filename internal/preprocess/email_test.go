package preprocess

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/texgest/internal/chunker"
)

func TestPreprocessEmail_MetadataPropagation(t *testing.T) {
	sent := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	email := EmailMessage{
		Subject:    "Weekly report",
		Sender:     "alice@example.com",
		Recipients: []string{"bob@example.com", "carol@example.com"},
		MessageID:  "<msg-42>",
		DateSent:   sent,
		Folder:     "inbox",
		Body:       "Here is the weekly summary of progress.",
	}

	chunks := NewEmailPreprocessor(nil).PreprocessEmail(email, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	md := chunks[0].Metadata
	if md.EmailSubject != "Weekly report" {
		t.Errorf("expected subject propagated, got %q", md.EmailSubject)
	}
	if md.EmailSender != "alice@example.com" {
		t.Errorf("expected sender propagated, got %q", md.EmailSender)
	}
	if md.EmailRecipient != "bob@example.com, carol@example.com" {
		t.Errorf("expected joined recipients, got %q", md.EmailRecipient)
	}
	if md.EmailID != "<msg-42>" {
		t.Errorf("expected message id propagated, got %q", md.EmailID)
	}
	if md.EmailDate != sent.Format(time.RFC3339) {
		t.Errorf("expected date %q, got %q", sent.Format(time.RFC3339), md.EmailDate)
	}
	if md.EmailFolder != "inbox" {
		t.Errorf("expected folder propagated, got %q", md.EmailFolder)
	}
	if chunks[0].ChunkType != chunker.TypeEmail {
		t.Errorf("expected chunk type %q, got %q", chunker.TypeEmail, chunks[0].ChunkType)
	}
}

func TestPreprocessEmail_ZeroDateLeftEmpty(t *testing.T) {
	chunks := NewEmailPreprocessor(nil).PreprocessEmail(EmailMessage{Body: "no date"}, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata.EmailDate != "" {
		t.Errorf("expected empty date for zero DateSent, got %q", chunks[0].Metadata.EmailDate)
	}
}

func TestPreprocessEmails_SequentialChunkIDs(t *testing.T) {
	long := strings.Repeat("email body text ", 80) // forces multiple chunks per message
	emails := []EmailMessage{
		{Subject: "first", Body: long},
		{Subject: "second", Body: long},
		{Subject: "third", Body: "short body"},
	}

	chunks := NewEmailPreprocessor(nil).PreprocessEmails(emails, 10)
	if len(chunks) < 5 {
		t.Fatalf("expected at least 5 chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.Metadata.ChunkID != 10+i {
			t.Errorf("chunk %d: expected chunk_id %d, got %d", i, 10+i, c.Metadata.ChunkID)
		}
	}

	// Subjects must change at the message boundaries.
	subjects := map[string]bool{}
	for _, c := range chunks {
		subjects[c.Metadata.EmailSubject] = true
	}
	for _, want := range []string{"first", "second", "third"} {
		if !subjects[want] {
			t.Errorf("expected chunks for message %q", want)
		}
	}
}

func TestPreprocessEmails_EmptyBatch(t *testing.T) {
	if chunks := NewEmailPreprocessor(nil).PreprocessEmails(nil, 0); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty batch, got %d", len(chunks))
	}
}
