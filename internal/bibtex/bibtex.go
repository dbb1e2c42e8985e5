package bibtex

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// Citation is a resolved bibliography entry. Values are never mutated
// after creation, so a Citation can be shared freely across goroutines.
type Citation struct {
	Author         string
	Year           string
	Title          string
	DOI            string
	SourceDocument string
	PageReference  string
	Label          string
	Hash           string
}

// Entry types worth keeping. Everything else (misc, phdthesis, ...) is skipped.
var keptTypes = map[string]bool{
	"article":       true,
	"book":          true,
	"inproceedings": true,
	"conference":    true,
	"techreport":    true,
}

var (
	entryHeadRe = regexp.MustCompile(`@(\w+)\{([^,]+),`)
	entrySepRe  = regexp.MustCompile(`\n[ \t\r]*\n`)

	fieldRes = map[string]*regexp.Regexp{
		"author": fieldRe("author"),
		"year":   fieldRe("year"),
		"title":  fieldRe("title"),
		"doi":    fieldRe("doi"),
	}
)

func fieldRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + name + `\s*=\s*\{([^}]+)\}`)
}

// Parse converts BibTeX text into a citation-key → Citation map.
// Entries are separated by blank lines; unrecognized entry types are
// skipped silently. Missing fields default to "Unknown" (empty for DOI).
func Parse(content, source string) map[string]Citation {
	entries := make(map[string]Citation)

	for _, block := range splitEntries(content) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		m := entryHeadRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		entryType := strings.ToLower(m[1])
		key := strings.TrimSpace(m[2])
		if !keptTypes[entryType] {
			continue
		}

		entries[key] = Citation{
			Author:         field(block, "author", "Unknown"),
			Year:           field(block, "year", "Unknown"),
			Title:          field(block, "title", "Unknown"),
			DOI:            field(block, "doi", ""),
			SourceDocument: source,
			PageReference:  "",
			Label:          key,
			Hash:           KeyHash(key),
		}
	}

	return entries
}

// Load reads a .bib file and parses it. An unreadable file is non-fatal:
// it logs a warning and returns an empty map, leaving every reference to
// resolve as a placeholder citation.
func Load(path string, log *slog.Logger) map[string]Citation {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("could not load bibliography file", "path", path, "error", err)
		return map[string]Citation{}
	}
	return Parse(string(data), path)
}

// KeyHash derives an opaque, deterministic identity from a citation key.
// Used for dedup only, not a cryptographic guarantee.
func KeyHash(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return fmt.Sprintf("%016x", h.Sum64())
}

// splitEntries separates blank-line delimited entry blocks, tolerating
// CRLF and trailing spaces.
func splitEntries(content string) []string {
	return entrySepRe.Split(content, -1)
}

// field extracts `name = {value}` from an entry block, case-insensitively.
func field(entry, name, fallback string) string {
	m := fieldRes[name].FindStringSubmatch(entry)
	if m == nil {
		return fallback
	}
	return strings.TrimSpace(m[1])
}
