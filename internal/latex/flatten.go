package latex

import "strings"

// Flatten serializes parsed documents back into one linear text stream
// with heading markers, in document order. Chapters render as level-1
// headings with their sections as level-2; standalone sections, standalone
// paragraphs, and tables follow. Blocks are joined with a double line
// break. Purely deterministic: flattening the same documents twice yields
// byte-identical text.
func Flatten(docs []*Document) string {
	var parts []string

	for _, doc := range docs {
		if doc == nil {
			continue
		}

		for _, ch := range doc.Chapters {
			parts = append(parts, "# "+ch.Title)
			for _, para := range ch.Paragraphs {
				parts = append(parts, para.Content)
			}
			for _, sec := range ch.Sections {
				parts = appendSection(parts, sec)
			}
		}

		for _, sec := range doc.Sections {
			parts = appendSection(parts, sec)
		}

		for _, para := range doc.Paragraphs {
			parts = append(parts, para.Content)
		}

		for _, table := range doc.Tables {
			parts = append(parts, table.PlainText())
		}
	}

	return strings.Join(parts, "\n\n")
}

func appendSection(parts []string, sec *Section) []string {
	parts = append(parts, "## "+sec.Title)
	for _, para := range sec.Paragraphs {
		parts = append(parts, para.Content)
	}
	for _, sub := range sec.Subsections {
		parts = append(parts, "### "+sub.Title)
		for _, para := range sub.Paragraphs {
			parts = append(parts, para.Content)
		}
		for _, subsub := range sub.Subsubsections {
			parts = append(parts, "#### "+subsub.Title)
			for _, para := range subsub.Paragraphs {
				parts = append(parts, para.Content)
			}
		}
	}
	return parts
}
