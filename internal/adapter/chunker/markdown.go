package chunker

import (
	"sort"
	"strings"

	"codex/internal/domain"
)

// MarkdownChunker splits markdown documents into overlapping,
// heading-labeled word windows. Sections are delimited by #, ## and
// ### headings; each section is cut into windows of targetWords words
// with overlapWords words of overlap between consecutive windows.
type MarkdownChunker struct {
	targetWords  int
	overlapWords int
}

func NewMarkdownChunker(targetWords, overlapWords int) *MarkdownChunker {
	return &MarkdownChunker{
		targetWords:  targetWords,
		overlapWords: overlapWords,
	}
}

// Split implements port.Chunker. An empty document yields no chunks;
// sections without words are skipped; a section shorter than the
// target word count becomes exactly one chunk.
func (c *MarkdownChunker) Split(doc domain.Document) []domain.Chunk {
	lines := splitLines(doc.Content)

	// Section boundaries: every heading line, plus start and end.
	boundarySet := map[int]struct{}{0: {}, len(lines): {}}
	for i, line := range lines {
		if isHeading(line) {
			boundarySet[i] = struct{}{}
		}
	}
	boundaries := make([]int, 0, len(boundarySet))
	for b := range boundarySet {
		boundaries = append(boundaries, b)
	}
	sort.Ints(boundaries)

	step := c.targetWords - c.overlapWords
	if step < 1 {
		step = 1
	}

	var chunks []domain.Chunk
	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]
		section := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if section == "" {
			continue
		}

		words := strings.Fields(section)
		heading := headingPath(lines, start)

		for wstart := 0; wstart < len(words); wstart += step {
			wend := wstart + c.targetWords
			if wend > len(words) {
				wend = len(words)
			}
			text := strings.Join(words[wstart:wend], " ")
			if text == "" {
				continue
			}
			chunks = append(chunks, domain.Chunk{
				Text:    text,
				Source:  doc.Path,
				Heading: heading,
			})
			if wend == len(words) {
				break
			}
		}
	}

	return chunks
}

// headingPath scans backward from idx for the nearest #, ## and ###
// lines and joins up to three ancestor headings with " > ". The first
// hit per level wins; "Document" is the default when none are found.
func headingPath(lines []string, idx int) string {
	var h1, h2, h3 string
	for i := idx; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, "### ") && h3 == "":
			h3 = strings.TrimSpace(line[4:])
		case strings.HasPrefix(line, "## ") && h2 == "":
			h2 = strings.TrimSpace(line[3:])
		case strings.HasPrefix(line, "# ") && h1 == "":
			h1 = strings.TrimSpace(line[2:])
		}
		if h1 != "" && h2 != "" && h3 != "" {
			break
		}
	}

	var parts []string
	for _, p := range []string{h1, h2, h3} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Document"
	}
	return strings.Join(parts, " > ")
}

func isHeading(line string) bool {
	for _, prefix := range []string{"# ", "## ", "### "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return lines
}
