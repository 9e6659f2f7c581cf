package report

import (
	"io"
	"strings"

	"github.com/runnerr0/cursorstats/internal/analysis"
	"github.com/runnerr0/cursorstats/internal/workspace"
)

// maxTableText bounds prompt text in the dump table so rows stay readable.
const maxTableText = 100

// WriteDump renders the raw prompt history as a Markdown table with a
// trailing statistics block.
func WriteDump(w io.Writer, prompts []workspace.Prompt) error {
	bw := &errWriter{w: w}

	bw.printf("# Cursor Prompts History\n\n")
	bw.printf("| # | Command Type | Word Count | Prompt |\n")
	bw.printf("|---|--------------|------------|--------|\n")

	totalWords := 0
	for i, p := range prompts {
		words := analysis.CountWords(p.Text)
		totalWords += words

		text := p.Text
		if len(text) > maxTableText {
			text = text[:maxTableText-3] + "..."
		}
		text = strings.ReplaceAll(text, "\n", " ")

		bw.printf("| %d | %s | %d | %s |\n", i+1, escapeCell(p.CommandType), words, escapeCell(text))
	}

	bw.printf("\n\n## Statistics\n\n")
	bw.printf("- Total prompts: %d\n", len(prompts))
	bw.printf("- Total words: %d\n", totalWords)
	if len(prompts) > 0 {
		bw.printf("- Average words per prompt: %.1f\n", float64(totalWords)/float64(len(prompts)))
	}

	return bw.err
}

// WriteFullText renders every prompt untruncated, separated by rules, for
// reading alongside the table dump.
func WriteFullText(w io.Writer, prompts []workspace.Prompt) error {
	bw := &errWriter{w: w}

	for i, p := range prompts {
		bw.printf("Prompt #%d (Type %s):\n", i+1, p.CommandType)
		bw.printf("%s\n", p.Text)
		bw.printf("%s\n\n", strings.Repeat("-", 80))
	}

	return bw.err
}
