// Package prompt assembles the grounded question-answering prompt handed to
// a completion provider. Assembly is a pure function of the question and the
// retrieved passages.
package prompt

import (
	"strings"

	"github.com/kestrel-labs/grounder/internal/retrieval"
)

const (
	preamble = "You are a question answering assistant. Answer the question using only the information in the context below. " +
		"If the context does not contain the answer, say that the answer is not available in the indexed documents. " +
		"Do not use any outside knowledge and do not invent details."

	answerCue = "Answer:"
)

// Build interpolates the question and retrieved passages into the fixed
// instruction template. Passage text is concatenated verbatim, joined by
// newlines in the given order. Deterministic: same inputs, same prompt.
func Build(query string, passages []retrieval.Passage) string {
	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString("\n\nContext:\n")

	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Content)
	}

	b.WriteString("\n\nQuestion: ")
	b.WriteString(query)
	b.WriteString("\n\n")
	b.WriteString(answerCue)

	return b.String()
}
