package reporter

import (
	"strconv"
	"strings"

	"github.com/amosWeiskopf/wordsmith/internal/models"
)

// The console block and the legacy summary strings print lists the way a
// Python interpreter reprs them, e.g. ['happy', 'glad'] and ('joy', 0.93, 'NN').

func pyString(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}
	var b strings.Builder
	b.WriteString(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case string(r) == quote:
			b.WriteString(`\` + quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(quote)
	return b.String()
}

func pyFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

func pyStringList(items []string) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = pyString(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func pyTupleList(words []models.RankedWord) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = "(" + pyString(w.Word) + ", " + pyFloat(w.Similarity) + ", " + pyString(w.Tag) + ")"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
