package interpreter

import (
	"strings"
	"unicode/utf8"
)

// segment is one parameter and the text the tokenizer assigned to it.
type segment[M any] struct {
	param Parameter[M]
	value string
}

// arguments strips the command name and the single separator that follows it.
func (c *Command[M]) arguments(text string) string {
	rest := strings.TrimPrefix(text, c.name)
	if rest == "" {
		return ""
	}

	_, size := utf8.DecodeRuneInString(rest)
	return rest[size:]
}

// segments assigns args to parameters. Whole-input parameters bypass splitting and each receives args
// verbatim. Otherwise words naming a parameter open a new segment, the words up to the next such
// boundary form its value, and words before the first boundary are dropped.
func (c *Command[M]) segments(args string) []segment[M] {
	var whole []segment[M]
	for _, name := range c.order {
		p := c.parameters[name]
		if p.WholeInput() {
			whole = append(whole, segment[M]{param: p, value: args})
		}
	}

	if len(whole) > 0 {
		return whole
	}

	var (
		segs    []segment[M]
		current Parameter[M]
		pending strings.Builder
	)

	finalize := func() {
		if current != nil {
			segs = append(segs, segment[M]{param: current, value: strings.TrimSpace(pending.String())})
		}
		pending.Reset()
	}

	for _, word := range strings.Fields(args) {
		p, ok := c.parameters[word]
		if !ok {
			pending.WriteString(word)
			pending.WriteByte(' ')
			continue
		}

		finalize()
		current = p
	}

	finalize()

	return segs
}
