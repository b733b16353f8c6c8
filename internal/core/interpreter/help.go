package interpreter

import (
	"fmt"
	"strings"
)

// Help renders the answer to a help request. Without a parameter name it lists every parameter in the
// order they were added, with a name it shows that parameter's detail text.
func (c *Command[M]) Help(text string) (string, error) {
	topic := strings.TrimPrefix(text, c.name)
	topic = strings.TrimSpace(strings.Replace(topic, helpKeyword, "", 1))

	if topic == "" {
		sb := &strings.Builder{}
		sb.WriteString(c.synopsis)
		sb.WriteString("\n\nParameters:\n")

		for _, p := range c.Parameters() {
			fmt.Fprintf(sb, "\t- %s: %s\n", p.Name(), p.Help().Header)
		}

		return sb.String(), nil
	}

	p, ok := c.parameters[topic]
	if !ok {
		return "", NewParseError("unknown parameter %q for %s", topic, c.name)
	}

	return fmt.Sprintf("%s:\n\t%s", p.Name(), p.Help().Detail), nil
}
