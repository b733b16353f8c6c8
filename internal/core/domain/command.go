package domain

import (
	"strings"
)

// ParseCommandArgs returns everything after the first word of args.
func ParseCommandArgs(args string) string {
	command := strings.Split(args, " ")
	return strings.Join(command[1:], " ")
}

// ParseCommand returns the lower-cased first word of args, which selects the command handler.
func ParseCommand(args string) string {
	command := strings.Split(args, " ")
	return strings.ToLower(command[0])
}

// NormalizeCommand lower-cases the command word of text and strips a trailing @botname mention, as
// Telegram appends one in group chats. It returns the command and text rewritten to start with it.
func NormalizeCommand(text string) (string, string) {
	cmd := ParseCommand(text)
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}

	if !strings.Contains(text, " ") {
		return cmd, cmd
	}

	return cmd, cmd + " " + ParseCommandArgs(text)
}

// FindModelByKeyword picks the model whose #keyword occurs in prompt and returns the prompt without
// that keyword. Without a match the first model is used and the prompt is returned trimmed.
func FindModelByKeyword(models []Model, prompt string) (Model, string, error) {
	if len(models) == 0 {
		return Model{}, "", ErrNoModels
	}

	words := strings.Fields(prompt)
	for i, word := range words {
		if !strings.HasPrefix(word, "#") {
			continue
		}

		for _, model := range models {
			if strings.EqualFold(word[1:], model.Keyword) {
				rest := append(words[:i:i], words[i+1:]...)
				return model, strings.Join(rest, " "), nil
			}
		}
	}

	return models[0], strings.TrimSpace(prompt), nil
}
