package domain

type Author string

const (
	User   Author = "user"
	System Author = "system"
)

type Prompt struct {
	Prompt string
	Author Author
	Model  Model
}

type Message struct {
	ID       int
	ChatID   int64
	Username string
	Text     string
}

type Action string

const (
	Typing Action = "typing"
)

type ModelResponse struct {
	Response string
	Metadata ResponseMetadata
}

type Model struct {
	Keyword    string `json:"keyword" mapstructure:"keyword"`
	Identifier string `json:"identifier" mapstructure:"identifier"`
}

type ResponseMetadata struct {
	Model            string
	CompletionTokens int
	TotalTokens      int
}

// CommandInfo is what gets published about a command outside the bot: its name and help synopsis.
type CommandInfo struct {
	Name string
	Help string
}
