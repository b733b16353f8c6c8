// Package interpreter turns one line of chat text into a typed model and runs a command on it.
//
// A Command owns a set of Parameters. Execute checks that the text addresses the command, splits the
// rest of the text at words naming a parameter, lets each parameter convert its segment into the
// command's model, validates the model and finally runs the command's action. Text containing "help"
// is answered with a description of the command or of one parameter instead.
//
// A Command is not safe for concurrent use: the model belongs to the instance and is replaced on every
// parse. Build one Command per execution when requests overlap.
package interpreter

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

const helpKeyword = "help"

// Action is the work a command does once its model has been parsed and validated.
type Action[M any] interface {
	Run(ctx context.Context, model *M) error
}

// Validator is implemented by actions that check the parsed model as a whole before Run.
type Validator[M any] interface {
	Validate(model *M) error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc[M any] func(ctx context.Context, model *M) error

func (f ActionFunc[M]) Run(ctx context.Context, model *M) error {
	return f(ctx, model)
}

// Result is what Execute produces: either the populated model, or the rendered help text.
type Result[M any] struct {
	Model         *M
	HelpRequested bool
	Help          string
}

type Option func(*options)

type options struct {
	synopsis string
}

// WithSynopsis sets the help text shown above the parameter listing. It defaults to the command name.
func WithSynopsis(synopsis string) Option {
	return func(o *options) {
		o.synopsis = synopsis
	}
}

type Command[M any] struct {
	name       string
	synopsis   string
	parameters map[string]Parameter[M]
	order      []string
	action     Action[M]
	model      *M
}

func New[M any](name string, action Action[M], opts ...Option) *Command[M] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.synopsis == "" {
		o.synopsis = name
	}

	return &Command[M]{
		name:       name,
		synopsis:   o.synopsis,
		parameters: make(map[string]Parameter[M]),
		action:     action,
		model:      new(M),
	}
}

func (c *Command[M]) Name() string {
	return c.name
}

func (c *Command[M]) Synopsis() string {
	return c.synopsis
}

// Model returns the model filled by the most recent parse. It must not be used after a failed parse.
func (c *Command[M]) Model() *M {
	return c.model
}

// AddParameter registers p under its name, replacing any parameter already registered with that name.
func (c *Command[M]) AddParameter(p Parameter[M]) {
	name := p.Name()
	if name == helpKeyword {
		log.Warn().Str("command", c.name).Msg("parameter named help cannot be reached, help requests take precedence")
	}

	if _, ok := c.parameters[name]; !ok {
		c.order = append(c.order, name)
	}

	c.parameters[name] = p
}

func (c *Command[M]) Parameter(name string) (Parameter[M], bool) {
	p, ok := c.parameters[name]
	return p, ok
}

// Parameters returns the registered parameters in the order they were added.
func (c *Command[M]) Parameters() []Parameter[M] {
	params := make([]Parameter[M], len(c.order))
	for i, name := range c.order {
		params[i] = c.parameters[name]
	}

	return params
}

// WillParseCommand reports whether text starts with the command name. The comparison is a plain
// prefix match, so a command named "test" also accepts "testing".
func (c *Command[M]) WillParseCommand(text string) bool {
	return strings.HasPrefix(text, c.name)
}

// Execute answers text with help when it contains "help" anywhere, otherwise parses it and runs the
// action on the resulting model. Errors from the action are returned unchanged.
func (c *Command[M]) Execute(ctx context.Context, text string) (Result[M], error) {
	if !c.WillParseCommand(text) {
		return Result[M]{}, NewParseError("%q is not a %s command", text, c.name)
	}

	if strings.Contains(text, helpKeyword) {
		help, err := c.Help(text)
		if err != nil {
			return Result[M]{}, err
		}

		return Result[M]{HelpRequested: true, Help: help}, nil
	}

	model, err := c.Parse(text)
	if err != nil {
		return Result[M]{}, err
	}

	err = c.action.Run(ctx, model)
	if err != nil {
		return Result[M]{}, err
	}

	return Result[M]{Model: model}, nil
}

// Parse resets the model, lets every addressed parameter convert its segment of text and validates the
// outcome. The action is not run.
func (c *Command[M]) Parse(text string) (*M, error) {
	if !c.WillParseCommand(text) {
		return nil, NewParseError("%q is not a %s command", text, c.name)
	}

	c.model = new(M)

	for _, seg := range c.segments(c.arguments(text)) {
		log.Debug().Str("command", c.name).Str("parameter", seg.param.Name()).Str("value", seg.value).
			Msg("parsing parameter")

		err := seg.param.Parse(c.model, seg.value)
		if err != nil {
			return nil, err
		}
	}

	if v, ok := c.action.(Validator[M]); ok {
		err := v.Validate(c.model)
		if err != nil {
			return nil, asValidationError(err)
		}
	}

	return c.model, nil
}

func asValidationError(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}

	return &ValidationError{Msg: err.Error()}
}
