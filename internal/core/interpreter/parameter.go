package interpreter

// Help holds the text shown for a parameter: Header in the command listing, Detail when the parameter
// itself is asked about.
type Help struct {
	Header string
	Detail string
}

// Parameter is a named slot of a command's input. The tokenizer hands it the text between its name and
// the next boundary word, and Parse converts that text into the command's model.
type Parameter[M any] interface {
	// Name returns the one-word token that introduces the parameter in the input.
	Name() string
	// Help returns the listing header and the detail text of the parameter.
	Help() Help
	// WholeInput reports whether the parameter wants the complete argument text instead of a segment.
	WholeInput() bool
	// Parse converts value into model, or returns a *ParseError when the text is unacceptable. It must
	// not have side effects outside model.
	Parse(model *M, value string) error
}

type ParameterOption func(*Base)

func WithHeader(header string) ParameterOption {
	return func(b *Base) {
		b.help.Header = header
	}
}

func WithDetail(detail string) ParameterOption {
	return func(b *Base) {
		b.help.Detail = detail
	}
}

// WholeInput marks the parameter as receiving the untouched argument text.
func WholeInput() ParameterOption {
	return func(b *Base) {
		b.wholeInput = true
	}
}

// Base carries the descriptive half of a Parameter. Concrete parameters embed it and add Parse.
type Base struct {
	name       string
	help       Help
	wholeInput bool
}

func NewBase(name string, opts ...ParameterOption) Base {
	b := Base{name: name}
	for _, opt := range opts {
		opt(&b)
	}

	return b
}

func (b Base) Name() string {
	return b.name
}

func (b Base) Help() Help {
	h := b.help
	if h.Header == "" {
		h.Header = b.name
	}

	return h
}

func (b Base) WholeInput() bool {
	return b.wholeInput
}

// Func adapts a conversion function to the Parameter interface.
type Func[M any] struct {
	Base
	parse func(model *M, value string) error
}

func NewParameter[M any](name string, parse func(model *M, value string) error, opts ...ParameterOption) *Func[M] {
	return &Func[M]{Base: NewBase(name, opts...), parse: parse}
}

func (f *Func[M]) Parse(model *M, value string) error {
	return f.parse(model, value)
}
