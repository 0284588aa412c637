package model

// InputType is the closed set of form controls a calculator can declare.
type InputType string

const (
	InputTypeNumber   InputType = "number"
	InputTypeText     InputType = "text"
	InputTypeSelect   InputType = "select"
	InputTypeDate     InputType = "date"
	InputTypeCheckbox InputType = "checkbox"
	InputTypeTime     InputType = "time"
)

// InputTypes lists every supported input type in declaration order.
func InputTypes() []InputType {
	return []InputType{
		InputTypeNumber,
		InputTypeText,
		InputTypeSelect,
		InputTypeDate,
		InputTypeCheckbox,
		InputTypeTime,
	}
}

// Valid reports whether t is a member of the input type enumeration.
func (t InputType) Valid() bool {
	for _, known := range InputTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Notation selects how a numeric result is displayed.
type Notation string

const (
	NotationStandard   Notation = "standard"
	NotationFixed      Notation = "fixed"
	NotationPercent    Notation = "percent"
	NotationScientific Notation = "scientific"
	NotationCompact    Notation = "compact"
)

// Format carries display hints for numeric results. A nil Precision lets the
// formatter pick up to DefaultPrecision fraction digits and trim zeros.
type Format struct {
	Notation  Notation `json:"notation,omitempty" yaml:"notation,omitempty" toml:"notation,omitempty"`
	Precision *int     `json:"precision,omitempty" yaml:"precision,omitempty" toml:"precision,omitempty"`
}

// DefaultPrecision is the fraction digit cap used when Format.Precision is nil.
const DefaultPrecision = 6

// Digits returns the configured precision or DefaultPrecision.
func (f Format) Digits() int {
	if f.Precision == nil || *f.Precision < 0 {
		return DefaultPrecision
	}
	return *f.Precision
}

// Option is a label/value pair offered by select inputs.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Predicate decides input visibility from the current values.
type Predicate func(Values) bool

// PlaceholderFunc derives a dynamic placeholder from the current values.
type PlaceholderFunc func(Values) string

// InputField describes a single user-editable value consumed by formulas.
type InputField struct {
	ID              string          `json:"id"`
	Label           string          `json:"label"`
	Type            InputType       `json:"type"`
	Placeholder     string          `json:"placeholder,omitempty"`
	PlaceholderFunc PlaceholderFunc `json:"-"`
	HelpText        string          `json:"helpText,omitempty"`
	Default         Value           `json:"default,omitzero"`
	Options         []Option        `json:"options,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	Min             *float64        `json:"min,omitempty"`
	Max             *float64        `json:"max,omitempty"`
	Step            *float64        `json:"step,omitempty"`
	Condition       Predicate       `json:"-"`
	VisibleIf       string          `json:"visibleIf,omitempty"`
	Widget          string          `json:"widget,omitempty"`
}

// PlaceholderFor resolves the dynamic placeholder when one is configured and
// falls back to the literal placeholder otherwise.
func (f InputField) PlaceholderFor(values Values) string {
	if f.PlaceholderFunc != nil {
		if dynamic := f.PlaceholderFunc(values); dynamic != "" {
			return dynamic
		}
	}
	return f.Placeholder
}

// HasOption reports whether value matches one of the select options.
func (f InputField) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// CalculateFunc computes one output from the input values and the results of
// the outputs declared before it. Implementations must be pure.
type CalculateFunc func(in Values, prev Results) Result

// OutputField describes one computed, displayed result.
type OutputField struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	Calculate CalculateFunc `json:"-"`
	Unit      string        `json:"unit,omitempty"`
	Currency  string        `json:"currency,omitempty"`
	Format    Format        `json:"format,omitzero"`
	HelpText  string        `json:"helpText,omitempty"`
}

// Key returns the output identifier, deriving one from the label when the
// definition leaves ID empty.
func (o OutputField) Key() string {
	if o.ID != "" {
		return o.ID
	}
	return Slugify(o.Label)
}

// Section is one explanatory text block rendered below a calculator.
type Section struct {
	Heading string `json:"heading" yaml:"heading" toml:"heading"`
	Body    string `json:"body" yaml:"body" toml:"body"`
}

// FAQ is a question/answer pair.
type FAQ struct {
	Question string `json:"question" yaml:"question" toml:"question"`
	Answer   string `json:"answer" yaml:"answer" toml:"answer"`
}

// Content groups the optional long-form text of a calculator page.
type Content struct {
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty" toml:"sections,omitempty"`
	FAQ      []FAQ     `json:"faq,omitempty" yaml:"faq,omitempty" toml:"faq,omitempty"`
}

// Empty reports whether the content holds no sections and no FAQ entries.
func (c *Content) Empty() bool {
	return c == nil || (len(c.Sections) == 0 && len(c.FAQ) == 0)
}

// Meta holds SEO metadata, independent of the display title/description.
type Meta struct {
	Title       string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty"`
}

// Definition is the declarative record describing one calculator.
type Definition struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    Category      `json:"category"`
	Inputs      []InputField  `json:"inputs"`
	Outputs     []OutputField `json:"outputs"`
	Keywords    []string      `json:"keywords,omitempty"`
	Content     *Content      `json:"content,omitempty"`
	Meta        *Meta         `json:"meta,omitempty"`
}

// Input returns the input with the supplied id.
func (d Definition) Input(id string) (InputField, bool) {
	for _, input := range d.Inputs {
		if input.ID == id {
			return input, true
		}
	}
	return InputField{}, false
}

// Clone returns a copy whose slices and optional blocks can be mutated without
// affecting d. Function fields are shared.
func (d Definition) Clone() Definition {
	out := d
	out.Inputs = make([]InputField, len(d.Inputs))
	for i, input := range d.Inputs {
		input.Options = append([]Option(nil), input.Options...)
		out.Inputs[i] = input
	}
	out.Outputs = append([]OutputField(nil), d.Outputs...)
	out.Keywords = append([]string(nil), d.Keywords...)
	if d.Content != nil {
		content := Content{
			Sections: append([]Section(nil), d.Content.Sections...),
			FAQ:      append([]FAQ(nil), d.Content.FAQ...),
		}
		out.Content = &content
	}
	if d.Meta != nil {
		meta := *d.Meta
		meta.Keywords = append([]string(nil), d.Meta.Keywords...)
		out.Meta = &meta
	}
	return out
}
