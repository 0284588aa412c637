package model

import internalmodel "github.com/goliatone/go-calckit/internal/model"

// InputType re-exports the internal InputType enumeration.
type InputType = internalmodel.InputType

const (
	InputTypeNumber   = internalmodel.InputTypeNumber
	InputTypeText     = internalmodel.InputTypeText
	InputTypeSelect   = internalmodel.InputTypeSelect
	InputTypeDate     = internalmodel.InputTypeDate
	InputTypeCheckbox = internalmodel.InputTypeCheckbox
	InputTypeTime     = internalmodel.InputTypeTime
)

// Category re-exports the internal Category enumeration.
type Category = internalmodel.Category

const (
	CategoryMath       = internalmodel.CategoryMath
	CategoryGeometry   = internalmodel.CategoryGeometry
	CategoryFinance    = internalmodel.CategoryFinance
	CategoryHealth     = internalmodel.CategoryHealth
	CategoryPhysics    = internalmodel.CategoryPhysics
	CategoryConversion = internalmodel.CategoryConversion
	CategoryStatistics = internalmodel.CategoryStatistics
	CategoryDateTime   = internalmodel.CategoryDateTime
	CategoryEveryday   = internalmodel.CategoryEveryday
)

type Notation = internalmodel.Notation

const (
	NotationStandard   = internalmodel.NotationStandard
	NotationFixed      = internalmodel.NotationFixed
	NotationPercent    = internalmodel.NotationPercent
	NotationScientific = internalmodel.NotationScientific
	NotationCompact    = internalmodel.NotationCompact
)

const DefaultPrecision = internalmodel.DefaultPrecision

type Format = internalmodel.Format
type Option = internalmodel.Option
type Predicate = internalmodel.Predicate
type PlaceholderFunc = internalmodel.PlaceholderFunc
type InputField = internalmodel.InputField
type CalculateFunc = internalmodel.CalculateFunc
type OutputField = internalmodel.OutputField
type Section = internalmodel.Section
type FAQ = internalmodel.FAQ
type Content = internalmodel.Content
type Meta = internalmodel.Meta
type Definition = internalmodel.Definition

type Kind = internalmodel.Kind

const (
	KindEmpty  = internalmodel.KindEmpty
	KindNumber = internalmodel.KindNumber
	KindText   = internalmodel.KindText
	KindBool   = internalmodel.KindBool
)

type Value = internalmodel.Value
type Values = internalmodel.Values

type Status = internalmodel.Status

const (
	StatusPending = internalmodel.StatusPending
	StatusValid   = internalmodel.StatusValid
	StatusInvalid = internalmodel.StatusInvalid
)

type Result = internalmodel.Result
type Results = internalmodel.Results

// Categories lists the category enumeration in display order.
func Categories() []Category { return internalmodel.Categories() }

// InputTypes lists the input type enumeration.
func InputTypes() []InputType { return internalmodel.InputTypes() }

// Value constructors.
func Number(v float64) Value { return internalmodel.Number(v) }
func Text(v string) Value { return internalmodel.Text(v) }
func Bool(v bool) Value { return internalmodel.Bool(v) }
func Empty() Value { return internalmodel.Empty() }
func ValueOf(raw any) (Value, error) { return internalmodel.ValueOf(raw) }

// Result constructors.
func Num(v float64) Result { return internalmodel.Num(v) }
func Str(v string) Result { return internalmodel.Str(v) }
func Pending() Result { return internalmodel.Pending() }
func Invalid(message string) Result { return internalmodel.Invalid(message) }

// Slugify derives a kebab-case key from a label.
func Slugify(label string) string { return internalmodel.Slugify(label) }

// IsKebabCase reports whether id is a well formed calculator id.
func IsKebabCase(id string) bool { return internalmodel.IsKebabCase(id) }

// DefaultLabeler converts identifiers into display labels.
func DefaultLabeler(name string) string { return internalmodel.DefaultLabeler(name) }

// Float returns a pointer to v, handy for Min/Max/Step literals.
func Float(v float64) *float64 { return &v }

// Precision returns a pointer to p for Format.Precision.
func Precision(p int) *int { return &p }
