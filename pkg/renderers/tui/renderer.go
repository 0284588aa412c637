// Package tui renders a calculator as a sequence of terminal prompts. Each
// visible input is asked in declaration order, visibility is re-evaluated
// after every answer, and the collected answers are evaluated and serialized.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-calckit/pkg/compute"
	"github.com/goliatone/go-calckit/pkg/i18n"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/render"
	"github.com/goliatone/go-calckit/pkg/visibility"
	"github.com/goliatone/go-calckit/pkg/visibility/expr"
	"github.com/goliatone/go-calckit/pkg/widgets"
)

// Name is the registry name of the renderer.
const Name = "tui"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	widgets           *widgets.Registry
	evaluator         visibility.Evaluator
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(nil),
		outputFormat: OutputFormatJSON,
		maxAttempts:  DefaultMaxAttempts,
		widgets:      widgets.NewRegistry(),
		evaluator:    expr.New(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		return nil, ErrNoDriver
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every visible input of page.Definition, evaluates the
// answers and serializes the outcome. page.Raw prefills prompt defaults.
func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	def := page.Definition
	l := render.NewLocalizer(opts)
	state := NewState(def, page.Raw)

	if err := r.info(ctx, r.theme.InfoPrefix, def.Title); err != nil {
		return nil, err
	}
	for _, input := range def.Inputs {
		visible, err := visibility.Visible(input, state.Values(), r.evaluator, nil)
		if err == nil && !visible {
			delete(state.Raw(), input.ID)
			continue
		}
		if err := r.promptInput(ctx, input, state, l); err != nil {
			return nil, err
		}
	}

	raw := state.Raw()
	if r.submitTransformer != nil {
		var err error
		raw, err = r.submitTransformer(raw)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	eval, err := compute.Run(def, raw, compute.WithEvaluator(r.evaluator))
	if err != nil {
		return nil, fmt.Errorf("tui: evaluate %s: %w", def.ID, err)
	}
	return r.serialize(def, raw, eval, l)
}

func (r *Renderer) promptInput(ctx context.Context, input model.InputField, state *State, l render.Localizer) error {
	label := input.Label
	if input.Unit != "" {
		label += " (" + input.Unit + ")"
	}
	help := input.HelpText
	if help == "" {
		help = input.PlaceholderFor(state.Values())
	}
	widget, _ := r.widgets.Resolve(input)

	switch input.Type {
	case model.InputTypeCheckbox:
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: state.Values().Get(input.ID).Bool(),
			Help:    help,
		})
		if err != nil {
			return err
		}
		state.Set(input.ID, fmt.Sprint(answer))
		return nil
	case model.InputTypeSelect:
		return r.promptSelect(ctx, input, label, help, state)
	}

	validate := r.validator(input, l)
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		var answer string
		var err error
		if widget == widgets.WidgetTextarea {
			answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: state.Default(input), Help: help})
		} else {
			answer, err = r.driver.Input(ctx, InputConfig{Message: label, Default: state.Default(input), Help: help})
		}
		if err != nil {
			return err
		}
		if problem := validate(answer); problem != nil {
			if err := r.info(ctx, r.theme.ErrorPrefix, fmt.Sprintf("%s: %v", input.Label, problem)); err != nil {
				return err
			}
			continue
		}
		state.Set(input.ID, strings.TrimSpace(answer))
		return nil
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, input.ID)
}

func (r *Renderer) promptSelect(ctx context.Context, input model.InputField, label, help string, state *State) error {
	labels := make([]string, len(input.Options))
	defaultIndex := 0
	current := state.Default(input)
	for i, opt := range input.Options {
		labels[i] = opt.Label
		if opt.Value == current {
			defaultIndex = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         help,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(input.Options) {
		return fmt.Errorf("tui: %s: selection %d out of range", input.ID, idx)
	}
	state.Set(input.ID, input.Options[idx].Value)
	return nil
}

// validator mirrors the checks compute applies so bad answers are re-asked
// instead of failing the whole evaluation.
func (r *Renderer) validator(input model.InputField, l render.Localizer) func(string) error {
	return func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return nil
		}
		switch input.Type {
		case model.InputTypeDate:
			if _, err := time.Parse(dateLayout, answer); err != nil {
				return fmt.Errorf("expected %s", dateLayout)
			}
			return nil
		case model.InputTypeTime:
			if _, err := time.Parse(timeLayout, answer); err != nil {
				return fmt.Errorf("expected %s", timeLayout)
			}
			return nil
		case model.InputTypeNumber:
			if problem, bad := compute.CheckInput(input, compute.ParseNumber(answer)); bad {
				return errors.New(l.Messagef(problem.Message, problem.Args...))
			}
		}
		return nil
	}
}

type resultPayload struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Status  string `json:"status"`
	Value   any    `json:"value,omitempty"`
	Display string `json:"display,omitempty"`
	Unit    string `json:"unit,omitempty"`
	Message string `json:"message,omitempty"`
}

type payload struct {
	Calculator string            `json:"calculator"`
	Inputs     map[string]string `json:"inputs"`
	Errors     map[string]string `json:"errors,omitempty"`
	Results    []resultPayload   `json:"results"`
}

func (r *Renderer) serialize(def model.Definition, raw map[string]string, eval compute.Evaluation, l render.Localizer) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range raw {
			form.Set(key, value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return r.pretty(eval, l), nil
	}

	out := payload{
		Calculator: def.ID,
		Inputs:     raw,
		Results:    make([]resultPayload, 0, len(eval.Outputs)),
	}
	mapping := render.MapEvaluationErrors(&eval, l)
	if len(mapping.Fields) > 0 {
		out.Errors = mapping.Fields
	}
	for _, o := range eval.Outputs {
		item := resultPayload{
			ID:      o.Key,
			Label:   o.Label,
			Status:  o.Result.Status.String(),
			Display: i18n.FormatResult(l.Locale(), o.Output, o.Result),
			Unit:    o.Output.Unit,
		}
		if o.Result.Valid() {
			item.Value = o.Result.Value.Interface()
		}
		if o.Result.Message != "" {
			item.Message = l.Message(o.Result.Message)
		}
		out.Results = append(out.Results, item)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode json: %w", err)
	}
	return data, nil
}

func (r *Renderer) pretty(eval compute.Evaluation, l render.Localizer) []byte {
	var buf bytes.Buffer
	mapping := render.MapEvaluationErrors(&eval, l)
	for _, msg := range mapping.Form {
		fmt.Fprintf(&buf, "%s%s\n", r.theme.ErrorPrefix, msg)
	}
	for _, o := range eval.Outputs {
		display := i18n.FormatResult(l.Locale(), o.Output, o.Result)
		if display == "" {
			display = "-"
		} else if o.Output.Unit != "" && o.Output.Currency == "" {
			display += " " + o.Output.Unit
		}
		fmt.Fprintf(&buf, "%s: %s\n", o.Label, display)
	}
	return buf.Bytes()
}

func (r *Renderer) info(ctx context.Context, prefix, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return r.driver.Info(ctx, prefix+msg)
}
