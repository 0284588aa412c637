package html

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-calckit/pkg/compute"
	"github.com/goliatone/go-calckit/pkg/i18n"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/render"
	"github.com/goliatone/go-calckit/pkg/widgets"
)

// UIDefaults are the English source strings for the page chrome. They are
// used when the translator has no entry for a ui.* key.
var UIDefaults = map[string]string{
	"ui.site_title":         "Calculators",
	"ui.site_intro":         "Free online calculators for everyday maths, money, health and more.",
	"ui.calculate":          "Calculate",
	"ui.results":            "Results",
	"ui.search":             "Search",
	"ui.search_placeholder": "Search calculators",
	"ui.no_results":         "No calculators match your search.",
	"ui.not_found":          "Calculator not found",
	"ui.not_found_body":     "The calculator you are looking for does not exist or has moved.",
	"ui.back_home":          "Back to all calculators",
	"ui.faq":                "Frequently asked questions",
	"ui.language":           "Language",
	"ui.related":            "More in this category",
}

// Template data. Every number is preformatted so templates never print raw
// floats.
type (
	pageView struct {
		Lang            string            `json:"lang"`
		Title           string            `json:"title"`
		MetaTitle       string            `json:"meta_title"`
		MetaDescription string            `json:"meta_description"`
		Keywords        string            `json:"keywords,omitempty"`
		Stylesheet      string            `json:"stylesheet"`
		Style           string            `json:"style,omitempty"`
		Theme           themeView         `json:"theme"`
		Nav             navView           `json:"nav"`
		UI              map[string]string `json:"ui"`
	}

	themeView struct {
		Name    string `json:"name"`
		Variant string `json:"variant,omitempty"`
	}

	navView struct {
		Home      string     `json:"home"`
		Search    string     `json:"search"`
		Query     string     `json:"query,omitempty"`
		Locales   []linkView `json:"locales"`
		Canonical string     `json:"canonical,omitempty"`
	}

	linkView struct {
		Label   string `json:"label"`
		URL     string `json:"url"`
		Current bool   `json:"current,omitempty"`
		Note    string `json:"note,omitempty"`
	}

	calcView struct {
		ID            string          `json:"id"`
		Title         string          `json:"title"`
		Description   string          `json:"description"`
		Category      string          `json:"category"`
		CategoryLabel string          `json:"category_label"`
		CategoryURL   string          `json:"category_url"`
		Action        string          `json:"action"`
		Submitted     bool            `json:"submitted"`
		Fields        []fieldView     `json:"fields"`
		Results       []resultView    `json:"results"`
		Errors        []string        `json:"errors,omitempty"`
		Sections      []model.Section `json:"sections,omitempty"`
		FAQ           []model.FAQ     `json:"faq,omitempty"`
		Related       []linkView      `json:"related,omitempty"`
	}

	fieldView struct {
		ID          string       `json:"id"`
		Label       string       `json:"label"`
		Type        string       `json:"type"`
		Widget      string       `json:"widget"`
		Value       string       `json:"value"`
		Checked     bool         `json:"checked,omitempty"`
		Options     []optionView `json:"options,omitempty"`
		Unit        string       `json:"unit,omitempty"`
		Min         string       `json:"min,omitempty"`
		Max         string       `json:"max,omitempty"`
		Step        string       `json:"step,omitempty"`
		Placeholder string       `json:"placeholder,omitempty"`
		Help        string       `json:"help,omitempty"`
		Hidden      bool         `json:"hidden,omitempty"`
		VisibleIf   string       `json:"visible_if,omitempty"`
		Error       string       `json:"error,omitempty"`
	}

	optionView struct {
		Label    string `json:"label"`
		Value    string `json:"value"`
		Selected bool   `json:"selected,omitempty"`
	}

	resultView struct {
		ID      string `json:"id"`
		Label   string `json:"label"`
		Display string `json:"display"`
		Unit    string `json:"unit,omitempty"`
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
		Help    string `json:"help,omitempty"`
	}

	groupView struct {
		Category string     `json:"category"`
		Label    string     `json:"label"`
		Links    []linkView `json:"links"`
	}

	indexView struct {
		Groups   []groupView `json:"groups"`
		Query    string      `json:"query,omitempty"`
		Searched bool        `json:"searched"`
		Matches  []linkView  `json:"matches,omitempty"`
	}
)

// pendingDisplay is shown for results that are not valid yet.
const pendingDisplay = "-"

func newPageView(l render.Localizer, opts render.RenderOptions, title, description string) pageView {
	ui := make(map[string]string, len(UIDefaults))
	for key, fallback := range UIDefaults {
		ui[strings.TrimPrefix(key, "ui.")] = l.Text(key, fallback)
	}
	if title == "" {
		title = ui["site_title"]
	}

	view := pageView{
		Lang:            l.Locale(),
		Title:           title,
		MetaTitle:       title,
		MetaDescription: description,
		Stylesheet:      "/static/" + StylesheetName,
		Theme:           themeView{Name: render.DefaultThemeName},
		UI:              ui,
		Nav: navView{
			Home:   render.IndexPath(opts.BasePath, l.Locale()),
			Search: render.IndexPath(opts.BasePath, l.Locale()),
		},
	}
	if cfg := opts.Theme; cfg != nil {
		view.Theme = themeView{Name: cfg.Theme, Variant: cfg.Variant}
		view.Style = render.CSSVarsStyle(cfg)
		if cfg.AssetURL != nil {
			if href := cfg.AssetURL("stylesheet"); href != "" {
				view.Stylesheet = href
			}
		}
	}
	return view
}

// withLocales fills the language switcher, linking each locale to target.
func (v *pageView) withLocales(opts render.RenderOptions, target func(locale string) string) {
	for _, locale := range opts.Locales {
		v.Nav.Locales = append(v.Nav.Locales, linkView{
			Label:   locale,
			URL:     target(locale),
			Current: locale == v.Lang,
		})
	}
}

func newCalcView(page render.Page, l render.Localizer, opts render.RenderOptions, resolver *widgets.Registry) calcView {
	def := page.Definition
	locale := l.Locale()
	view := calcView{
		ID:            def.ID,
		Title:         def.Title,
		Description:   def.Description,
		Category:      string(def.Category),
		CategoryLabel: l.Category(def.Category),
		CategoryURL:   render.IndexPath(opts.BasePath, locale) + "#" + string(def.Category),
		Action:        render.CalculatorPath(opts.BasePath, locale, def.ID),
		Submitted:     page.Submitted,
	}

	var values model.Values
	if page.Evaluation != nil {
		values = page.Evaluation.Values
	}
	mapping := render.MapEvaluationErrors(page.Evaluation, l)
	if page.Submitted {
		view.Errors = mapping.Form
	}

	for _, input := range def.Inputs {
		field := newFieldView(input, page, values, resolver)
		if page.Submitted {
			field.Error = mapping.Fields[input.ID]
		}
		view.Fields = append(view.Fields, field)
	}

	for i, output := range def.Outputs {
		var result model.Result
		if page.Evaluation != nil && i < len(page.Evaluation.Outputs) {
			result = page.Evaluation.Outputs[i].Result
		}
		view.Results = append(view.Results, newResultView(locale, output, result, l))
	}

	if !def.Content.Empty() {
		view.Sections = def.Content.Sections
		view.FAQ = def.Content.FAQ
	}
	for _, rel := range page.Related {
		view.Related = append(view.Related, linkView{
			Label: rel.Title,
			URL:   render.CalculatorPath(opts.BasePath, locale, rel.ID),
		})
	}
	return view
}

func newFieldView(input model.InputField, page render.Page, values model.Values, resolver *widgets.Registry) fieldView {
	field := fieldView{
		ID:          input.ID,
		Label:       input.Label,
		Type:        string(input.Type),
		Unit:        input.Unit,
		Min:         formatBound(input.Min),
		Max:         formatBound(input.Max),
		Step:        formatBound(input.Step),
		Placeholder: input.PlaceholderFor(values),
		Help:        input.HelpText,
		VisibleIf:   input.VisibleIf,
	}
	field.Widget, _ = resolver.Resolve(input)
	if field.Widget == "" {
		field.Widget = widgets.WidgetText
	}
	if input.Type == model.InputTypeNumber && field.Step == "" {
		field.Step = "any"
	}

	raw, submitted := page.Raw[input.ID]
	switch {
	case submitted:
		field.Value = raw
	case !input.Default.IsEmpty():
		field.Value = input.Default.String()
	}
	if input.Type == model.InputTypeCheckbox {
		if submitted {
			field.Checked = values.Get(input.ID).Bool()
		} else {
			field.Checked = input.Default.Bool()
		}
	}
	for _, opt := range input.Options {
		field.Options = append(field.Options, optionView{
			Label:    opt.Label,
			Value:    opt.Value,
			Selected: opt.Value == field.Value,
		})
	}
	if page.Evaluation != nil {
		if visible, ok := page.Evaluation.Visible[input.ID]; ok && !visible {
			field.Hidden = true
		}
	}
	return field
}

func newResultView(locale string, output model.OutputField, result model.Result, l render.Localizer) resultView {
	view := resultView{
		ID:      output.Key(),
		Label:   output.Label,
		Display: i18n.FormatResult(locale, output, result),
		Unit:    output.Unit,
		Status:  result.Status.String(),
		Help:    output.HelpText,
	}
	if output.Currency != "" {
		view.Unit = ""
	}
	if view.Display == "" {
		view.Display = pendingDisplay
	}
	if msg := result.Message; msg != "" && msg != compute.MsgFixInputs {
		view.Message = l.Message(msg)
	}
	return view
}

func newIndexView(index render.Index, l render.Localizer, opts render.RenderOptions) indexView {
	locale := l.Locale()
	view := indexView{Query: index.Query, Searched: index.Searched}
	for _, group := range index.Groups {
		g := groupView{Category: string(group.Category), Label: l.Category(group.Category)}
		for _, def := range group.Definitions {
			g.Links = append(g.Links, linkView{
				Label: def.Title,
				URL:   render.CalculatorPath(opts.BasePath, locale, def.ID),
				Note:  def.Description,
			})
		}
		view.Groups = append(view.Groups, g)
	}
	for _, def := range index.Matches {
		view.Matches = append(view.Matches, linkView{
			Label: def.Title,
			URL:   render.CalculatorPath(opts.BasePath, locale, def.ID),
			Note:  def.Description,
		})
	}
	return view
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
