package automation

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/types"
)

// Engine walks quick-apply forms. Each step rediscovers the visible
// controls from scratch, fills the fillable ones, and advances through
// whichever progression control is present. A form that stops exposing any
// known control is declared stuck, never retried blindly.
type Engine struct {
	session    Session
	browserCfg config.BrowserConfig
	applyCfg   config.ApplyConfig
	profile    types.UserProfile
	pacer      *Pacer
	logger     *errors.Logger

	mu        sync.RWMutex
	selectors config.ApplySelectors

	// onResult, when set, receives each attempt's outcome.
	onResult func(types.ApplyResult)
}

// NewEngine creates an apply engine over an attached session.
func NewEngine(session Session, selectors config.Selectors, browserCfg config.BrowserConfig, applyCfg config.ApplyConfig, profile types.UserProfile, pacer *Pacer, logger *errors.Logger) *Engine {
	return &Engine{
		session:    session,
		browserCfg: browserCfg,
		applyCfg:   applyCfg,
		profile:    profile,
		pacer:      pacer,
		logger:     logger,
		selectors:  selectors.Apply,
	}
}

// UpdateSelectors swaps the active apply selectors. Safe to call from the
// selectors watcher; the new set takes effect on the next attempt.
func (e *Engine) UpdateSelectors(selectors config.Selectors) {
	e.mu.Lock()
	e.selectors = selectors.Apply
	e.mu.Unlock()
}

// SetResultObserver registers a callback invoked with each attempt outcome.
func (e *Engine) SetResultObserver(fn func(types.ApplyResult)) {
	e.onResult = fn
}

func (e *Engine) currentSelectors() config.ApplySelectors {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selectors
}

// Run applies to each listing in order and returns the run report. The
// configured limit bounds submitted applications, zero meaning no bound.
// A stuck or inapplicable listing never aborts the run.
func (e *Engine) Run(ctx context.Context, listings []types.ListingRecord) (types.ApplyReport, error) {
	var report types.ApplyReport

	for _, listing := range listings {
		if e.applyCfg.Limit > 0 && report.Submitted >= e.applyCfg.Limit {
			if e.logger != nil {
				e.logger.Info("Application limit reached", "limit", e.applyCfg.Limit)
			}
			break
		}

		if err := e.pacer.Wait(ctx); err != nil {
			return report, err
		}

		result := e.Apply(ctx, listing)
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		report.Results = append(report.Results, result)
		switch {
		case !result.Applicable:
			report.Skipped++
		case result.State == types.ApplyStateDone:
			report.Submitted++
		case result.State == types.ApplyStateStuck:
			report.Stuck++
		}

		if e.onResult != nil {
			e.onResult(result)
		}
		if e.logger != nil {
			e.logger.Info("Application attempt finished",
				"job_id", listing.ID,
				"applicable", result.Applicable,
				"state", string(result.State),
				"steps", result.Steps)
		}
	}

	return report, nil
}

// Apply attempts one quick application for the listing.
func (e *Engine) Apply(ctx context.Context, listing types.ListingRecord) types.ApplyResult {
	result := types.ApplyResult{
		JobID:   listing.ID,
		Title:   listing.Title,
		Company: listing.Company,
	}
	selectors := e.currentSelectors()

	if listing.DetailURL == "" {
		result.Reason = "listing has no detail URL"
		return result
	}
	if err := e.session.Navigate(ctx, listing.DetailURL); err != nil {
		result.Reason = "failed to open listing page"
		if e.logger != nil {
			e.logger.LogError(err, "Failed to open listing", "job_id", listing.ID)
		}
		return result
	}

	// A listing without the quick-apply control is not applicable, which
	// is a normal outcome rather than a failure.
	if !e.session.WaitFor(ctx, selectors.QuickApplyButton, e.applyCfg.EntryWait) {
		result.Reason = "quick apply control not found"
		return result
	}

	entry, err := e.session.QuerySelector(ctx, selectors.QuickApplyButton)
	if err != nil || entry == nil {
		result.Reason = "quick apply control not found"
		return result
	}
	result.Applicable = true

	if err := entry.Click(ctx); err != nil {
		result.State = types.ApplyStateStuck
		result.Reason = "failed to open application form"
		return result
	}

	if !e.session.WaitFor(ctx, selectors.FormContainer, e.browserCfg.ElementTimeout) {
		result.State = types.ApplyStateStuck
		result.Reason = "application form did not appear"
		return result
	}

	state, steps, reason := e.walkForm(ctx, selectors)
	result.State = state
	result.Steps = steps
	result.Reason = reason
	return result
}

// walkForm advances the open application form until it is submitted, gets
// stuck, or hits the step bound.
func (e *Engine) walkForm(ctx context.Context, selectors config.ApplySelectors) (types.ApplyState, int, string) {
	state := types.ApplyStateFilling

	for step := 1; step <= e.applyCfg.MaxSteps; step++ {
		if ctx.Err() != nil {
			return types.ApplyStateStuck, step, "run cancelled"
		}

		e.fillVisibleFields(ctx, selectors)

		// Progression priority: submit ends the form, review precedes
		// submit, continue advances a multi-step form.
		if submit, _ := e.session.QuerySelector(ctx, selectors.SubmitButton); submit != nil {
			state = types.ApplyStateSubmitting
			if err := submit.Click(ctx); err != nil {
				return types.ApplyStateStuck, step, "submit control would not click"
			}
			return types.ApplyStateDone, step, ""
		}

		if review, _ := e.session.QuerySelector(ctx, selectors.ReviewButton); review != nil {
			state = types.ApplyStateReviewing
			if err := review.Click(ctx); err != nil {
				return types.ApplyStateStuck, step, "review control would not click"
			}
			continue
		}

		if next, _ := e.session.QuerySelector(ctx, selectors.ContinueButton); next != nil {
			state = types.ApplyStateFilling
			if err := next.Click(ctx); err != nil {
				return types.ApplyStateStuck, step, "continue control would not click"
			}
			continue
		}

		if e.logger != nil {
			e.logger.Warn("No progression control on application step",
				"step", step, "state", string(state))
		}
		return types.ApplyStateStuck, step, "no actionable control on form step"
	}

	return types.ApplyStateStuck, e.applyCfg.MaxSteps, "step limit reached"
}

// fillVisibleFields discovers and fills the controls on the current form
// step. Individual field failures are logged and skipped.
func (e *Engine) fillVisibleFields(ctx context.Context, selectors config.ApplySelectors) {
	controls, err := e.session.QuerySelectorAll(ctx, selectors.Field)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("Failed to discover form fields", "error", err)
		}
		return
	}

	for _, control := range controls {
		field, err := e.classify(ctx, control)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("Failed to classify form field", "error", err)
			}
			continue
		}
		if field.Skip {
			if e.logger != nil {
				e.logger.Debug("Skipping form field", "label", field.Label, "kind", string(field.Kind))
			}
			continue
		}

		answer := e.answerFor(field.Label)
		switch field.Kind {
		case types.FieldKindDropdown:
			err = e.selectAnswer(ctx, control, answer)
		default:
			err = control.Fill(ctx, answer)
		}
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("Failed to fill form field",
					"label", field.Label, "kind", string(field.Kind), "error", err)
			}
			continue
		}
		if e.logger != nil {
			e.logger.Debug("Filled form field", "label", field.Label, "kind", string(field.Kind))
		}
	}
}

// classify determines a control's label, kind, and whether it must be
// skipped. File inputs and fields matching a configured skip label are
// never filled; those carry state the site already has.
func (e *Engine) classify(ctx context.Context, control Element) (types.FormField, error) {
	tag, err := control.TagName(ctx)
	if err != nil {
		return types.FormField{}, err
	}

	kind := types.FieldKindText
	switch {
	case tag == "select":
		kind = types.FieldKindDropdown
	case tag == "input":
		if inputType, ok, err := control.Attribute(ctx, "type"); err == nil && ok && strings.EqualFold(inputType, "file") {
			kind = types.FieldKindFile
		}
	}

	label, err := e.discoverLabel(ctx, control)
	if err != nil {
		return types.FormField{}, err
	}

	skip := kind == types.FieldKindFile
	if !skip {
		lower := strings.ToLower(label)
		for _, skipLabel := range e.applyCfg.SkipLabels {
			if skipLabel != "" && strings.Contains(lower, strings.ToLower(skipLabel)) {
				skip = true
				break
			}
		}
	}

	return types.FormField{Label: label, Kind: kind, Skip: skip}, nil
}

// discoverLabel resolves a control's label in fixed order: a label element
// bound by the control's id, an enclosing label, the placeholder, then the
// aria-label. Controls with none of these get a stable placeholder name.
func (e *Engine) discoverLabel(ctx context.Context, control Element) (string, error) {
	if id, ok, err := control.Attribute(ctx, "id"); err == nil && ok && id != "" {
		bound, err := e.session.QuerySelector(ctx, `label[for="`+id+`"]`)
		if err == nil && bound != nil {
			if text, err := bound.Text(ctx); err == nil && text != "" {
				return text, nil
			}
		}
	}

	if text, err := control.AncestorLabel(ctx); err == nil && text != "" {
		return text, nil
	}

	if placeholder, ok, err := control.Attribute(ctx, "placeholder"); err == nil && ok && placeholder != "" {
		return placeholder, nil
	}

	if aria, ok, err := control.Attribute(ctx, "aria-label"); err == nil && ok && aria != "" {
		return aria, nil
	}

	return "Unknown Field", nil
}

// answerFor derives an answer from the field label and the profile.
// Experience questions get the profile's total years, location questions
// get the profile location, everything else gets the configured default.
func (e *Engine) answerFor(label string) string {
	lower := strings.ToLower(label)

	if strings.Contains(lower, "year") || strings.Contains(lower, "experience") {
		if e.profile.YearsExperience != nil {
			return strconv.Itoa(*e.profile.YearsExperience)
		}
		return e.applyCfg.DefaultAnswer
	}

	if strings.Contains(lower, "city") || strings.Contains(lower, "location") {
		if e.profile.Location != "" {
			return e.profile.Location
		}
		return e.applyCfg.DefaultAnswer
	}

	return e.applyCfg.DefaultAnswer
}

// selectAnswer picks the dropdown option containing the answer, falling
// back to the first non-empty option.
func (e *Engine) selectAnswer(ctx context.Context, control Element, answer string) error {
	options, err := control.Options(ctx)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		return nil
	}

	lowerAnswer := strings.ToLower(answer)
	for _, option := range options {
		if option != "" && strings.Contains(strings.ToLower(option), lowerAnswer) {
			return control.SelectOption(ctx, option)
		}
	}

	for _, option := range options {
		if option != "" {
			return control.SelectOption(ctx, option)
		}
	}
	return nil
}
