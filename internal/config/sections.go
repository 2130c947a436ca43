package config

import (
	"errors"
	"strings"

	"github.com/dshills/tasktable/internal/selection"
	"github.com/dshills/tasktable/internal/sorting"
	"github.com/dshills/tasktable/internal/table"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// SelectConfig holds the [select] section.
type SelectConfig struct {
	// RowSelect is the mode for whole-row clicks ("single" or "multi").
	RowSelect string
	// ButtonSelect is the mode for checkbox clicks ("single" or "multi").
	ButtonSelect string
	// CarryForward keeps the selection when switching between row and
	// checkbox clicks.
	CarryForward bool
	// ClickType is "row" when rows and checkboxes select, "button" when only
	// checkboxes do.
	ClickType string
	// InitialID preselects a single task.
	InitialID string
	// InitialIDs preselects several tasks. Takes precedence over InitialID.
	InitialIDs []string
}

// SortConfig holds the [sort] section.
type SortConfig struct {
	// ToggleType is "alternate" or "reset".
	ToggleType string
	// Key is the initially sorted column; empty keeps data order.
	Key string
	// Reverse starts the initial sort descending.
	Reverse bool
}

// ThemeConfig holds the [theme] section as hex colors.
type ThemeConfig struct {
	Text     string
	Header   string
	Odd      string
	Even     string
	Selected string
}

// LoggingConfig holds the [logging] section.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string
	// File receives log output; empty discards it.
	File string
}

// DataConfig holds the [data] section.
type DataConfig struct {
	// File is a .toml, .yaml or .json task list; empty uses the demo tasks.
	File string
}

// HooksConfig holds the [hooks] section.
type HooksConfig struct {
	// Script is a Lua file defining change hooks.
	Script string
}

// Defaults returns the built-in defaults layer.
func Defaults() map[string]any {
	th := table.DefaultThemeSpec()
	return map[string]any{
		"select": map[string]any{
			"rowSelect":    "multi",
			"buttonSelect": "single",
			"carryForward": true,
			"clickType":    "row",
			"initialId":    "",
			"initialIds":   []any{},
		},
		"sort": map[string]any{
			"toggleType": "alternate",
			"key":        "",
			"reverse":    false,
		},
		"theme": map[string]any{
			"text":     th.Text,
			"header":   th.Header,
			"odd":      th.Odd,
			"even":     th.Even,
			"selected": th.Selected,
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"data": map[string]any{
			"file": "",
		},
		"hooks": map[string]any{
			"script": "",
		},
	}
}

// Select returns the [select] section.
func (c *Config) Select() SelectConfig {
	return SelectConfig{
		RowSelect:    c.getStringOr("select.rowSelect", "multi"),
		ButtonSelect: c.getStringOr("select.buttonSelect", "single"),
		CarryForward: c.getBoolOr("select.carryForward", true),
		ClickType:    c.getStringOr("select.clickType", "row"),
		InitialID:    c.getStringOr("select.initialId", ""),
		InitialIDs:   c.getStringSliceOr("select.initialIds", nil),
	}
}

// Sort returns the [sort] section.
func (c *Config) Sort() SortConfig {
	return SortConfig{
		ToggleType: c.getStringOr("sort.toggleType", "alternate"),
		Key:        c.getStringOr("sort.key", ""),
		Reverse:    c.getBoolOr("sort.reverse", false),
	}
}

// Theme returns the [theme] section.
func (c *Config) Theme() ThemeConfig {
	def := table.DefaultThemeSpec()
	return ThemeConfig{
		Text:     c.getStringOr("theme.text", def.Text),
		Header:   c.getStringOr("theme.header", def.Header),
		Odd:      c.getStringOr("theme.odd", def.Odd),
		Even:     c.getStringOr("theme.even", def.Even),
		Selected: c.getStringOr("theme.selected", def.Selected),
	}
}

// Logging returns the [logging] section.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// Data returns the [data] section.
func (c *Config) Data() DataConfig {
	return DataConfig{File: c.getStringOr("data.file", "")}
}

// Hooks returns the [hooks] section.
func (c *Config) Hooks() HooksConfig {
	return HooksConfig{Script: c.getStringOr("hooks.script", "")}
}

// SelectionOptions converts the [select] section for the selection
// controller.
func (s SelectConfig) SelectionOptions() (selection.Options, selection.Initial, error) {
	row, err := selection.ParseSelectType(s.RowSelect)
	if err != nil {
		return selection.Options{}, selection.Initial{}, err
	}
	button, err := selection.ParseSelectType(s.ButtonSelect)
	if err != nil {
		return selection.Options{}, selection.Initial{}, err
	}
	click, err := selection.ParseClickType(s.ClickType)
	if err != nil {
		return selection.Options{}, selection.Initial{}, err
	}

	opts := selection.Options{
		RowSelect:    row,
		ButtonSelect: button,
		CarryForward: s.CarryForward,
		ClickType:    click,
	}
	initial := selection.Initial{ID: s.InitialID}
	if len(s.InitialIDs) > 0 {
		initial.IDs = append([]string(nil), s.InitialIDs...)
	}
	return opts, initial, nil
}

// SortOptions converts the [sort] section for the sort controller.
func (s SortConfig) SortOptions() (sorting.Options, error) {
	tt, err := sorting.ParseToggleType(s.ToggleType)
	if err != nil {
		return sorting.Options{}, err
	}
	return sorting.Options{
		ToggleType: tt,
		Initial: sorting.State{
			Key:     strings.ToUpper(s.Key),
			Reverse: s.Reverse && s.Key != "",
		},
	}, nil
}

// ThemeSpec converts the [theme] section for the table view.
func (t ThemeConfig) ThemeSpec() table.ThemeSpec {
	return table.ThemeSpec(t)
}

// Validate checks every enum and color setting and returns all problems
// joined, or nil. Type errors recorded by the accessors are included.
func (c *Config) Validate() error {
	var errs []error

	sel := c.Select()
	errs = appendEnum(errs, "select.rowSelect", sel.RowSelect, "single", "multi")
	errs = appendEnum(errs, "select.buttonSelect", sel.ButtonSelect, "single", "multi")
	errs = appendEnum(errs, "select.clickType", sel.ClickType, "row", "button")

	srt := c.Sort()
	errs = appendEnum(errs, "sort.toggleType", srt.ToggleType, "alternate", "reset")
	if srt.Key != "" {
		if _, ok := sorting.DefaultFns()[strings.ToUpper(srt.Key)]; !ok {
			errs = append(errs, &ValidationError{
				Path:    "sort.key",
				Message: "unknown sort column",
				Value:   srt.Key,
				Code:    ErrCodeInvalidEnum,
			})
		}
	}

	errs = appendEnum(errs, "logging.level", c.Logging().Level, "debug", "info", "warn", "warning", "error")

	th := c.Theme()
	if _, err := table.ParseTheme(th.ThemeSpec()); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "theme",
			Message: err.Error(),
			Value:   th,
			Code:    ErrCodeInvalidColor,
		})
	}

	for path, err := range c.ConfigErrors() {
		errs = append(errs, &ValidationError{
			Path:    path,
			Message: err.Error(),
			Code:    ErrCodeTypeMismatch,
		})
	}

	return errors.Join(errs...)
}

func appendEnum(errs []error, path, value string, allowed ...string) []error {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return errs
		}
	}
	return append(errs, &ValidationError{
		Path:    path,
		Message: "must be one of " + strings.Join(allowed, ", "),
		Value:   value,
		Code:    ErrCodeInvalidEnum,
	})
}

// These methods only return the default for ErrSettingNotFound.
// Type errors return the default as well and are recorded, so Validate can
// report them.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		v = defaultValue
	}
	if len(v) == 0 {
		return nil
	}
	// Return a copy to enforce snapshot guarantee
	result := make([]string, len(v))
	copy(result, v)
	return result
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded to preserve the original cause.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}
