package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/tasktable/internal/config"
	"github.com/dshills/tasktable/internal/renderer/backend"
	"github.com/dshills/tasktable/internal/selection"
	"github.com/dshills/tasktable/internal/sorting"
	"github.com/dshills/tasktable/internal/task"
)

func newTestApp(t *testing.T, settings map[string]any) (*Application, *backend.NullBackend, *bytes.Buffer) {
	t.Helper()

	cfg := config.New()
	for path, v := range settings {
		if err := cfg.Set(path, v); err != nil {
			t.Fatalf("Set(%s): %v", path, err)
		}
	}

	var logs bytes.Buffer
	app, err := New(Options{Config: cfg, LogOutput: &logs})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	nb := backend.NewNullBackend(80, 10)
	if err := app.SetBackend(nb); err != nil {
		t.Fatalf("SetBackend() error = %v", err)
	}
	return app, nb, &logs
}

func key(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func char(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func click(x, y int) []backend.Event {
	return []backend.Event{
		{Type: backend.EventMouse, MouseX: x, MouseY: y, MouseButton: backend.MouseLeft},
		{Type: backend.EventMouse, MouseX: x, MouseY: y, MouseButton: backend.MouseNone},
	}
}

// run queues events followed by a quit key and runs the loop to completion.
func run(t *testing.T, app *Application, nb *backend.NullBackend, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		nb.PostEvent(ev)
	}
	nb.PostEvent(char('q'))
	if err := app.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	if app.Store().Len() != 3 {
		t.Errorf("Store().Len() = %d, want 3", app.Store().Len())
	}
	if !app.Selection().None() {
		t.Error("selection should start empty")
	}
	opts := app.Selection().Options()
	if opts.RowSelect != selection.MultiSelect || opts.ButtonSelect != selection.SingleSelect {
		t.Errorf("options = %+v, want row multi, button single", opts)
	}
	if app.Sorter().State().Active() {
		t.Error("sort should start inactive")
	}
	if len(app.View().Rows()) != 3 {
		t.Errorf("view rows = %d, want 3", len(app.View().Rows()))
	}
}

func TestRun_Keyboard(t *testing.T) {
	app, nb, logs := newTestApp(t, nil)

	run(t, app, nb,
		char(' '),             // checkbox on 1, single: {1}
		char('j'),             // focus 2
		key(backend.KeyEnter), // row multi: {1,2}
		key(backend.KeyDown),  // focus 3
		key(backend.KeyEnter), // {1,2,3}
	)

	state := app.Selection().State()
	if !reflect.DeepEqual(state.IDs, []string{"1", "2", "3"}) || !state.All {
		t.Errorf("state = %+v, want all selected", state)
	}
	if got := nb.Line(0); !strings.HasPrefix(got, " [x]") {
		t.Errorf("header = %q, want checked box", got)
	}
	if got := strings.Count(logs.String(), `msg="select change"`); got != 3 {
		t.Errorf("logged %d select changes, want 3\n%s", got, logs)
	}
	if !strings.Contains(logs.String(), "event=") {
		t.Error("select change log should carry an event id")
	}
	if m := app.Metrics().Snapshot(); m.SelectChanges != 3 || m.RenderCount == 0 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestRun_ToggleAllKeys(t *testing.T) {
	app, nb, _ := newTestApp(t, nil)

	run(t, app, nb, char('a'))
	if !app.Selection().All() {
		t.Fatal("a should select all")
	}

	run(t, app, nb, key(backend.KeyCtrlA))
	if !app.Selection().None() {
		t.Error("ctrl-a on a full selection should clear it")
	}
	if got := app.Metrics().Snapshot().ToggleAlls; got != 2 {
		t.Errorf("ToggleAlls = %d, want 2", got)
	}
}

func TestRun_Mouse(t *testing.T) {
	app, nb, _ := newTestApp(t, nil)

	var events []backend.Event
	events = append(events, click(2, 0)...)  // header checkbox: all
	events = append(events, click(2, 2)...)  // checkbox of 2, single: {2}
	events = append(events, click(23, 0)...) // Deadline header
	// Dragging repeats the pressed state; only the first press counts.
	events = append(events,
		backend.Event{Type: backend.EventMouse, MouseX: 30, MouseY: 3, MouseButton: backend.MouseLeft},
		backend.Event{Type: backend.EventMouse, MouseX: 31, MouseY: 3, MouseButton: backend.MouseLeft},
		backend.Event{Type: backend.EventMouse, MouseX: 31, MouseY: 3, MouseButton: backend.MouseNone},
	)

	run(t, app, nb, events...)

	if got := app.Selection().State().IDs; !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("ids = %v, want [2 3]", got)
	}
	if got := app.Sorter().State(); got != (sorting.State{Key: sorting.KeyDeadline}) {
		t.Errorf("sort = %+v, want deadline ascending", got)
	}
	if app.View().FocusedID() != "3" {
		t.Errorf("focus = %q, want 3", app.View().FocusedID())
	}
}

func TestRun_SortKeys(t *testing.T) {
	app, nb, logs := newTestApp(t, nil)

	names := func() []string {
		var out []string
		for _, tk := range app.View().Rows() {
			out = append(out, tk.Name)
		}
		return out
	}

	run(t, app, nb, char('3'))
	if got := names(); !reflect.DeepEqual(got, []string{"JavaScript", "React", "VSCode"}) {
		t.Errorf("sorted by type = %v", got)
	}
	if !strings.Contains(nb.Line(9), "sort TYPE asc") {
		t.Errorf("status = %q", nb.Line(9))
	}

	run(t, app, nb, char('3'))
	if got := names(); !reflect.DeepEqual(got, []string{"VSCode", "JavaScript", "React"}) {
		t.Errorf("sorted by type desc = %v", got)
	}
	if !strings.Contains(logs.String(), `msg="sort change"`) {
		t.Error("sort change should be logged")
	}
	if got := app.Metrics().Snapshot().SortChanges; got != 2 {
		t.Errorf("SortChanges = %d, want 2", got)
	}
}

func TestRun_CarryForwardOff(t *testing.T) {
	app, nb, _ := newTestApp(t, map[string]any{"select.carryForward": false})

	run(t, app, nb,
		char(' '),             // button: {1}
		key(backend.KeyEnter), // row after button clears first: {1}
		char('j'),
		key(backend.KeyEnter), // row: {1,2}
	)
	if got := app.Selection().State().IDs; !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("ids = %v, want [1 2]", got)
	}

	run(t, app, nb, char(' ')) // button after row clears: {2}
	if got := app.Selection().State().IDs; !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("ids = %v, want [2]", got)
	}
}

func TestRun_ButtonClickType(t *testing.T) {
	app, nb, logs := newTestApp(t, map[string]any{"select.clickType": "button"})

	run(t, app, nb, key(backend.KeyEnter))
	if !app.Selection().None() {
		t.Error("row clicks should be ignored with click type button")
	}
	if strings.Contains(logs.String(), "select change") {
		t.Error("an ignored row click must not notify")
	}

	run(t, app, nb, char(' '))
	if !app.Selection().IsSelected("1") {
		t.Error("checkbox clicks should still select")
	}
}

func TestNew_InitialSelection(t *testing.T) {
	app, nb, _ := newTestApp(t, map[string]any{"select.initialIds": []any{"2", "3"}})

	run(t, app, nb)
	if got := app.Selection().State().IDs; !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("ids = %v, want [2 3]", got)
	}
	if got := nb.Line(0); !strings.HasPrefix(got, " [-]") {
		t.Errorf("header = %q, want indeterminate box", got)
	}
}

func TestNew_InitialSort(t *testing.T) {
	app, _, _ := newTestApp(t, map[string]any{"sort.key": "task", "sort.reverse": true})

	if got := app.View().Rows()[0].Name; got != "VSCode" {
		t.Errorf("first row = %q, want VSCode", got)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name      string
		settings  map[string]any
		tasks     []task.Task
		component string
	}{
		{"bad enum", map[string]any{"select.rowSelect": "bogus"}, nil, "config"},
		{"unknown initial id", map[string]any{"select.initialId": "99"}, nil, "selection"},
		{"missing data file", map[string]any{"data.file": "/nonexistent/tasks.toml"}, nil, "data"},
		{"duplicate ids", nil, []task.Task{{ID: "1"}, {ID: "1"}}, "data"},
		{"missing hook script", map[string]any{"hooks.script": "/nonexistent/hooks.lua"}, nil, "hooks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			for path, v := range tt.settings {
				_ = cfg.Set(path, v)
			}
			_, err := New(Options{Config: cfg, Tasks: tt.tasks})

			var ie *InitError
			if !errors.As(err, &ie) {
				t.Fatalf("New() error = %v, want *InitError", err)
			}
			if ie.Component != tt.component {
				t.Errorf("Component = %q, want %q", ie.Component, tt.component)
			}
		})
	}
}

func TestNew_DataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.toml")
	data := `
[[tasks]]
id = "a"
name = "Write"
deadline = "2021-01-02"
type = "DOC"

[[tasks]]
id = "b"
name = "Ship"
deadline = "2021-02-03"
type = "OPS"
isComplete = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	app, nb, _ := newTestApp(t, map[string]any{"data.file": path})
	run(t, app, nb)

	if !reflect.DeepEqual(app.Store().IDs(), []string{"a", "b"}) {
		t.Errorf("ids = %v", app.Store().IDs())
	}
	if got := nb.Line(2); !strings.Contains(got, "Ship") || !strings.Contains(got, "02/03/2021") {
		t.Errorf("row 2 = %q", got)
	}
}

func TestHooks(t *testing.T) {
	script := filepath.Join(t.TempDir(), "hooks.lua")
	src := `
function on_select_change(action, state)
  tasktable.log("hook saw " .. action.kind .. " " .. action.id .. " " .. #state.ids)
end
function on_sort_change(action, state)
  tasktable.log("hook sort " .. state.key)
end
`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	app, nb, logs := newTestApp(t, map[string]any{"hooks.script": script})
	run(t, app, nb, char(' '), char('1'))

	for _, want := range []string{"hook saw ID 1 1", "hook sort TASK"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q\n%s", want, logs)
		}
	}
}

func TestHooks_ErrorDoesNotBlockSelection(t *testing.T) {
	script := filepath.Join(t.TempDir(), "hooks.lua")
	if err := os.WriteFile(script, []byte(`function on_select_change() error("bad hook") end`), 0o644); err != nil {
		t.Fatal(err)
	}

	app, nb, _ := newTestApp(t, map[string]any{"hooks.script": script})
	run(t, app, nb, char(' '))

	if !app.Selection().IsSelected("1") {
		t.Error("selection should commit even when the hook fails")
	}
	if got := app.Metrics().Snapshot().HookErrors; got != 1 {
		t.Errorf("HookErrors = %d, want 1", got)
	}
}

func TestUnknownIDIsRejected(t *testing.T) {
	app, _, logs := newTestApp(t, nil)

	app.rowClick("nope")
	if !errors.Is(app.lastError, selection.ErrUnknownID) {
		t.Errorf("lastError = %v, want ErrUnknownID", app.lastError)
	}
	if !app.Selection().None() {
		t.Error("unknown id must not change the selection")
	}
	if app.Metrics().Snapshot().Rejected != 1 {
		t.Error("rejection should be counted")
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Error("rejection should be logged as a warning")
	}
}

func TestShutdown(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	errc := make(chan error, 1)
	go func() { errc <- app.Run() }()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("Run did not start")
		}
		time.Sleep(time.Millisecond)
	}

	if err := app.SetBackend(backend.NewNullBackend(10, 10)); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend while running = %v, want ErrAlreadyRunning", err)
	}

	app.Shutdown()
	app.Shutdown() // idempotent

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestShutdown_NoBackend(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	app.Shutdown()
	if err := app.Run(); err != nil {
		t.Errorf("Run() = %v", err)
	}
}

func TestExportSelection(t *testing.T) {
	app, nb, _ := newTestApp(t, nil)
	run(t, app, nb, char('j'), char(' '))

	out, err := app.ExportSelection()
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(out, "count").Int(); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
	if got := gjson.GetBytes(out, "tasks.0.name").String(); got != "JavaScript" {
		t.Errorf("tasks.0.name = %q, want JavaScript", got)
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasktable.log")
	cfg := config.New()
	_ = cfg.Set("logging.file", path)
	_ = cfg.Set("logging.level", "debug")

	app, err := New(Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	app.toggleAll()
	if err := app.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"level=DEBUG", `msg="select change"`, "action=ALL", `msg=closing`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q\n%s", want, data)
		}
	}
}
