package task

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// record is the file representation of a task.
type record struct {
	ID         string `toml:"id" yaml:"id"`
	Name       string `toml:"name" yaml:"name"`
	Deadline   string `toml:"deadline" yaml:"deadline"`
	Type       string `toml:"type" yaml:"type"`
	IsComplete bool   `toml:"isComplete" yaml:"isComplete"`
}

// document is the top-level layout of TOML and YAML data files.
type document struct {
	Tasks []record `toml:"tasks" yaml:"tasks"`
}

// LoadFile reads tasks from a data file. The format is chosen by extension:
// .toml, .yaml/.yml or .json.
func LoadFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data file %s: %w", path, err)
	}

	tasks, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return tasks, nil
}

// Parse decodes tasks from data in the format named by ext.
func Parse(ext string, data []byte) ([]Task, error) {
	var records []record

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		var doc document
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
		records = doc.Tasks
	case "yaml", "yml":
		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
		records = doc.Tasks
	case "json":
		var err error
		records, err = parseJSON(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return fromRecords(records)
}

// parseJSON accepts either a top-level array or an object with a "tasks" array.
func parseJSON(data []byte) ([]record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing json: invalid document")
	}

	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		list = list.Get("tasks")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("parsing json: expected an array of tasks")
	}

	var records []record
	list.ForEach(func(_, v gjson.Result) bool {
		records = append(records, record{
			ID:         v.Get("id").String(),
			Name:       v.Get("name").String(),
			Deadline:   v.Get("deadline").String(),
			Type:       v.Get("type").String(),
			IsComplete: v.Get("isComplete").Bool(),
		})
		return true
	})
	return records, nil
}

func fromRecords(records []record) ([]Task, error) {
	tasks := make([]Task, 0, len(records))
	for _, r := range records {
		t := Task{
			ID:         r.ID,
			Name:       r.Name,
			Type:       r.Type,
			IsComplete: r.IsComplete,
		}
		if r.Deadline != "" {
			d, err := time.ParseInLocation(DateLayout, r.Deadline, time.Local)
			if err != nil {
				return nil, fmt.Errorf("task %q: invalid deadline %q: %w", r.ID, r.Deadline, err)
			}
			t.Deadline = d
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
