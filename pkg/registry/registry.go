// pkg/registry/registry.go

// Package registry describes the matching task types exposed to process
// models: their input contracts, error codes and retry budgets.
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

//go:embed tasks.json
var defaultRegistry []byte

type TaskRegistry struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Tasks       []Task `json:"tasks"`
}

type Task struct {
	TaskType     string                 `json:"taskType"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema,omitempty"`
	ErrorCodes   []string               `json:"errorCodes"`
	Timeout      string                 `json:"timeout"`
	Retries      int                    `json:"retries"`
	Tags         []string               `json:"tags,omitempty"`
}

// Default returns the registry compiled into the binary.
func Default() (*TaskRegistry, error) {
	return parse(defaultRegistry)
}

// LoadRegistry reads a registry file, falling back to Default when path does
// not exist.
func LoadRegistry(path string) (*TaskRegistry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default()
	}
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*TaskRegistry, error) {
	var reg TaskRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse task registry: %w", err)
	}
	seen := make(map[string]bool, len(reg.Tasks))
	for _, t := range reg.Tasks {
		if t.TaskType == "" {
			return nil, fmt.Errorf("task registry entry without taskType")
		}
		if seen[t.TaskType] {
			return nil, fmt.Errorf("duplicate task type %q", t.TaskType)
		}
		seen[t.TaskType] = true
	}
	return &reg, nil
}

func (r *TaskRegistry) Lookup(taskType string) (Task, bool) {
	for _, t := range r.Tasks {
		if t.TaskType == taskType {
			return t, true
		}
	}
	return Task{}, false
}

// InputSchemas maps task type to its JSON schema.
func (r *TaskRegistry) InputSchemas() map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{}, len(r.Tasks))
	for _, t := range r.Tasks {
		if len(t.InputSchema) > 0 {
			out[t.TaskType] = t.InputSchema
		}
	}
	return out
}

func (r *TaskRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		out = append(out, t.TaskType)
	}
	sort.Strings(out)
	return out
}
