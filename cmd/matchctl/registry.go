// cmd/matchctl/registry.go
package main

import (
	"fmt"
	"text/tabwriter"

	"matching-workers/internal/common/validation"
	"matching-workers/pkg/registry"

	"github.com/spf13/cobra"
)

var registryPath string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the task registry served to process models",
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List task types with their timeout and retry budget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadTaskRegistry()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TASK TYPE\tTIMEOUT\tRETRIES\tERROR CODES")
		for _, taskType := range reg.TaskTypes() {
			t, _ := reg.Lookup(taskType)
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", t.TaskType, t.Timeout, t.Retries, len(t.ErrorCodes))
		}
		return w.Flush()
	},
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check required fields and compile every input schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadTaskRegistry()
		if err != nil {
			return err
		}
		if err := validateTaskRegistry(reg); err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registry validation passed, %d task types\n", len(reg.Tasks))
		return nil
	},
}

func init() {
	registryCmd.PersistentFlags().StringVar(&registryPath, "path", "", "registry file (default is the compiled-in registry)")
	registryCmd.AddCommand(registryListCmd, registryValidateCmd)
	rootCmd.AddCommand(registryCmd)
}

func loadTaskRegistry() (*registry.TaskRegistry, error) {
	if registryPath == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(registryPath)
}

func validateTaskRegistry(reg *registry.TaskRegistry) error {
	if len(reg.Tasks) == 0 {
		return fmt.Errorf("registry contains no tasks")
	}
	for _, t := range reg.Tasks {
		if t.DisplayName == "" {
			return fmt.Errorf("task %s missing required field: displayName", t.TaskType)
		}
		if t.Category == "" {
			return fmt.Errorf("task %s missing required field: category", t.TaskType)
		}
		if len(t.InputSchema) == 0 {
			return fmt.Errorf("task %s has no input schema", t.TaskType)
		}
	}
	_, err := validation.NewValidator(reg.InputSchemas())
	return err
}
