package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]

		// Generate example value based on field type
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	// Handle pointer types
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			// Return boolean value directly (not pointer)
			return fieldName == "debug"
		case reflect.Int:
			// Return int value directly (not pointer)
			switch fieldName {
			case "max_log_files":
				return DefaultMaxLogFiles
			case "list_concurrency":
				return DefaultListConcurrency
			}
			return 10
		}
	}

	// Handle direct types
	if t.Kind() == reflect.String {
		// Generate contextual examples based on field name
		switch fieldName {
		case "default_layout":
			return "claude"
		case "layouts_file":
			return "~/.cc-orchestrator/layouts.yaml"
		case "socket_name":
			return "orchestrator"
		case "tmux_command":
			return DefaultTmuxCommand
		default:
			return "example"
		}
	}

	return nil
}
