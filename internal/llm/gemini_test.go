package llm

import (
	"testing"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchemaTranslation(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt":     map[string]any{"type": "string"},
			"kind":       map[string]any{"type": "string", "enum": []any{"multiple_choice", "open_analysis"}},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard", "expert"}},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"correct_option": map[string]any{"type": "integer"},
		},
		"required": []any{"prompt", "kind"},
	}

	schema := geminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 5 {
		t.Fatalf("expected 5 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["prompt"].Type != "STRING" {
		t.Fatalf("expected STRING for prompt, got %s", schema.Properties["prompt"].Type)
	}
	if schema.Properties["correct_option"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for correct_option, got %s", schema.Properties["correct_option"].Type)
	}
	if len(schema.Properties["kind"].Enum) != 2 {
		t.Fatalf("expected 2 enum values for kind, got %d", len(schema.Properties["kind"].Enum))
	}
	if len(schema.Properties["difficulty"].Enum) != 4 {
		t.Fatalf("expected 4 enum values for difficulty, got %d", len(schema.Properties["difficulty"].Enum))
	}
	if schema.Properties["options"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for options, got %s", schema.Properties["options"].Type)
	}
	if schema.Properties["options"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for options items, got %s", schema.Properties["options"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
