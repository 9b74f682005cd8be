package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_sample_color",
		"image_sample_colors_multi",
		"image_grayscale",
		"image_brightness",
		"image_histogram",
		"image_histogram_chart",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok || len(required) == 0 {
				t.Fatal("InputSchema should list required properties")
			}
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required property %s is not defined", name)
				}
			}
			if _, ok := props["path"]; !ok {
				t.Error("every tool takes a path")
			}
		})
	}
}

func TestToolDefinitions_JSONSerializable(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal tools: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tools: %v", err)
	}
	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("tool %v: inputSchema missing from JSON", tool["name"])
		}
	}
}
