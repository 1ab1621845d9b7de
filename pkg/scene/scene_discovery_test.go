package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"glass_spheres", "Glass Spheres"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

const minimalSceneBody = `"materials": [],
  "models": [],
  "lights": [],
  "camera": {"fov": 60, "from": [0, 0, 5], "to": [0, 0, 0]}`

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseJSONMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.json",
			content: `{"metadata": {"name": "Cornell Box", "variant": "Empty Room",
  "description": "Classic Cornell box with no objects", "group": "Cornell Variants"},
  ` + minimalSceneBody + `}`,
			expected: SceneInfo{
				ID:          "json:complete_metadata",
				Name:        "Cornell Box",
				DisplayName: "Cornell Box - Empty Room",
				Description: "Classic Cornell box with no objects",
				Group:       "Cornell Variants",
				Type:        "json",
				Variant:     "Empty Room",
			},
		},
		{
			name:    "partial_metadata.json",
			content: `{"metadata": {"name": "Mirrors", "description": "Two facing mirrors"}, ` + minimalSceneBody + `}`,
			expected: SceneInfo{
				ID:          "json:partial_metadata",
				Name:        "Mirrors",
				DisplayName: "Mirrors",
				Description: "Two facing mirrors",
				Group:       "JSON Scenes", // Default group
				Type:        "json",
			},
		},
		{
			name:    "no_metadata.json",
			content: `{` + minimalSceneBody + `}`,
			expected: SceneInfo{
				ID:          "json:no_metadata",
				Name:        "No Metadata", // From filename
				DisplayName: "No Metadata",
				Group:       "JSON Scenes",
				Type:        "json",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			result, err := ParseJSONMetadata(path)
			if err != nil {
				t.Fatalf("ParseJSONMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseJSONMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseJSONMetadata_InvalidFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := ParseJSONMetadata(filepath.Join(dir, "nonexistent.json")); err == nil {
		t.Error("Expected error for a missing file")
	}

	path := writeSceneFile(t, dir, "broken.json", `{"models": [`)
	info, err := ParseJSONMetadata(path)
	if err == nil {
		t.Error("Expected error for truncated JSON")
	}
	// Fallback fields are still filled in for error reporting
	if info.ID != "json:broken" {
		t.Errorf("Expected fallback ID json:broken, got %q", info.ID)
	}
}

func TestListJSONScenesIn(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "zebra.json", `{`+minimalSceneBody+`}`)
	writeSceneFile(t, dir, "apple.json", `{`+minimalSceneBody+`}`)
	writeSceneFile(t, dir, "broken.json", `not json`)
	writeSceneFile(t, dir, "notes.txt", `ignored`)

	scenes, err := ListJSONScenesIn(dir)
	if err != nil {
		t.Fatalf("ListJSONScenesIn() error: %v", err)
	}

	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes (broken file skipped), got %d", len(scenes))
	}
	if scenes[0].DisplayName != "Apple" || scenes[1].DisplayName != "Zebra" {
		t.Errorf("Expected scenes sorted by display name, got %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListJSONScenesIn_EmptyDirectory(t *testing.T) {
	scenes, err := ListJSONScenesIn(t.TempDir())
	if err != nil {
		t.Errorf("ListJSONScenesIn() error: %v", err)
	}
	if scenes == nil {
		t.Error("ListJSONScenesIn() returned nil, expected empty slice")
	}
}

func TestListAllScenes(t *testing.T) {
	response, err := ListAllScenes()
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) == 0 {
		t.Fatal("ListAllScenes() returned no groups")
	}
	if response.Groups[0].Name != "Built-in Scenes" {
		t.Errorf("Expected built-in group first, got %q", response.Groups[0].Name)
	}

	expectedScenes := []string{"cornell-box", "basic", "sphere-grid", "triangle-mesh", "quadrics"}
	builtIn := response.Groups[0].Scenes
	if len(builtIn) != len(expectedScenes) {
		t.Errorf("Built-in scenes count = %d, want %d", len(builtIn), len(expectedScenes))
	}
	sceneIDs := make(map[string]bool)
	for _, scene := range builtIn {
		sceneIDs[scene.ID] = true
	}
	for _, expectedID := range expectedScenes {
		if !sceneIDs[expectedID] {
			t.Errorf("Missing expected built-in scene: %s", expectedID)
		}
	}

	for _, group := range response.Groups {
		for _, scene := range group.Scenes {
			if scene.ID == "" || scene.DisplayName == "" {
				t.Errorf("Scene missing ID or display name: %+v", scene)
			}
			if scene.Type != "builtin" && scene.Type != "json" {
				t.Errorf("Invalid scene type: %s", scene.Type)
			}
			if scene.Type == "json" && (scene.FilePath == "" || !strings.HasPrefix(scene.ID, "json:")) {
				t.Errorf("JSON scene missing file path or prefix: %+v", scene)
			}
		}
	}
}

func TestNewBuiltInScene(t *testing.T) {
	for _, info := range BuiltInScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, ok := NewBuiltInScene(info.ID)
			if !ok {
				t.Fatalf("Expected built-in scene %q", info.ID)
			}
			if s.Camera == nil {
				t.Error("Expected a camera")
			}
			if len(s.Models) == 0 || len(s.Lights) == 0 {
				t.Errorf("Expected models and lights, got %d and %d", len(s.Models), len(s.Lights))
			}
			if err := s.Config.Validate(); err != nil {
				t.Errorf("Expected valid render settings, got %v", err)
			}
		})
	}

	if _, ok := NewBuiltInScene("dragon"); ok {
		t.Error("Expected unknown ID to be rejected")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "tiny.json", `{`+minimalSceneBody+`}`)

	if _, err := Load("basic", nil); err != nil {
		t.Errorf("Expected built-in scene to load, got %v", err)
	}
	if _, err := Load(path, nil); err != nil {
		t.Errorf("Expected JSON path to load, got %v", err)
	}
	if _, err := Load("json:classic", nil); err != nil {
		t.Errorf("Expected bundled classic scene to load, got %v", err)
	}
	if _, err := Load("no-such-scene", nil); err == nil {
		t.Error("Expected error for unknown scene")
	}
}
