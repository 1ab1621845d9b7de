package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

// builtIn pairs a scene listing with its constructor
type builtIn struct {
	info  SceneInfo
	build func() *Scene
}

var builtInScenes = []builtIn{
	{SceneInfo{ID: "cornell-box", Name: "Cornell Box", Description: "Cornell box with a rotated block and a glass sphere"}, NewCornellScene},
	{SceneInfo{ID: "basic", Name: "Default Scene", Description: "Phong, mirror and glass spheres on a plane"}, NewDefaultScene},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "10x10 grid of rainbow-colored glossy spheres"}, func() *Scene { return NewSphereGridScene(10) }},
	{SceneInfo{ID: "triangle-mesh", Name: "Triangle Mesh", Description: "Box, pyramid and icosahedron built from triangles"}, NewTriangleMeshScene},
	{SceneInfo{ID: "quadrics", Name: "Quadrics", Description: "Ellipsoid, cylinder, cone and hyperboloid quadrics"}, NewQuadricScene},
}

// BuiltInScenes lists the scenes compiled into the program
func BuiltInScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtInScenes))
	for i, b := range builtInScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtInGroup
		info.Type = "builtin"
		infos[i] = info
	}
	return infos
}

// NewBuiltInScene creates the built-in scene with the given ID
func NewBuiltInScene(id string) (*Scene, bool) {
	for _, b := range builtInScenes {
		if b.info.ID == id {
			return b.build(), true
		}
	}
	return nil, false
}

// Load resolves a scene by built-in ID, "json:<name>" ID or path to a .json
// file
func Load(nameOrPath string, logger core.Logger) (*Scene, error) {
	if s, ok := NewBuiltInScene(nameOrPath); ok {
		return s, nil
	}
	if name, ok := strings.CutPrefix(nameOrPath, "json:"); ok {
		dir := findScenesDir()
		if dir == "" {
			return nil, fmt.Errorf("no scenes directory for %q", nameOrPath)
		}
		return LoadJSONScene(filepath.Join(dir, name+".json"), logger)
	}
	if strings.EqualFold(filepath.Ext(nameOrPath), ".json") {
		return LoadJSONScene(nameOrPath, logger)
	}
	return nil, fmt.Errorf("unknown scene %q", nameOrPath)
}

// findScenesDir returns the first scenes directory found, or ""
func findScenesDir() string {
	// Try different possible paths for scenes directory
	for _, path := range []string{"scenes", "../scenes", "../../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans the scenes directory and returns discovered JSON scenes
func ListJSONScenes() ([]SceneInfo, error) {
	scenesDir := findScenesDir()
	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}
	return ListJSONScenesIn(scenesDir)
}

// ListJSONScenesIn returns the JSON scenes in dir sorted by display name.
// Files that fail to parse are reported and skipped.
func ListJSONScenesIn(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseJSONMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseJSONMetadata reads the metadata section of a JSON scene, falling
// back to values derived from the file name
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "json:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "JSON Scenes",
		Type:        "json",
		FilePath:    filePath,
	}

	desc, err := loaders.LoadSceneDescription(filePath)
	if err != nil {
		return sceneInfo, err
	}
	if md := desc.Metadata; md != nil {
		if md.Name != "" {
			sceneInfo.Name = md.Name
		}
		if md.Group != "" {
			sceneInfo.Group = md.Group
		}
		sceneInfo.Description = md.Description
		sceneInfo.Variant = md.Variant
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}
	return sceneInfo, nil
}

// ListAllScenes returns both built-in and JSON scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	jsonScenes, err := ListJSONScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	allScenes := append(BuiltInScenes(), jsonScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if scenes, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: scenes})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
