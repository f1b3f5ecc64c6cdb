package editorconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ConfigPath is the path to the editor config file, relative to the process
// working directory.
const ConfigPath = "config/editor.json"

// Prefs holds editor-only preferences (debug overlays, grid mode, autosave,
// remote endpoint). Persisted across runs; scene content is separate and lives
// in the scene database.
type Prefs struct {
	ShowFPS       bool   `json:"show_fps"`
	ShowMemAlloc  bool   `json:"show_memalloc"`
	GridMode      string `json:"grid_mode"`
	PlaceMode     bool   `json:"place_mode"`
	AutosaveScene string `json:"autosave_scene,omitempty"`
	SceneDB       string `json:"scene_db"`
	RemoteAddr    string `json:"remote_addr,omitempty"`
}

// Default returns default editor preferences (overlays off, grid normal,
// placement off, autosave into "autosave", remote disabled).
func Default() Prefs {
	return Prefs{
		ShowFPS:       false,
		ShowMemAlloc:  false,
		GridMode:      "normal",
		PlaceMode:     false,
		AutosaveScene: "autosave",
		SceneDB:       "saves/scenes.db",
	}
}

// Load reads editor preferences from config/editor.json. If the file is
// missing or invalid, returns Default() and does not create a file.
func Load() (Prefs, error) {
	data, err := os.ReadFile(ConfigPath)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes editor preferences to config/editor.json, creating the config
// directory if needed.
func Save(p Prefs) error {
	dir := filepath.Dir(ConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath, data, 0644)
}
