// Package project provides schematic file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"wire-topology/internal/schematic"
)

// CurrentVersion is the file format version written by Save.
const CurrentVersion = 1

// File represents a schematic project file (.wtproj). Only authoritative
// state is stored: wires, components, manual junctions, settings. Derived
// state (nets, topology, auto-detected junctions) is rebuilt after Load and
// never serialized.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Settings Settings `json:"settings,omitempty"`

	Wires      []*schematic.Wire      `json:"wires"`
	Components []*schematic.Component `json:"components"`
	Junctions  []*schematic.Junction  `json:"junctions"`
}

// Settings holds user preferences for the project.
type Settings struct {
	Tolerance float64 `json:"tolerance,omitempty"`
	SnapGrid  float64 `json:"snap_grid,omitempty"`
}

// DefaultSettings returns the settings for a fresh project.
func DefaultSettings() Settings {
	return Settings{Tolerance: 0.5, SnapGrid: 1}
}

// New creates a new empty project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		Settings: DefaultSettings(),
	}
}

// FromDocument captures a document's authoritative state into a file,
// keeping only manual junctions. Wires marked as loaded programmatically
// keep their points and colors; provenance is a session notion and is not
// written.
func FromDocument(name string, doc *schematic.Document, settings Settings) *File {
	f := New(name)
	f.Settings = settings
	for _, w := range doc.Wires {
		f.Wires = append(f.Wires, w.Clone())
	}
	for _, c := range doc.Components {
		f.Components = append(f.Components, c.Clone())
	}
	f.Junctions = manualOnly(doc.Junctions)
	return f
}

// Document builds a fresh document from the file's state.
func (p *File) Document() *schematic.Document {
	doc := schematic.NewDocument()
	for _, w := range p.Wires {
		doc.AddWire(w.Clone())
	}
	for _, c := range p.Components {
		doc.AddComponent(c.Clone())
	}
	jcts := make([]*schematic.Junction, 0, len(p.Junctions))
	for _, j := range manualOnly(p.Junctions) {
		jcts = append(jcts, j.Clone())
	}
	doc.SetJunctions(jcts)
	return doc
}

// Load loads a project from a .wtproj file. Non-manual junctions found in
// the file (written by older builds that serialized derived state) are
// dropped; callers rebuild them.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if proj.Version > CurrentVersion {
		return nil, fmt.Errorf("%s: unsupported version %d", path, proj.Version)
	}
	proj.Junctions = manualOnly(proj.Junctions)

	for _, w := range proj.Wires {
		w.Source = schematic.SourceLoaded
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%s: wire %s: %w", path, w.ID, err)
		}
	}
	return &proj, nil
}

// Save saves the project to a file. Only manual junctions are written.
func (p *File) Save(path string) error {
	p.Modified = time.Now()
	p.Version = CurrentVersion

	out := *p
	out.Junctions = manualOnly(p.Junctions)

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func manualOnly(jcts []*schematic.Junction) []*schematic.Junction {
	var kept []*schematic.Junction
	for _, j := range jcts {
		if j.Manual {
			kept = append(kept, j)
		}
	}
	return kept
}
