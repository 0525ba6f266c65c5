package shippu

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var levelFS embed.FS

// Level is a named timeline.
type Level struct {
	Name       string
	Title      string
	Directives []Directive
}

// levelYAML is the file layout of a level.
type levelYAML struct {
	Name     string          `yaml:"name"`
	Title    string          `yaml:"title"`
	Timeline []directiveYAML `yaml:"timeline"`
}

// directiveYAML is one timeline entry. Exactly one of spawn, idle, wait or
// ending must be set.
type directiveYAML struct {
	Spawn  string  `yaml:"spawn"`
	X      *int    `yaml:"x"`
	Y      *int    `yaml:"y"`
	VY     float64 `yaml:"vy"`
	Idle   *int    `yaml:"idle"`
	Wait   string  `yaml:"wait"`
	Ending bool    `yaml:"ending"`
}

func (e directiveYAML) directive() (Directive, error) {
	set := 0
	for _, ok := range []bool{e.Spawn != "", e.Idle != nil, e.Wait != "", e.Ending} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return Directive{}, fmt.Errorf("%w: want exactly one of spawn, idle, wait, ending", ErrBadDirective)
	}

	var d Directive
	switch {
	case e.Spawn != "":
		kind, err := ParseEnemyKind(e.Spawn)
		if err != nil {
			return Directive{}, err
		}
		if e.X == nil || e.Y == nil {
			return Directive{}, fmt.Errorf("%w: spawn %s needs x and y", ErrBadDirective, e.Spawn)
		}
		if e.VY != 0 && kind != KindStay {
			return Directive{}, fmt.Errorf("%w: vy only applies to stay", ErrBadDirective)
		}
		d = Spawn(kind, core.Fix(*e.X), core.Fix(*e.Y))
		d.VY = core.FixF(e.VY)
	case e.Idle != nil:
		d = Idle(*e.Idle)
	case e.Wait != "":
		if e.Wait != "no_enemies" {
			return Directive{}, fmt.Errorf("%w: wait %q", ErrBadDirective, e.Wait)
		}
		d = WaitNoEnemies()
	default:
		d = BeginEnding()
	}
	return d, d.Validate()
}

// ParseLevel decodes and validates a level file.
func ParseLevel(data []byte) (*Level, error) {
	var ly levelYAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ly); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("shippu: level: %w", err)
	}
	if ly.Name == "" {
		return nil, fmt.Errorf("shippu: level: missing name")
	}
	if len(ly.Timeline) == 0 {
		return nil, fmt.Errorf("shippu: level %s: empty timeline", ly.Name)
	}

	lv := &Level{Name: ly.Name, Title: ly.Title}
	if lv.Title == "" {
		lv.Title = strings.ToUpper(ly.Name)
	}
	for i, e := range ly.Timeline {
		d, err := e.directive()
		if err != nil {
			return nil, fmt.Errorf("shippu: level %s: entry %d: %w", ly.Name, i, err)
		}
		lv.Directives = append(lv.Directives, d)
	}
	return lv, nil
}

// LoadLevelFile reads and parses a level from disk.
func LoadLevelFile(name string) (*Level, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("shippu: level: %w", err)
	}
	return ParseLevel(data)
}

// LevelNames lists the built-in levels in name order.
func LevelNames() []string {
	entries, err := levelFS.ReadDir("levels")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}

// BuiltinLevel parses a built-in level.
func BuiltinLevel(name string) (*Level, error) {
	data, err := levelFS.ReadFile(path.Join("levels", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("shippu: level %s: %w", name, err)
	}
	return ParseLevel(data)
}

// MustLevel parses a built-in level and panics if it is invalid.
// Built-in levels are static data.
func MustLevel(name string) *Level {
	lv, err := BuiltinLevel(name)
	if err != nil {
		panic(err)
	}
	return lv
}
