// Package level reads TOML level descriptions and converts them into the
// runtime tile map, slope table and object definitions.
package level

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/navigation"
	"github.com/lixenwraith/vi-platformer/physics"
	"github.com/lixenwraith/vi-platformer/tilemap"
)

var ErrInvalidLevel = errors.New("invalid level")

//go:embed default.toml
var defaultLevel []byte

type Point struct {
	X int `mapstructure:"x"`
	Y int `mapstructure:"y"`
}

func (p Point) Core() core.Point { return core.Point{X: p.X, Y: p.Y} }

type Rect struct {
	X int `mapstructure:"x"`
	Y int `mapstructure:"y"`
	W int `mapstructure:"w"`
	H int `mapstructure:"h"`
}

func (r Rect) Box() core.AABB { return core.Box(r.X, r.Y, r.W, r.H) }

type Slope struct {
	AX int `mapstructure:"ax"`
	AY int `mapstructure:"ay"`
	BX int `mapstructure:"bx"`
	BY int `mapstructure:"by"`
}

type Platform struct {
	Start    Point   `mapstructure:"start"`
	Path     []Point `mapstructure:"path"`
	Mode     string  `mapstructure:"mode"`
	Metric   string  `mapstructure:"metric"`
	Velocity float64 `mapstructure:"velocity"`
	Delay    int     `mapstructure:"delay"`
	Width    int     `mapstructure:"width"`
	Height   int     `mapstructure:"height"`
}

type Item struct {
	Rect `mapstructure:",squash"`
	ID   int    `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

type NPC struct {
	Rect  `mapstructure:",squash"`
	Texts []string `mapstructure:"texts"`
	Mode  string   `mapstructure:"mode"`
}

type Zone struct {
	Rect   `mapstructure:",squash"`
	Active bool `mapstructure:"active"`
}

type Trigger struct {
	Rect   `mapstructure:",squash"`
	Type   string `mapstructure:"type"`
	Action string `mapstructure:"action"`
	Zone   *int   `mapstructure:"zone"`
}

// Level is the file form of a stage. Tiles come from Rows (one digit per
// tile) or, when Compressed, from Tiles holding base64 of the RLE stream.
type Level struct {
	Name       string     `mapstructure:"name"`
	Width      int        `mapstructure:"width"`
	Height     int        `mapstructure:"height"`
	Compressed bool       `mapstructure:"compressed"`
	Tiles      string     `mapstructure:"tiles"`
	Rows       []string   `mapstructure:"rows"`
	Player     Point      `mapstructure:"player"`
	Slopes     []Slope    `mapstructure:"slopes"`
	Platforms  []Platform `mapstructure:"platforms"`
	Items      []Item     `mapstructure:"items"`
	NPCs       []NPC      `mapstructure:"npcs"`
	Zones      []Zone     `mapstructure:"zones"`
	Triggers   []Trigger  `mapstructure:"triggers"`
}

// Load reads a level file; the format follows the extension
func Load(path string) (*Level, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	return decode(v)
}

// Parse reads a TOML level from r
func Parse(r io.Reader) (*Level, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	return decode(v)
}

// Default returns the built-in first stage
func Default() (*Level, error) {
	return Parse(bytes.NewReader(defaultLevel))
}

func decode(v *viper.Viper) (*Level, error) {
	var l Level
	if err := v.Unmarshal(&l); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
}

// Validate checks dimensions and every enumerated string
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return invalid("dimensions %dx%d", l.Width, l.Height)
	}
	if !l.Compressed && len(l.Rows) != l.Height {
		return invalid("%d rows for height %d", len(l.Rows), l.Height)
	}
	for i, p := range l.Platforms {
		if len(p.Path) == 0 {
			return invalid("platform %d has no path", i)
		}
		if _, err := parseMode(p.Mode); err != nil {
			return invalid("platform %d: %v", i, err)
		}
		if _, err := parseMetric(p.Metric); err != nil {
			return invalid("platform %d: %v", i, err)
		}
	}
	for i, n := range l.NPCs {
		if _, err := parseTextMode(n.Mode); err != nil {
			return invalid("npc %d: %v", i, err)
		}
	}
	for i, t := range l.Triggers {
		if _, err := parseTriggerType(t.Type); err != nil {
			return invalid("trigger %d: %v", i, err)
		}
		if _, err := parseZoneAction(t.Action); err != nil {
			return invalid("trigger %d: %v", i, err)
		}
		if t.Zone != nil && (*t.Zone < 0 || *t.Zone >= len(l.Zones)) {
			return invalid("trigger %d: zone %d out of range", i, *t.Zone)
		}
	}
	return nil
}

// TileMap builds the collision map
func (l *Level) TileMap() (*tilemap.Map, error) {
	if l.Compressed {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(l.Tiles))
		if err != nil {
			return nil, invalid("tiles: %v", err)
		}
		return tilemap.Load(raw, l.Width, l.Height, true)
	}

	data := make([]byte, 0, l.Width*l.Height)
	for y, row := range l.Rows {
		if len(row) != l.Width {
			return nil, invalid("row %d has %d tiles, want %d", y, len(row), l.Width)
		}
		for x := 0; x < len(row); x++ {
			c := row[x]
			if c < '0' || c > '9' {
				return nil, invalid("row %d col %d: %q is not a tile digit", y, x, c)
			}
			data = append(data, c-'0')
		}
	}
	return tilemap.Load(data, l.Width, l.Height, false)
}

// EncodeTiles converts raw tile bytes to the compressed field form
func EncodeTiles(data []byte) string {
	return base64.StdEncoding.EncodeToString(tilemap.EncodeRLE(data))
}

func (l *Level) PhysicsSlopes() []physics.Slope {
	out := make([]physics.Slope, len(l.Slopes))
	for i, s := range l.Slopes {
		out[i] = physics.Slope{A: core.Point{X: s.AX, Y: s.AY}, B: core.Point{X: s.BX, Y: s.BY}}
	}
	return out
}

func (p Platform) Paths() []core.Point {
	out := make([]core.Point, len(p.Path))
	for i, pt := range p.Path {
		out[i] = pt.Core()
	}
	return out
}

func (p Platform) NavMode() navigation.Mode {
	m, _ := parseMode(p.Mode)
	return m
}

func (p Platform) NavMetric() navigation.Metric {
	m, _ := parseMetric(p.Metric)
	return m
}

func (n NPC) TextMode() entity.TextMode {
	m, _ := parseTextMode(n.Mode)
	return m
}

func (t Trigger) TriggerType() entity.TriggerType {
	v, _ := parseTriggerType(t.Type)
	return v
}

func (t Trigger) ZoneAction() entity.ZoneAction {
	v, _ := parseZoneAction(t.Action)
	return v
}

// ZoneIndex is the linked zone or entity.NoZone
func (t Trigger) ZoneIndex() int {
	if t.Zone == nil {
		return entity.NoZone
	}
	return *t.Zone
}

// Enumerations accept their lowercase names; empty selects the first value

func parseMode(s string) (navigation.Mode, error) {
	switch strings.ToLower(s) {
	case "", "loop":
		return navigation.Loop, nil
	case "pingpong":
		return navigation.PingPong, nil
	case "oneshot":
		return navigation.OneShot, nil
	}
	return 0, fmt.Errorf("unknown path mode %q", s)
}

func parseMetric(s string) (navigation.Metric, error) {
	switch strings.ToLower(s) {
	case "", "manhattan":
		return navigation.Manhattan, nil
	case "euclidean":
		return navigation.Euclidean, nil
	}
	return 0, fmt.Errorf("unknown path metric %q", s)
}

func parseTextMode(s string) (entity.TextMode, error) {
	switch strings.ToLower(s) {
	case "", "loop":
		return entity.TextLoop, nil
	case "stoplast":
		return entity.TextStopLast, nil
	case "advance":
		return entity.TextAdvance, nil
	}
	return 0, fmt.Errorf("unknown text mode %q", s)
}

func parseTriggerType(s string) (entity.TriggerType, error) {
	switch strings.ToLower(s) {
	case "", "once":
		return entity.TriggerOnce, nil
	case "repeat":
		return entity.TriggerRepeat, nil
	case "enterexit":
		return entity.TriggerEnterExit, nil
	}
	return 0, fmt.Errorf("unknown trigger type %q", s)
}

func parseZoneAction(s string) (entity.ZoneAction, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return entity.ZoneNone, nil
	case "enable":
		return entity.ZoneEnable, nil
	case "disable":
		return entity.ZoneDisable, nil
	case "toggle":
		return entity.ZoneToggle, nil
	}
	return 0, fmt.Errorf("unknown zone action %q", s)
}
