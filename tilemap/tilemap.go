// Package tilemap holds the per-level collision grid and answers tile
// queries in tile and pixel space.
package tilemap

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/parameter"
)

var (
	ErrMalformedRLE = errors.New("malformed rle tile data")
	ErrDimensions   = errors.New("invalid tile map dimensions")
)

// TileType is the collision code stored per tile
type TileType uint8

const (
	Empty TileType = iota
	Solid
	OneWayPlatform
	Slope
	Ladder
)

func (t TileType) String() string {
	switch t {
	case Empty:
		return "empty"
	case Solid:
		return "solid"
	case OneWayPlatform:
		return "oneway"
	case Slope:
		return "slope"
	case Ladder:
		return "ladder"
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// Map is immutable after Load
type Map struct {
	width, height int
	tiles         []byte
}

// Load builds a map from raw row-major bytes or their RLE encoding
func Load(data []byte, width, height int, compressed bool) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	n := width * height

	var tiles []byte
	if compressed {
		decoded, err := DecodeRLE(data, n)
		if err != nil {
			return nil, err
		}
		tiles = decoded
	} else {
		if len(data) != n {
			return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrDimensions, len(data), width, height)
		}
		tiles = make([]byte, n)
		copy(tiles, data)
	}
	return &Map{width: width, height: height, tiles: tiles}, nil
}

// Width in tiles
func (m *Map) Width() int { return m.width }

// Height in tiles
func (m *Map) Height() int { return m.height }

// PixelWidth is the map width in pixels
func (m *Map) PixelWidth() int { return m.width << parameter.TileShift }

// PixelHeight is the map height in pixels
func (m *Map) PixelHeight() int { return m.height << parameter.TileShift }

// Bytes returns a copy of the row-major tile codes
func (m *Map) Bytes() []byte {
	out := make([]byte, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// Tile returns the tile at tile coordinates; outside the grid is Empty
func (m *Map) Tile(tx, ty int) TileType {
	if tx < 0 || ty < 0 || tx >= m.width || ty >= m.height {
		return Empty
	}
	return TileType(m.tiles[ty*m.width+tx])
}

// TileAt returns the tile containing the pixel
func (m *Map) TileAt(px, py int) TileType {
	t := PosToTile(core.Point{X: px, Y: py})
	return m.Tile(t.X, t.Y)
}

// RoomBounds is the full map box in pixels
func (m *Map) RoomBounds() core.AABB {
	return core.Box(0, 0, m.PixelWidth(), m.PixelHeight())
}

// CollidesWith reports whether any Solid tile overlaps box
func (m *Map) CollidesWith(box core.AABB) bool {
	min := PosToTile(box.Min)
	max := PosToTile(core.Point{X: box.Max.X - 1, Y: box.Max.Y - 1})
	for ty := min.Y; ty <= max.Y; ty++ {
		for tx := min.X; tx <= max.X; tx++ {
			if m.Tile(tx, ty) == Solid {
				return true
			}
		}
	}
	return false
}

// PosToTile converts pixels to tile coordinates, flooring negatives
func PosToTile(p core.Point) core.Point {
	return core.Point{X: p.X >> parameter.TileShift, Y: p.Y >> parameter.TileShift}
}

// TileToPos returns the top-left pixel of a tile
func TileToPos(t core.Point) core.Point {
	return core.Point{X: t.X << parameter.TileShift, Y: t.Y << parameter.TileShift}
}

// TileBounds returns the pixel box of a tile
func TileBounds(tx, ty int) core.AABB {
	return core.Box(tx<<parameter.TileShift, ty<<parameter.TileShift, parameter.TileSize, parameter.TileSize)
}

func TileLeftEdge(tx int) int   { return tx << parameter.TileShift }
func TileRightEdge(tx int) int  { return (tx << parameter.TileShift) + parameter.TileSize }
func TileTopEdge(ty int) int    { return ty << parameter.TileShift }
func TileBottomEdge(ty int) int { return (ty << parameter.TileShift) + parameter.TileSize }
