package system

import (
	"fmt"

	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
)

var tileTypes = map[string]entity.TileType{
	"wall":         entity.TileWall,
	"step":         entity.TileStep,
	"slopeUpRight": entity.TileSlopeUpRight,
	"slopeUpLeft":  entity.TileSlopeUpLeft,
}

// LoadStage converts a StageConfig into a Stage entity.
// Characters without a mapping are empty tiles.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("stage %q: tile size must be positive", cfg.ID)
	}
	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		x := 0
		for _, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if ok {
				tileType, known := tileTypes[mapping.Type]
				if !known {
					return nil, fmt.Errorf("stage %q: unknown tile type %q for %q", cfg.ID, mapping.Type, string(char))
				}
				tiles[y][x] = entity.Tile{Type: tileType, Solid: mapping.Solid}
			}
			x++
		}
	}

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}, nil
}
