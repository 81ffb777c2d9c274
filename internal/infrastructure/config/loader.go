package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Movement   *MovementConfig
	Entities   *EntitiesConfig
	Attributes *Attributes
}

// Loader loads game configuration from JSON, YAML and TMX files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadMovement loads movement.json. Unset mover fields keep their defaults.
func (l *Loader) LoadMovement() (*MovementConfig, error) {
	data, err := fs.ReadFile(l.fsys, "movement.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read movement.json: %w", err)
	}

	cfg := MovementConfig{Mover: DefaultMoverSettings()}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse movement.json: %w", err)
	}

	return &cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "entities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read entities.json: %w", err)
	}

	var cfg EntitiesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse entities.json: %w", err)
	}

	return &cfg, nil
}

// LoadAttributes loads and builds an attributes YAML file.
func (l *Loader) LoadAttributes(name string) (*Attributes, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var spec AttributesSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	attrs, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}
	return attrs, nil
}

// LoadScript reads a script source file.
func (l *Loader) LoadScript(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", name, err)
	}
	return data, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// Tiled map conventions.
const (
	tmxCollisionLayer = "collision"
	tmxSpawnGroup     = "PlayerSpawn"
	tmxSlopeUpRight   = "45_up_right"
	tmxSlopeUpLeft    = "45_up_left"
	tmxStepKind       = "step"
)

// Characters used for stages converted from Tiled maps.
var tmxTileMapping = map[string]TileMappingConfig{
	"#":  {Type: "wall", Solid: true},
	"s":  {Type: "step", Solid: true},
	"/":  {Type: "slopeUpRight", Solid: true},
	"\\": {Type: "slopeUpLeft", Solid: true},
}

// LoadTMXStage loads stages/<name>.tmx and converts its collision layer to a
// StageConfig. Tileset tiles may carry a "slope" property (45_up_right or
// 45_up_left) or a "kind" property of "step"; any other tile is a wall.
func (l *Loader) LoadTMXStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".tmx"
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", name, err)
	}

	var layer *tiled.Layer
	for _, candidate := range levelMap.Layers {
		if candidate.Name == tmxCollisionLayer {
			layer = candidate
			break
		}
	}
	if layer == nil {
		return nil, fmt.Errorf("failed to load stage %s: no %q layer", name, tmxCollisionLayer)
	}

	rows := make([]string, levelMap.Height)
	for y := 0; y < levelMap.Height; y++ {
		var row strings.Builder
		for x := 0; x < levelMap.Width; x++ {
			row.WriteString(tmxTileChar(layer.Tiles[y*levelMap.Width+x]))
		}
		rows[y] = row.String()
	}

	cfg := &StageConfig{
		ID:   name,
		Name: name,
		Size: StageSizeConfig{
			Width:    levelMap.Width * levelMap.TileWidth,
			Height:   levelMap.Height * levelMap.TileHeight,
			TileSize: levelMap.TileWidth,
		},
		Layers:      LayersConfig{Collision: rows},
		TileMapping: tmxTileMapping,
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != tmxSpawnGroup || len(og.Objects) == 0 {
			continue
		}
		cfg.PlayerSpawn = PositionConfig{X: int(og.Objects[0].X), Y: int(og.Objects[0].Y)}
		break
	}

	return cfg, nil
}

func tmxTileChar(tile *tiled.LayerTile) string {
	if tile == nil || tile.IsNil() {
		return "."
	}
	tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
	if err != nil {
		return "#"
	}
	switch tilesetTile.Properties.GetString("slope") {
	case tmxSlopeUpRight:
		return "/"
	case tmxSlopeUpLeft:
		return "\\"
	}
	if tilesetTile.Properties.GetString("kind") == tmxStepKind {
		return "s"
	}
	return "#"
}

// LoadAll loads all base configurations (movement, entities, attributes)
func (l *Loader) LoadAll() (*GameConfig, error) {
	movement, err := l.LoadMovement()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	attrs, err := l.LoadAttributes(AttributesFile)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Movement:   movement,
		Entities:   entities,
		Attributes: attrs,
	}, nil
}

// AttributesFile is the default player attributes asset.
const AttributesFile = "attributes.yaml"
