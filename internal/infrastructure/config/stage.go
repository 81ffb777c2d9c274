package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	Background  BackgroundConfig             `json:"background"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
}

type StageSizeConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

type BackgroundConfig struct {
	Color string `json:"color"`
}

type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

// TileMappingConfig maps a stage character to a tile. Type is one of wall,
// step, slopeUpRight or slopeUpLeft.
type TileMappingConfig struct {
	Type  string `json:"type"`
	Solid bool   `json:"solid"`
}
