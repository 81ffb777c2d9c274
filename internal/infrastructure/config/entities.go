package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player PlayerConfig `json:"player"`
}

type PlayerConfig struct {
	ID     string `json:"id"`
	Hitbox Rect   `json:"hitbox"`
}

// Rect is a hitbox relative to the entity position. The position sits at the
// bottom center of the sprite, so OffsetX is usually -Width/2.
type Rect struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}
