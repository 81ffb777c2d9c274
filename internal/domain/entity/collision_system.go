package entity

import "fmt"

// CollisionSystem selects how a body resolves a blocked move.
type CollisionSystem int

const (
	CollisionStop CollisionSystem = iota
	CollisionSlide
	CollisionProject
	CollisionCustom
)

var collisionSystemNames = map[CollisionSystem]string{
	CollisionStop:    "stop",
	CollisionSlide:   "slide",
	CollisionProject: "project",
	CollisionCustom:  "custom",
}

func (c CollisionSystem) String() string {
	if name, ok := collisionSystemNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CollisionSystem(%d)", int(c))
}

// ParseCollisionSystem maps a config name to a CollisionSystem.
func ParseCollisionSystem(name string) (CollisionSystem, error) {
	for c, n := range collisionSystemNames {
		if n == name {
			return c, nil
		}
	}
	return CollisionStop, fmt.Errorf("unknown collision system %q", name)
}
