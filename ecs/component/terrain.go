package component

import "github.com/milk9111/bowstep/locomotion"

// Terrain classifies the surface of a static collider.
type Terrain struct {
	Kind locomotion.TerrainKind
}

var TerrainComponent = NewComponent[Terrain]()
