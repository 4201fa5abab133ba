package component

// Name is the prefab name of an entity, used in logs and events.
type Name struct {
	Name string
}

var NameComponent = NewComponent[Name]()

type HazardTag struct{}

var HazardTagComponent = NewComponent[HazardTag]()

type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()

// Appearance is the flat color a character or level piece is drawn with.
type Appearance struct {
	R, G, B, A uint8
}

var AppearanceComponent = NewComponent[Appearance]()
