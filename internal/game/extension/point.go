// Package extension implements the top-level registry of named extension
// points and the routing of concrete registrations to the strategy registry,
// event bus, factory manager, or plugin set. The manager is explicitly
// constructed and passed down — there is no process-wide singleton — and its
// lifecycle is the explicit Initialize/Shutdown pair.
package extension

// PointType tags what kind of implementation an extension point accepts.
type PointType string

const (
	PointPlugin        PointType = "plugin"
	PointStrategy      PointType = "strategy"
	PointFactory       PointType = "factory"
	PointEventListener PointType = "event-listener"
	PointService       PointType = "service"
	PointCustom        PointType = "custom"
)

// Point is a named slot external code may plug into. Points are registered
// once at startup and are append-only for the life of the process: there is
// no update or removal operation.
type Point struct {
	ID          string
	Name        string
	Description string
	// Contract documents the expected implementation interface. It is
	// documentation only and never enforced by name.
	Contract string
	Type     PointType
}

// Registration binds an extension-point id to a concrete implementation plus
// optional configuration. Many registrations may target one point.
type Registration struct {
	PointID        string
	Implementation any
	// Config carries registration options. Recognised keys: "domain"
	// (strategy registrations; defaults to the point id).
	Config map[string]any
}

// Core extension point ids, pre-registered at manager construction and never
// removable.
const (
	PointCoreServices     = "core.services"
	PointCombatStrategies = "combat.strategies"
	PointWorldGenerators  = "world.generators"
	PointUIRenderers      = "ui.renderers"
	PointEntityFactories  = "entity.factories"
	PointDataLoaders      = "data.loaders"
	PointEventHandlers    = "event.handlers"
)

// corePoints returns the fixed set of extension points every manager starts
// with.
func corePoints() []*Point {
	return []*Point{
		{ID: PointCoreServices, Name: "Core Services", Description: "Engine-level services shared across systems.", Contract: "any", Type: PointService},
		{ID: PointCombatStrategies, Name: "Combat Strategies", Description: "Action-resolution strategies dispatched by the combat registry.", Contract: "combat.Strategy", Type: PointStrategy},
		{ID: PointWorldGenerators, Name: "World Generators", Description: "Factories producing world content.", Contract: "extension.Factory", Type: PointFactory},
		{ID: PointUIRenderers, Name: "UI Renderers", Description: "Factories producing UI renderers.", Contract: "extension.Factory", Type: PointFactory},
		{ID: PointEntityFactories, Name: "Entity Factories", Description: "Factories producing combat entities.", Contract: "extension.Factory", Type: PointFactory},
		{ID: PointDataLoaders, Name: "Data Loaders", Description: "Factories producing content loaders.", Contract: "extension.Factory", Type: PointFactory},
		{ID: PointEventHandlers, Name: "Event Handlers", Description: "Listeners subscribed to the combat event bus.", Contract: "event.Listener", Type: PointEventListener},
	}
}
