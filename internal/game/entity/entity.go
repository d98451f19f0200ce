// Package entity implements the positioned, renderable objects of the scene:
// the player submarine, the first-person viewpoint marker and static enemies.
package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/transform"
)

// Type represents the role of an entity in the scene.
type Type uint8

const (
	TypeEnemy Type = iota
	TypeSubmarine
	TypeMarker
)

// String returns a human-readable type name.
func (t Type) String() string {
	switch t {
	case TypeEnemy:
		return "enemy"
	case TypeSubmarine:
		return "submarine"
	case TypeMarker:
		return "marker"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Entity is a transform bound to a mesh it owns.
type Entity struct {
	Name      string
	Type      Type
	Transform transform.Transform

	mesh Mesh
}

// NewEntity creates an entity owning mesh.
func NewEntity(name string, entityType Type, mesh Mesh, t transform.Transform) *Entity {
	return &Entity{
		Name:      name,
		Type:      entityType,
		Transform: t,
		mesh:      mesh,
	}
}

// Position returns the entity position.
func (e *Entity) Position() mgl32.Vec3 {
	return e.Transform.Position
}

// ModelMatrix returns the composed model matrix.
func (e *Entity) ModelMatrix() mgl32.Mat4 {
	return e.Transform.Matrix()
}

// Destroy releases the mesh. Further calls are no-ops.
func (e *Entity) Destroy() {
	if e.mesh == nil {
		return
	}
	e.mesh.Release()
	e.mesh = nil
}

// Handle is a stable index into a Manager.
type Handle int

// Manager owns every entity in the scene. Other components hold handles and
// resolve them through the manager, which outlives them all.
type Manager struct {
	entities []*Entity
}

// NewManager creates an empty entity manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add stores an entity and returns its handle.
func (m *Manager) Add(e *Entity) Handle {
	m.entities = append(m.entities, e)
	return Handle(len(m.entities) - 1)
}

// Get resolves a handle. An unknown handle is a programming error.
func (m *Manager) Get(h Handle) *Entity {
	if h < 0 || int(h) >= len(m.entities) {
		panic(fmt.Sprintf("entity: handle %d out of range (%d entities)", h, len(m.entities)))
	}
	return m.entities[h]
}

// All returns every entity in insertion order.
func (m *Manager) All() []*Entity {
	return m.entities
}

// GetByType returns all entities of a specific type.
func (m *Manager) GetByType(entityType Type) []*Entity {
	var result []*Entity
	for _, e := range m.entities {
		if e.Type == entityType {
			result = append(result, e)
		}
	}
	return result
}

// Count returns the number of entities.
func (m *Manager) Count() int {
	return len(m.entities)
}

// Clear destroys every entity and empties the manager.
func (m *Manager) Clear() {
	for _, e := range m.entities {
		e.Destroy()
	}
	m.entities = nil
}
