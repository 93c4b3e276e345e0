package filter

import (
	"fmt"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// Kind tags the payload carried by an Object.
type Kind int

const (
	KindPlayer Kind = iota + 1
	KindTeam
	KindBlock
	KindMaterial
	KindItem
	KindEntity
	KindVector
	KindEvent
	KindSpawnReason
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindTeam:
		return "team"
	case KindBlock:
		return "block"
	case KindMaterial:
		return "material"
	case KindItem:
		return "item"
	case KindEntity:
		return "entity"
	case KindVector:
		return "vector"
	case KindEvent:
		return "event"
	case KindSpawnReason:
		return "spawn_reason"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Object is one piece of event context handed to Evaluate. Only the field
// matching Kind is meaningful. Callers pass every object that might be
// relevant to any filter in the tree and each leaf picks what it needs.
type Object struct {
	Kind Kind

	Player      *world.Player
	Team        *world.Team
	Block       world.Block
	Material    world.Material
	Item        world.ItemStack
	Entity      world.Entity
	Vector      world.Vector
	Event       world.Event
	SpawnReason world.SpawnReason
}

func PlayerObj(p *world.Player) Object { return Object{Kind: KindPlayer, Player: p} }
func TeamObj(t *world.Team) Object     { return Object{Kind: KindTeam, Team: t} }
func BlockObj(b world.Block) Object    { return Object{Kind: KindBlock, Block: b} }
func ItemObj(i world.ItemStack) Object { return Object{Kind: KindItem, Item: i} }
func EntityObj(e world.Entity) Object  { return Object{Kind: KindEntity, Entity: e} }
func VectorObj(v world.Vector) Object  { return Object{Kind: KindVector, Vector: v} }
func EventObj(e world.Event) Object    { return Object{Kind: KindEvent, Event: e} }

func MaterialObj(m world.Material) Object {
	return Object{Kind: KindMaterial, Material: m}
}

func SpawnReasonObj(r world.SpawnReason) Object {
	return Object{Kind: KindSpawnReason, SpawnReason: r}
}

// first returns the first object whose kind is one of kinds.
func first(objs []Object, kinds ...Kind) (Object, bool) {
	for _, o := range objs {
		for _, k := range kinds {
			if o.Kind == k {
				return o, true
			}
		}
	}
	return Object{}, false
}

// Point extracts a location from the first vector, block, entity or player
// object. It is how spatial filters find the point to test.
func Point(objs []Object) (world.Vector, bool) {
	o, ok := first(objs, KindVector, KindBlock, KindEntity, KindPlayer)
	if !ok {
		return world.Vector{}, false
	}
	switch o.Kind {
	case KindVector:
		return o.Vector, true
	case KindBlock:
		return o.Block.Pos.Center(), true
	case KindEntity:
		return o.Entity.Location, true
	default:
		if o.Player == nil {
			return world.Vector{}, false
		}
		return o.Player.Location, true
	}
}

// materialOf extracts the material of the first block, material or item object.
func materialOf(objs []Object) (world.Material, bool) {
	o, ok := first(objs, KindBlock, KindMaterial, KindItem)
	if !ok {
		return "", false
	}
	switch o.Kind {
	case KindBlock:
		return o.Block.Material, true
	case KindMaterial:
		return o.Material, true
	default:
		return o.Item.Material, true
	}
}

// player returns the first non-nil player object.
func player(objs []Object) (*world.Player, bool) {
	for _, o := range objs {
		if o.Kind == KindPlayer && o.Player != nil {
			return o.Player, true
		}
	}
	return nil, false
}
