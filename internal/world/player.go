package world

// Team is a side in a match.
type Team struct {
	ID   string
	Name string
}

// ItemStack is a quantity of one material.
type ItemStack struct {
	Material Material
	Amount   int
}

// Player is the snapshot of a participant the engine evaluates against.
type Player struct {
	Name     string
	Team     *Team
	Location Vector

	Crouching   bool
	Sprinting   bool
	Flying      bool
	AllowFlight bool
	OnGround    bool

	Hand      ItemStack
	Inventory []ItemStack
	Armor     []ItemStack
}

// OnTeam reports whether p belongs to the team with the given id.
func (p *Player) OnTeam(id string) bool {
	return p != nil && p.Team != nil && p.Team.ID == id
}

// Walking reports whether the player moves on foot without crouching,
// sprinting or flying.
func (p *Player) Walking() bool {
	return !p.Crouching && !p.Sprinting && !p.Flying
}

// Entity is a non-player entity involved in an event.
type Entity struct {
	Type     EntityType
	Location Vector
}

// Block is a block involved in an event.
type Block struct {
	Pos      BlockPos
	Material Material
}

// EventKind identifies the game event being evaluated.
type EventKind string

const (
	EventBlockPlace    EventKind = "block_place"
	EventBlockBreak    EventKind = "block_break"
	EventBlockDamage   EventKind = "block_damage"
	EventBlockChange   EventKind = "block_change"
	EventEntityDamage  EventKind = "entity_damage"
	EventCreatureSpawn EventKind = "creature_spawn"
	EventPlayerMove    EventKind = "player_move"
	EventInteract      EventKind = "interact"
)

// Event is the raw event context: its kind and, when known, its cause.
type Event struct {
	Kind  EventKind
	Cause Cause
}

// BlockSource answers what material sits at a block position. A match's
// world implements it.
type BlockSource interface {
	MaterialAt(pos BlockPos) Material
}

// BlockMap is an in-memory BlockSource. Missing positions are air.
type BlockMap map[BlockPos]Material

// MaterialAt implements BlockSource.
func (m BlockMap) MaterialAt(pos BlockPos) Material {
	if mat, ok := m[pos]; ok {
		return mat
	}
	return Air
}
