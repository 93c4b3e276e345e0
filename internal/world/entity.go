package world

// EntityType identifies a kind of entity.
type EntityType string

const (
	EntityPlayer       EntityType = "player"
	EntityZombie       EntityType = "zombie"
	EntitySkeleton     EntityType = "skeleton"
	EntityCreeper      EntityType = "creeper"
	EntitySpider       EntityType = "spider"
	EntityEnderman     EntityType = "enderman"
	EntitySlime        EntityType = "slime"
	EntityWitch        EntityType = "witch"
	EntityCow          EntityType = "cow"
	EntityPig          EntityType = "pig"
	EntitySheep        EntityType = "sheep"
	EntityChicken      EntityType = "chicken"
	EntityVillager     EntityType = "villager"
	EntityWolf         EntityType = "wolf"
	EntityIronGolem    EntityType = "iron_golem"
	EntityItem         EntityType = "item"
	EntityArrow        EntityType = "arrow"
	EntityPrimedTNT    EntityType = "primed_tnt"
	EntityFallingBlock EntityType = "falling_block"
	EntityMinecart     EntityType = "minecart"
	EntityBoat         EntityType = "boat"
)

// Category groups entity types for the mob, monster and creature filters.
type Category int

const (
	CategoryOther Category = iota
	CategoryMonster
	CategoryCreature
	CategoryPlayer
)

type entityInfo struct {
	category Category
}

var entityInfos = map[EntityType]entityInfo{
	EntityPlayer:       {CategoryPlayer},
	EntityZombie:       {CategoryMonster},
	EntitySkeleton:     {CategoryMonster},
	EntityCreeper:      {CategoryMonster},
	EntitySpider:       {CategoryMonster},
	EntityEnderman:     {CategoryMonster},
	EntitySlime:        {CategoryMonster},
	EntityWitch:        {CategoryMonster},
	EntityCow:          {CategoryCreature},
	EntityPig:          {CategoryCreature},
	EntitySheep:        {CategoryCreature},
	EntityChicken:      {CategoryCreature},
	EntityVillager:     {CategoryCreature},
	EntityWolf:         {CategoryCreature},
	EntityIronGolem:    {CategoryCreature},
	EntityItem:         {CategoryOther},
	EntityArrow:        {CategoryOther},
	EntityPrimedTNT:    {CategoryOther},
	EntityFallingBlock: {CategoryOther},
	EntityMinecart:     {CategoryOther},
	EntityBoat:         {CategoryOther},
}

var entityTypes = func() *table[EntityType] {
	m := make(map[string]EntityType, len(entityInfos))
	for t := range entityInfos {
		m[string(t)] = t
	}
	m["tnt"] = EntityPrimedTNT
	m["golem"] = EntityIronGolem
	return newTable("entity type", m)
}()

// ParseEntityType resolves an entity type name.
func ParseEntityType(s string) (EntityType, error) {
	return entityTypes.parse(s)
}

// Category returns the entity's category. Unknown types are CategoryOther.
func (t EntityType) Category() Category {
	return entityInfos[t].category
}

// IsLiving reports whether the type is a mob or a player.
func (t EntityType) IsLiving() bool {
	return t.Category() != CategoryOther
}

// IsMob reports whether the type is a monster or a creature.
func (t EntityType) IsMob() bool {
	c := t.Category()
	return c == CategoryMonster || c == CategoryCreature
}

// SpawnReason is why a creature spawned.
type SpawnReason string

const (
	SpawnNatural    SpawnReason = "natural"
	SpawnSpawner    SpawnReason = "spawner"
	SpawnEgg        SpawnReason = "egg"
	SpawnSpawnerEgg SpawnReason = "spawner_egg"
	SpawnBreeding   SpawnReason = "breeding"
	SpawnChunkGen   SpawnReason = "chunk_gen"
	SpawnJockey     SpawnReason = "jockey"
	SpawnBuildGolem SpawnReason = "build_irongolem"
	SpawnCustom     SpawnReason = "custom"
	SpawnDefault    SpawnReason = "default"
)

var spawnReasons = newTable("spawn reason", map[string]SpawnReason{
	"natural": SpawnNatural, "spawner": SpawnSpawner, "egg": SpawnEgg,
	"spawner_egg": SpawnSpawnerEgg, "breeding": SpawnBreeding,
	"chunk_gen": SpawnChunkGen, "jockey": SpawnJockey,
	"build_irongolem": SpawnBuildGolem, "custom": SpawnCustom,
	"default": SpawnDefault,
})

// ParseSpawnReason resolves a spawn reason name.
func ParseSpawnReason(s string) (SpawnReason, error) {
	return spawnReasons.parse(s)
}

// Cause is what caused a block change or damage event.
type Cause string

const (
	CauseWorld      Cause = "world"
	CauseLiving     Cause = "living"
	CauseMob        Cause = "mob"
	CausePlayer     Cause = "player"
	CausePunch      Cause = "punch"
	CauseTrample    Cause = "trample"
	CauseMine       Cause = "mine"
	CauseExplosion  Cause = "explosion"
	CauseTNT        Cause = "tnt"
	CauseCreeper    Cause = "creeper"
	CauseFire       Cause = "fire"
	CauseLava       Cause = "lava"
	CauseFall       Cause = "fall"
	CauseVoid       Cause = "void"
	CauseProjectile Cause = "projectile"
	CauseMelee      Cause = "melee"
)

var causes = newTable("cause", map[string]Cause{
	"world": CauseWorld, "living": CauseLiving, "mob": CauseMob,
	"player": CausePlayer, "punch": CausePunch, "trample": CauseTrample,
	"mine": CauseMine, "explosion": CauseExplosion, "tnt": CauseTNT,
	"creeper": CauseCreeper, "fire": CauseFire, "lava": CauseLava,
	"fall": CauseFall, "void": CauseVoid, "projectile": CauseProjectile,
	"melee": CauseMelee,
})

// ParseCause resolves a cause name.
func ParseCause(s string) (Cause, error) {
	return causes.parse(s)
}

// Implies reports whether an event with cause c also counts as cause o.
// A TNT or creeper explosion is an explosion, a player is living, and
// punching or mining is done by a player.
func (c Cause) Implies(o Cause) bool {
	if c == o {
		return true
	}
	switch o {
	case CauseExplosion:
		return c == CauseTNT || c == CauseCreeper
	case CauseLiving:
		return c == CauseMob || c == CausePlayer || c == CausePunch || c == CauseMine || c == CauseTrample || c == CauseMelee
	case CausePlayer:
		return c == CausePunch || c == CauseMine
	case CauseMob:
		return c == CauseCreeper
	}
	return false
}
