package world

// Material is a block or item type, named the way map documents spell it
// (lowercase, underscore separated).
type Material string

const (
	Air          Material = "air"
	Stone        Material = "stone"
	Grass        Material = "grass"
	Dirt         Material = "dirt"
	Cobblestone  Material = "cobblestone"
	Planks       Material = "planks"
	Log          Material = "log"
	Leaves       Material = "leaves"
	Sand         Material = "sand"
	Gravel       Material = "gravel"
	Glass        Material = "glass"
	Bedrock      Material = "bedrock"
	Water        Material = "water"
	Lava         Material = "lava"
	Obsidian     Material = "obsidian"
	TNT          Material = "tnt"
	Chest        Material = "chest"
	Workbench    Material = "workbench"
	Furnace      Material = "furnace"
	Ladder       Material = "ladder"
	Fence        Material = "fence"
	IronBlock    Material = "iron_block"
	GoldBlock    Material = "gold_block"
	DiamondBlock Material = "diamond_block"
	EmeraldBlock Material = "emerald_block"
	WhiteWool    Material = "white_wool"
	RedWool      Material = "red_wool"
	BlueWool     Material = "blue_wool"
	LimeWool     Material = "lime_wool"
	YellowWool   Material = "yellow_wool"
	StainedClay  Material = "stained_clay"
	Barrier      Material = "barrier"

	IronSword      Material = "iron_sword"
	StoneSword     Material = "stone_sword"
	Bow            Material = "bow"
	Arrow          Material = "arrow"
	Shears         Material = "shears"
	FlintAndSteel  Material = "flint_and_steel"
	IronHelmet     Material = "iron_helmet"
	IronChestplate Material = "iron_chestplate"
	LeatherHelmet  Material = "leather_helmet"
	LeatherBoots   Material = "leather_boots"
	GoldenApple    Material = "golden_apple"
	EnderPearl     Material = "ender_pearl"
	WaterBucket    Material = "water_bucket"
	LavaBucket     Material = "lava_bucket"
)

var materials = newTable("material", map[string]Material{
	"air": Air, "stone": Stone, "grass": Grass, "dirt": Dirt,
	"cobblestone": Cobblestone, "planks": Planks, "wood": Planks, "log": Log,
	"leaves": Leaves, "sand": Sand, "gravel": Gravel, "glass": Glass,
	"bedrock": Bedrock, "water": Water, "lava": Lava, "obsidian": Obsidian,
	"tnt": TNT, "chest": Chest, "workbench": Workbench, "crafting_table": Workbench,
	"furnace": Furnace, "ladder": Ladder, "fence": Fence,
	"iron_block": IronBlock, "gold_block": GoldBlock,
	"diamond_block": DiamondBlock, "emerald_block": EmeraldBlock,
	"white_wool": WhiteWool, "wool": WhiteWool, "red_wool": RedWool,
	"blue_wool": BlueWool, "lime_wool": LimeWool, "yellow_wool": YellowWool,
	"stained_clay": StainedClay, "barrier": Barrier,
	"iron_sword": IronSword, "stone_sword": StoneSword, "bow": Bow, "arrow": Arrow,
	"shears": Shears, "flint_and_steel": FlintAndSteel,
	"iron_helmet": IronHelmet, "iron_chestplate": IronChestplate,
	"leather_helmet": LeatherHelmet, "leather_boots": LeatherBoots,
	"golden_apple": GoldenApple, "ender_pearl": EnderPearl,
	"water_bucket": WaterBucket, "lava_bucket": LavaBucket,
})

// ParseMaterial resolves a material name. Unknown names are an error.
func ParseMaterial(s string) (Material, error) {
	return materials.parse(s)
}

// MaterialNames returns every accepted material spelling, sorted.
func MaterialNames() []string {
	return materials.names
}

// IsAir reports whether m is empty space.
func (m Material) IsAir() bool {
	return m == Air || m == ""
}

// IsLiquid reports whether m is water or lava.
func (m Material) IsLiquid() bool {
	return m == Water || m == Lava
}
