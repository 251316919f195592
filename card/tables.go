package card

// Static classification data, loaded once at init and treated as
// read-only for the life of the process.

// wordNumbers maps spelled-out amounts in ritual text to values.
var wordNumbers = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
}

// Override is a curated classification entry keyed by lowercase card
// name. Curated fields take precedence over text heuristics.
type Override struct {
	Kind      Kind
	Colors    string // WUBRG letters
	Subtypes  string
	Basic     bool
	Archetype LandArchetype
	Tapped    TappedPolicy

	CheckSubtypes  string
	FetchCost      int
	FetchColors    string
	FetchBasicOnly bool
	FetchCount     int
	FetchTapped    bool
	ScalingSubtype string
	MinLands       int
	CreatureMode   bool
	CreatureColors string

	SacrificeOnNextLand bool
	SelfDamage          float64
	UpkeepTappedDamage  float64

	Amount    int
	AnyColor  bool
	ETB       ETBCost
	NoUntap   bool
	Condition Condition
	Legendary bool

	Produces int
	Net      int

	ToBattlefield int
	EntersTapped  bool
	ToHand        int
	SacrificeLand bool
	Filter        SearchFilter
	FilterSubtype string

	BonusDrops int
}

// builtinOverrides covers the common archetype cycles and the odd cards
// whose oracle text defeats the heuristics. Callers may layer their own
// table on top.
var builtinOverrides = map[string]Override{
	// Shock lands.
	"hallowed fountain": {Kind: KindLand, Colors: "WU", Subtypes: "WU", Archetype: ArchetypeShock},
	"watery grave":      {Kind: KindLand, Colors: "UB", Subtypes: "UB", Archetype: ArchetypeShock},
	"blood crypt":       {Kind: KindLand, Colors: "BR", Subtypes: "BR", Archetype: ArchetypeShock},
	"stomping ground":   {Kind: KindLand, Colors: "RG", Subtypes: "RG", Archetype: ArchetypeShock},
	"temple garden":     {Kind: KindLand, Colors: "GW", Subtypes: "GW", Archetype: ArchetypeShock},
	"godless shrine":    {Kind: KindLand, Colors: "WB", Subtypes: "WB", Archetype: ArchetypeShock},
	"steam vents":       {Kind: KindLand, Colors: "UR", Subtypes: "UR", Archetype: ArchetypeShock},
	"overgrown tomb":    {Kind: KindLand, Colors: "BG", Subtypes: "BG", Archetype: ArchetypeShock},
	"sacred foundry":    {Kind: KindLand, Colors: "RW", Subtypes: "RW", Archetype: ArchetypeShock},
	"breeding pool":     {Kind: KindLand, Colors: "GU", Subtypes: "GU", Archetype: ArchetypeShock},

	// Check lands.
	"glacial fortress":   {Kind: KindLand, Colors: "WU", Archetype: ArchetypeCheck},
	"drowned catacomb":   {Kind: KindLand, Colors: "UB", Archetype: ArchetypeCheck},
	"dragonskull summit": {Kind: KindLand, Colors: "BR", Archetype: ArchetypeCheck},
	"rootbound crag":     {Kind: KindLand, Colors: "RG", Archetype: ArchetypeCheck},
	"sunpetal grove":     {Kind: KindLand, Colors: "GW", Archetype: ArchetypeCheck},
	"isolated chapel":    {Kind: KindLand, Colors: "WB", Archetype: ArchetypeCheck},
	"sulfur falls":       {Kind: KindLand, Colors: "UR", Archetype: ArchetypeCheck},
	"woodland cemetery":  {Kind: KindLand, Colors: "BG", Archetype: ArchetypeCheck},
	"clifftop retreat":   {Kind: KindLand, Colors: "RW", Archetype: ArchetypeCheck},
	"hinterland harbor":  {Kind: KindLand, Colors: "GU", Archetype: ArchetypeCheck},

	// Fast lands.
	"seachrome coast":    {Kind: KindLand, Colors: "WU", Archetype: ArchetypeFast},
	"darkslick shores":   {Kind: KindLand, Colors: "UB", Archetype: ArchetypeFast},
	"blackcleave cliffs": {Kind: KindLand, Colors: "BR", Archetype: ArchetypeFast},
	"copperline gorge":   {Kind: KindLand, Colors: "RG", Archetype: ArchetypeFast},
	"razorverge thicket": {Kind: KindLand, Colors: "GW", Archetype: ArchetypeFast},

	// Battle lands.
	"prairie stream":   {Kind: KindLand, Colors: "WU", Subtypes: "WU", Archetype: ArchetypeBattle},
	"sunken hollow":    {Kind: KindLand, Colors: "UB", Subtypes: "UB", Archetype: ArchetypeBattle},
	"smoldering marsh": {Kind: KindLand, Colors: "BR", Subtypes: "BR", Archetype: ArchetypeBattle},
	"cinder glade":     {Kind: KindLand, Colors: "RG", Subtypes: "RG", Archetype: ArchetypeBattle},
	"canopy vista":     {Kind: KindLand, Colors: "GW", Subtypes: "GW", Archetype: ArchetypeBattle},

	// Crowd lands.
	"sea of clouds":       {Kind: KindLand, Colors: "WU", Archetype: ArchetypeCrowd},
	"morphic pool":        {Kind: KindLand, Colors: "UB", Archetype: ArchetypeCrowd},
	"luxury suite":        {Kind: KindLand, Colors: "BR", Archetype: ArchetypeCrowd},
	"spire garden":        {Kind: KindLand, Colors: "RG", Archetype: ArchetypeCrowd},
	"bountiful promenade": {Kind: KindLand, Colors: "GW", Archetype: ArchetypeCrowd},

	// Fetch lands.
	"flooded strand":       {Kind: KindLand, Archetype: ArchetypeFetch, FetchColors: "WU", FetchCount: 1, SelfDamage: 1},
	"polluted delta":       {Kind: KindLand, Archetype: ArchetypeFetch, FetchColors: "UB", FetchCount: 1, SelfDamage: 1},
	"bloodstained mire":    {Kind: KindLand, Archetype: ArchetypeFetch, FetchColors: "BR", FetchCount: 1, SelfDamage: 1},
	"wooded foothills":     {Kind: KindLand, Archetype: ArchetypeFetch, FetchColors: "RG", FetchCount: 1, SelfDamage: 1},
	"windswept heath":      {Kind: KindLand, Archetype: ArchetypeFetch, FetchColors: "GW", FetchCount: 1, SelfDamage: 1},
	"evolving wilds":       {Kind: KindLand, Archetype: ArchetypeFetch, FetchBasicOnly: true, FetchCount: 1, FetchTapped: true},
	"terramorphic expanse": {Kind: KindLand, Archetype: ArchetypeFetch, FetchBasicOnly: true, FetchCount: 1, FetchTapped: true},
	"fabled passage":       {Kind: KindLand, Archetype: ArchetypeFetch, FetchBasicOnly: true, FetchCount: 1, FetchTapped: true},
	"krosan verge":         {Kind: KindLand, Archetype: ArchetypeFetch, Tapped: TappedAlways, FetchCost: 2, FetchColors: "GW", FetchCount: 2, FetchTapped: true},
	"myriad landscape":     {Kind: KindLand, Archetype: ArchetypeFetch, Tapped: TappedAlways, FetchCost: 2, FetchBasicOnly: true, FetchCount: 2, FetchTapped: true},

	// Bounce lands.
	"azorius chancery":   {Kind: KindLand, Colors: "WU", Archetype: ArchetypeBounce, Tapped: TappedAlways},
	"dimir aqueduct":     {Kind: KindLand, Colors: "UB", Archetype: ArchetypeBounce, Tapped: TappedAlways},
	"rakdos carnarium":   {Kind: KindLand, Colors: "BR", Archetype: ArchetypeBounce, Tapped: TappedAlways},
	"gruul turf":         {Kind: KindLand, Colors: "RG", Archetype: ArchetypeBounce, Tapped: TappedAlways},
	"selesnya sanctuary": {Kind: KindLand, Colors: "GW", Archetype: ArchetypeBounce, Tapped: TappedAlways},

	// Pain lands.
	"adarkar wastes":    {Kind: KindLand, Colors: "WU", SelfDamage: 1},
	"underground river": {Kind: KindLand, Colors: "UB", SelfDamage: 1},
	"sulfurous springs": {Kind: KindLand, Colors: "BR", SelfDamage: 1},
	"karplusan forest":  {Kind: KindLand, Colors: "RG", SelfDamage: 1},
	"brushland":         {Kind: KindLand, Colors: "GW", SelfDamage: 1},

	// Oddballs.
	"city of brass":          {Kind: KindLand, Colors: "WUBRG", SelfDamage: 1},
	"mana confluence":        {Kind: KindLand, Colors: "WUBRG", SelfDamage: 1},
	"ancient tomb":           {Kind: KindLand, SelfDamage: 2, Amount: 2},
	"lotus vale":             {Kind: KindLand, Colors: "WUBRG", SacrificeOnNextLand: true, Amount: 3},
	"nykthos, shrine to nyx": {Kind: KindLand, Archetype: ArchetypeScaling, ScalingSubtype: "G"},
	"gaea's cradle":          {Kind: KindLand, Colors: "G", CreatureMode: true, CreatureColors: "G", Legendary: true},
	"archway of innovation":  {Kind: KindLand, Colors: "U", MinLands: 4},

	// Rocks and dorks the text pass gets wrong.
	"sol ring":               {Kind: KindArtifact, Amount: 2},
	"mana vault":             {Kind: KindArtifact, Amount: 3, NoUntap: true, UpkeepTappedDamage: 1},
	"grim monolith":          {Kind: KindArtifact, Amount: 3, NoUntap: true},
	"mox diamond":            {Kind: KindArtifact, Amount: 1, AnyColor: true, ETB: ETBDiscardLand},
	"chrome mox":             {Kind: KindArtifact, Amount: 1, AnyColor: true, ETB: ETBExileNonland},
	"lion's eye diamond":     {Kind: KindArtifact, Amount: 3, AnyColor: true, ETB: ETBDiscardHand},
	"mox opal":               {Kind: KindArtifact, Amount: 1, AnyColor: true, Condition: CondMetalcraft, Legendary: true},
	"mox amber":              {Kind: KindArtifact, Amount: 1, AnyColor: true, Condition: CondLegendary, Legendary: true},
	"talisman of progress":   {Kind: KindArtifact, Amount: 1, Colors: "WU", SelfDamage: 1},
	"talisman of dominance":  {Kind: KindArtifact, Amount: 1, Colors: "UB", SelfDamage: 1},
	"talisman of indulgence": {Kind: KindArtifact, Amount: 1, Colors: "BR", SelfDamage: 1},
	"birds of paradise":      {Kind: KindCreature, Amount: 1, AnyColor: true},
	"llanowar elves":         {Kind: KindCreature, Amount: 1, Colors: "G"},

	// Rituals.
	"dark ritual":    {Kind: KindRitual, Produces: 3, Net: 2, Colors: "B"},
	"cabal ritual":   {Kind: KindRitual, Produces: 3, Net: 1, Colors: "B"},
	"seething song":  {Kind: KindRitual, Produces: 5, Net: 2, Colors: "R"},
	"pyretic ritual": {Kind: KindRitual, Produces: 3, Net: 1, Colors: "R"},

	// Ramp spells.
	"rampant growth": {Kind: KindRamp, ToBattlefield: 1, EntersTapped: true, Filter: FilterBasic},
	"nature's lore":  {Kind: KindRamp, ToBattlefield: 1, Filter: FilterSubtype, FilterSubtype: "G"},
	"three visits":   {Kind: KindRamp, ToBattlefield: 1, Filter: FilterSubtype, FilterSubtype: "G"},
	"farseek":        {Kind: KindRamp, ToBattlefield: 1, EntersTapped: true, Filter: FilterSubtype, FilterSubtype: "WUBR"},
	"cultivate":      {Kind: KindRamp, ToBattlefield: 1, EntersTapped: true, ToHand: 1, Filter: FilterBasic},
	"kodama's reach": {Kind: KindRamp, ToBattlefield: 1, EntersTapped: true, ToHand: 1, Filter: FilterBasic},
	"harrow":         {Kind: KindRamp, ToBattlefield: 2, SacrificeLand: true, Filter: FilterBasic},
	"into the north": {Kind: KindRamp, ToBattlefield: 1, EntersTapped: true, Filter: FilterSnow},

	// Extra land drops.
	"exploration":             {Kind: KindExploration, BonusDrops: 1},
	"burgeoning":              {Kind: KindExploration, BonusDrops: 1},
	"azusa, lost but seeking": {Kind: KindExploration, BonusDrops: 2, Legendary: true},
	"oracle of mul daya":      {Kind: KindExploration, BonusDrops: 1, Legendary: true},
}
