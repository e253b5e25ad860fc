// internal/defs/towers.go
package defs

import "image/color"

// TowerDefs is the library of all tower definitions, mapped by their ID.
// Заполняется встроенным каталогом и может быть перекрыта JSON-файлом
// через LoadTowerDefinitions.
var TowerDefs map[string]TowerDefinition

// defaultTowerDefs — встроенный каталог башен. Греческая буква башни —
// её глиф на поле. Цепочки слияний: альфа→ню→хи, сигма→тау→ипсилон,
// фи копит кольца и уходит в престиж.
var defaultTowerDefs = []TowerDefinition{
	{
		ID: "TOWER_ALPHA", Name: "Alpha", Glyph: "α", Behavior: BehaviorBolt,
		Tier: 1, Damage: 12, FireRate: 1.2, Range: 140, BaseCost: 25,
		NextTierID: "TOWER_NU",
		Params:     &BehaviorParams{ProjectileSpeed: 420},
		Visuals:    Visuals{Color: color.RGBA{235, 235, 235, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_NU", Name: "Nu", Glyph: "ν", Behavior: BehaviorBolt,
		Tier: 2, Damage: 20, FireRate: 1.4, Range: 160, BaseCost: 60,
		NextTierID: "TOWER_CHI", PreviousTierID: "TOWER_ALPHA",
		Params:     &BehaviorParams{ProjectileSpeed: 460, BoltCount: 2},
		Visuals:    Visuals{Color: color.RGBA{200, 220, 255, 255}, RadiusFactor: 0.85, StrokeWidth: 2},
	},
	{
		ID: "TOWER_CHI", Name: "Chi", Glyph: "χ", Behavior: BehaviorBolt,
		Tier: 3, Damage: 85, FireRate: 0.5, Range: 320, BaseCost: 150,
		PreviousTierID: "TOWER_NU", DefaultPriority: "strongest",
		Params:         &BehaviorParams{ProjectileSpeed: 640},
		Visuals:        Visuals{Color: color.RGBA{160, 190, 255, 255}, RadiusFactor: 0.9, StrokeWidth: 3},
	},
	{
		ID: "TOWER_BETA", Name: "Beta", Glyph: "β", Behavior: BehaviorTriangle,
		Tier: 1, Damage: 18, FireRate: 0.8, Range: 170, BaseCost: 45,
		Params:  &BehaviorParams{ProjectileSpeed: 300, AttachTicks: 3, AttachInterval: 0.5, TriangleSize: 90},
		Visuals: Visuals{Color: color.RGBA{120, 210, 160, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_GAMMA", Name: "Gamma", Glyph: "γ", Behavior: BehaviorStar,
		Tier: 1, Damage: 14, FireRate: 0.9, Range: 180, BaseCost: 50,
		Params:  &BehaviorParams{ProjectileSpeed: 260, SweepAmplitude: 40, SweepFrequency: 6},
		Visuals: Visuals{Color: color.RGBA{250, 210, 90, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_DELTA", Name: "Delta", Glyph: "δ", Behavior: BehaviorChain,
		Tier: 1, Damage: 16, FireRate: 1.0, Range: 150, BaseCost: 55,
		Params:  &BehaviorParams{ChainBudget: 4, ChainRadius: 110},
		Visuals: Visuals{Color: color.RGBA{150, 200, 255, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_EPSILON", Name: "Epsilon", Glyph: "ε", Behavior: BehaviorNeedle,
		Tier: 1, Damage: 6, FireRate: 1.1, Range: 190, BaseCost: 60,
		Params:  &BehaviorParams{ProjectileSpeed: 330, TurnRate: 4.5, HitBudget: 4, RetickInterval: 0.6},
		Visuals: Visuals{Color: color.RGBA{220, 160, 240, 255}, RadiusFactor: 0.75, StrokeWidth: 2},
	},
	{
		ID: "TOWER_ZETA", Name: "Zeta", Glyph: "ζ", Behavior: BehaviorPendulum,
		Tier: 1, Damage: 22, Range: 115, BaseCost: 70,
		Params:  &BehaviorParams{ArmLength: 62, ArmLength2: 50, PendulumDrive: 1.6},
		Visuals: Visuals{Color: color.RGBA{240, 140, 120, 255}, RadiusFactor: 0.85, StrokeWidth: 2},
	},
	{
		ID: "TOWER_ETA", Name: "Eta", Glyph: "η", Behavior: BehaviorOrbital,
		Tier: 1, Damage: 30, FireRate: 0.7, Range: 200, BaseCost: 75,
		Params: &BehaviorParams{
			OrbitRadius: 46, OrbitSpeeds: []float64{1.9, 2.6, 3.4}, AlignTolerance: 0.12,
		},
		Visuals: Visuals{Color: color.RGBA{130, 230, 230, 255}, RadiusFactor: 0.85, StrokeWidth: 2},
	},
	{
		ID: "TOWER_THETA", Name: "Theta", Glyph: "θ", Behavior: BehaviorFrost,
		Tier: 1, Damage: 8, FireRate: 1.0, Range: 150, BaseCost: 40,
		Params:  &BehaviorParams{ProjectileSpeed: 380, SlowMultiplier: 0.5, SlowDuration: 2.0},
		Visuals: Visuals{Color: color.RGBA{140, 210, 255, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_IOTA", Name: "Iota", Glyph: "ι", Behavior: BehaviorNova,
		Tier: 1, Damage: 18, FireRate: 0.5, Range: 130, BaseCost: 65,
		Params:  &BehaviorParams{PulseGrowRate: 240, PulseThickness: 16},
		Visuals: Visuals{Color: color.RGBA{255, 190, 140, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_KAPPA", Name: "Kappa", Glyph: "κ", Behavior: BehaviorAmplify,
		Tier: 1, Damage: 5, FireRate: 0.8, Range: 170, BaseCost: 55,
		Params:  &BehaviorParams{ProjectileSpeed: 380, AmpStrength: 0.3, AmpDuration: 3.0},
		Visuals: Visuals{Color: color.RGBA{255, 120, 180, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_LAMBDA", Name: "Lambda", Glyph: "λ", Behavior: BehaviorBounce,
		Tier: 1, Damage: 15, FireRate: 1.0, Range: 160, BaseCost: 55,
		Params:  &BehaviorParams{ProjectileSpeed: 400, BounceCount: 3, BounceDecay: 0.25, BounceRadius: 130},
		Visuals: Visuals{Color: color.RGBA{200, 255, 140, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_MU", Name: "Mu", Glyph: "μ", Behavior: BehaviorMine,
		Tier: 1, Damage: 40, FireRate: 0.25, Range: 140, BaseCost: 60,
		Params:  &BehaviorParams{MaxMines: 4, MineRadius: 50},
		Visuals: Visuals{Color: color.RGBA{190, 170, 140, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_XI", Name: "Xi", Glyph: "ξ", Behavior: BehaviorThrall,
		Tier: 1, Damage: 14, FireRate: 1.0, Range: 150, BaseCost: 65,
		Params:  &BehaviorParams{ProjectileSpeed: 400, ThrallChance: 0.2, ThrallDuration: 8},
		Visuals: Visuals{Color: color.RGBA{150, 240, 190, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_OMICRON", Name: "Omicron", Glyph: "ο", Behavior: BehaviorAura,
		Tier: 1, BaseCost: 80,
		Params:  &BehaviorParams{AuraRadius: 130, DamageMultiplier: 1.25, RateMultiplier: 1.15},
		Visuals: Visuals{Color: color.RGBA{255, 255, 180, 255}, RadiusFactor: 0.7, StrokeWidth: 3},
	},
	{
		ID: "TOWER_PI", Name: "Pi", Glyph: "π", Behavior: BehaviorSplit,
		Tier: 1, Damage: 16, FireRate: 0.9, Range: 160, BaseCost: 55,
		Params:  &BehaviorParams{ProjectileSpeed: 400, SplitCount: 3, SplitRadius: 120, SplitDamageFactor: 0.5},
		Visuals: Visuals{Color: color.RGBA{255, 170, 110, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_RHO", Name: "Rho", Glyph: "ρ", Behavior: BehaviorRail,
		Tier: 1, Damage: 28, FireRate: 0.6, Range: 260, BaseCost: 85,
		Visuals: Visuals{Color: color.RGBA{230, 230, 130, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_SIGMA", Name: "Sigma", Glyph: "σ", Behavior: BehaviorSupply,
		Tier: 1, Damage: 6, FireRate: 0.8, Range: 130, BaseCost: 30,
		NextTierID: "TOWER_TAU",
		Params:     &BehaviorParams{ProjectileSpeed: 400, PayloadFactor: 1.0},
		Visuals:    Visuals{Color: color.RGBA{180, 180, 200, 255}, RadiusFactor: 0.75, StrokeWidth: 2},
	},
	{
		ID: "TOWER_TAU", Name: "Tau", Glyph: "τ", Behavior: BehaviorSupply,
		Tier: 2, Damage: 10, FireRate: 0.9, Range: 145, BaseCost: 75,
		NextTierID: "TOWER_UPSILON", PreviousTierID: "TOWER_SIGMA",
		Params:     &BehaviorParams{ProjectileSpeed: 420, PayloadFactor: 2.2},
		Visuals:    Visuals{Color: color.RGBA{160, 160, 220, 255}, RadiusFactor: 0.8, StrokeWidth: 2},
	},
	{
		ID: "TOWER_UPSILON", Name: "Upsilon", Glyph: "υ", Behavior: BehaviorSupply,
		Tier: 3, Damage: 16, FireRate: 1.0, Range: 160, BaseCost: 180,
		PreviousTierID: "TOWER_TAU",
		Params:         &BehaviorParams{ProjectileSpeed: 440, PayloadFactor: 4.5},
		Visuals:        Visuals{Color: color.RGBA{140, 140, 240, 255}, RadiusFactor: 0.85, StrokeWidth: 3},
	},
	{
		ID: "TOWER_PHI", Name: "Phi", Glyph: "φ", Behavior: BehaviorRings,
		Tier: 1, Damage: 12, Range: 150, BaseCost: 90,
		NextTierID: "TOWER_PHI_PRIME",
		Params: &BehaviorParams{
			MaxRings: 3, OrbsPerRing: 4, RingSpacing: 34, RingSpinSpeed: 2.2,
		},
		Visuals: Visuals{Color: color.RGBA{220, 190, 255, 255}, RadiusFactor: 0.85, StrokeWidth: 2},
	},
	{
		ID: "TOWER_PHI_PRIME", Name: "Phi Prime", Glyph: "φ′", Behavior: BehaviorRings,
		Tier: 4, Damage: 26, Range: 170, BaseCost: 0, Prestige: true,
		PreviousTierID: "TOWER_PHI",
		Params: &BehaviorParams{
			MaxRings: 4, OrbsPerRing: 6, RingSpacing: 30, RingSpinSpeed: 3.0,
		},
		Visuals: Visuals{Color: color.RGBA{245, 225, 255, 255}, RadiusFactor: 0.95, StrokeWidth: 3},
	},
	{
		ID: "TOWER_PSI", Name: "Psi", Glyph: "ψ", Behavior: BehaviorBeam,
		Tier: 1, Damage: 9, Range: 170, BaseCost: 70,
		Params:  &BehaviorParams{RotationSpeed: 1.8, ArcAngle: 0.5, TickInterval: 0.4},
		Visuals: Visuals{Color: color.RGBA{255, 140, 200, 255}, RadiusFactor: 0.85, StrokeWidth: 2},
	},
	{
		ID: "TOWER_OMEGA", Name: "Omega", Glyph: "Ω", Behavior: BehaviorCollector,
		Tier: 1, Damage: 20, FireRate: 0.8, Range: 220, BaseCost: 110,
		Params: &BehaviorParams{
			WaveCount: 3, ChargeCost: 6, WaveAngular: 7.0, WaveRadial: 130,
		},
		Visuals: Visuals{Color: color.RGBA{255, 220, 120, 255}, RadiusFactor: 0.9, StrokeWidth: 3},
	},
}
