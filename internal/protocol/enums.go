package protocol

// Affiliation is the creature's faction byte.
type Affiliation uint8

const (
	AffiliationPlayer Affiliation = 0
	AffiliationEnemy  Affiliation = 1
	AffiliationNPC    Affiliation = 3
	AffiliationPet    Affiliation = 5
	AffiliationNeutral Affiliation = 6
)

// Race is the creature's species. On the wire this is an i32.
type Race int32

const (
	RaceElfMale Race = iota
	RaceElfFemale
	RaceHumanMale
	RaceHumanFemale
	RaceGoblinMale
	RaceGoblinFemale
	RaceTerrierBull
	RaceLizardmanMale
	RaceLizardmanFemale
	RaceDwarfMale
	RaceDwarfFemale
	RaceOrcMale
	RaceOrcFemale
	RaceFrogmanMale
	RaceFrogmanFemale
	RaceUndeadMale
	RaceUndeadFemale
	RaceSkeleton
	RaceOldMan
	RaceCollie
	RaceShepherdDog
	RaceSkullBull
	RaceAlpaca
	RaceAlpacaBrown
	RaceEgg
	RaceTurtle
	RaceTerrier
	RaceTerrierScottish
	RaceWolf
	RacePanther
	RaceCat
	RaceCatBrown
	RaceCatWhite
	RacePig
	RaceSheep
	RaceBunny
	RacePorcupine
	RaceSlimeGreen
	RaceSlimePink
	RaceSlimeYellow
	RaceSlimeBlue
	RaceFrightener
	RaceSandhorror
	RaceWizard
	RaceBandit
	RaceWitch
	RaceOgre
	RaceRockling
	RaceGnoll
	RaceGnollPolar
	RaceMonkey
	RaceGnobold
	RaceInsectoid
	RaceHornet
	RaceInsectGuard
	RaceCrow
	RaceChicken
	RaceSeagull
	RaceParrot
	RaceBat
	RaceFly
	RaceMidge
	RaceMosquito
	RaceRunnerPlain
	RaceRunnerLeaf
	RaceRunnerSnow
	RaceRunnerDesert
	RacePeacock
	RaceFrog
	RaceCreaturePlant
	RaceCreatureRadish
	RaceOnionling
	RaceOnionlingDesert
	RaceDevourer
	RaceDuckbill
	RaceCrocodile
	RaceCreatureSpike
	RaceAnubis
	RaceHorus
	RaceJester
	RaceSpectrino
	RaceDjinn
	RaceMinotaur
	RaceNomadMale
	RaceNomadFemale
	RaceImp
	RaceSpitter
	RaceMole
	RaceBiter
	RaceKoala
	RaceSquirrel
	RaceRaccoon
	RaceOwl
	RacePenguin
	RaceWerewolf
	RaceSanta
	RaceZombie
	RaceVampire
	RaceHorse
	RaceCamel
	RaceCow
	RaceDragon
	RaceBeetleDark
	RaceBeetleFire
	RaceBeetleSnout
	RaceBeetleLemon
	RaceCrab
	RaceCrabSea
	RaceTroll
	RaceTrollDark
	RaceHelldemon
	RaceGolem
	RaceGolemEmber
	RaceGolemSnow
	RaceYeti
	RaceCyclops
	RaceMammoth
	RaceLich
	RaceRunegiant
	RaceSaurian
	RaceBush
	RaceBushSnow
	RaceBushSnowberry
	RacePlantCotton
	RaceScrub
	RaceScrubCobweg
	RaceScrubFire
	RaceGinseng
	RaceCactus
	RaceChristmasTree
	RaceThorntree
	RaceDepositGold
	RaceDepositIron
	RaceDepositSilver
	RaceDepositSandstone
	RaceDepositEmerald
	RaceDepositSapphire
	RaceDepositRuby
	RaceDepositDiamond
	RaceDepositIcecrystal
	RaceScarecrow
	RaceAim
	RaceDummy
	RaceVase
	RaceBomb
	RaceFishSapphire
	RaceFishLemon
	RaceSeahorse
	RaceMermaid
	RaceMerman
	RaceShark
	RaceBumblebee
	RaceLanternfish
	RaceMawfish
	RacePiranha
	RaceBlowfish
)

// Animation is the creature's current animation state byte.
type Animation uint8

const (
	AnimIdle Animation = iota
	AnimDualWieldM1a
	AnimDualWieldM1b
	AnimUnknown003
	AnimUnknown004
	AnimLongswordM2
	AnimUnarmedM1a
	AnimUnarmedM1b
	AnimShieldM2Charging
	AnimShieldM1a
	AnimShieldM1b
	AnimUnarmedM2
	AnimUnknown012
	AnimLongswordM1a
	AnimLongswordM1b
	AnimUnknown015
	AnimUnknown016
	AnimDaggersM2
	AnimDaggersM1a
	AnimDaggersM1b
	AnimFistsM2
	AnimKick
	AnimShootArrow
	AnimCrossbowM2
	AnimCrossbowM2Charging
	AnimBowM2Charging
	AnimBoomerangM1
	AnimBoomerangM2Charging
	AnimBeamDraining
	AnimUnknown029
	AnimStaffFireM1
	AnimStaffFireM2
	AnimStaffWaterM1
	AnimStaffWaterM2
	AnimHealingStream
	AnimUnknown035
	AnimUnknown036
	AnimBraceletFireM2
	AnimWandFireM1
	AnimBraceletsFireM1a
	AnimBraceletsFireM1b
	AnimBraceletsWaterM1a
	AnimBraceletsWaterM1b
	AnimBraceletWaterM2
	AnimWandWaterM1
	AnimWandWaterM2
	AnimWandFireM2
	AnimUnknown047
	AnimIntercept
	AnimTeleport
	AnimUnknown050
	AnimUnknown051
	AnimUnknown052
	AnimUnknown053
	AnimSmash
	AnimBowM2
	AnimUnknown056
	AnimGreatweaponM1a
	AnimGreatweaponM1c
	AnimGreatweaponM2Charging
	AnimGreatweaponM2Berserker
	AnimGreatweaponM2Guardian
	AnimUnknown062
	AnimUnarmedM2Charging
	AnimDualWieldM2Charging
	AnimUnknown065
	AnimUnknown066
	AnimGreatweaponM1b
	AnimBossCharge1
	AnimBossCharge2
	AnimBossSpinkick
	AnimBossBlock
	AnimBossSpin
	AnimBossCry
	AnimBossStomp
	AnimBossKick
	AnimBossKnockdownForward
	AnimBossKnockdownLeft
	AnimBossKnockdownRight
	AnimStealth
	AnimDrinking
	AnimEating
	AnimPetFoodPresent
	AnimSitting
	AnimSleeping
	AnimUnknown085
	AnimCyclone
	AnimFireExplosionLong
	AnimFireExplosionShort
	AnimLava
	AnimSplash
	AnimEarthQuake
	AnimClone
	AnimUnknown093
	AnimFireBeam
	AnimFireRay
	AnimShuriken
	AnimUnknown097
	AnimUnknown098
	AnimUnknown099
	AnimUnknown100
	AnimSuperBulwark
	AnimUnknown102
	AnimSuperManaShield
	AnimShieldM2
	AnimTeleportToCity
	AnimRiding
	AnimBoat
	AnimBoulder
	AnimManaCubePickup
	AnimUnknown110
)

// CombatClassMajor is the creature's occupation. Negative values are
// NPC shopkeeps; player classes are 1..4.
type CombatClassMajor int8

const (
	ClassNone    CombatClassMajor = 0
	ClassWarrior CombatClassMajor = 1
	ClassRanger  CombatClassMajor = 2
	ClassMage    CombatClassMajor = 3
	ClassRogue   CombatClassMajor = 4

	ClassGeneralShopkeep CombatClassMajor = -128
	ClassWeaponShopkeep  CombatClassMajor = -127
	ClassArmorShopkeep   CombatClassMajor = -126
	ClassIdentifier      CombatClassMajor = -125
	ClassInnkeep         CombatClassMajor = -124
	ClassBlacksmith      CombatClassMajor = -123
	ClassWoodworker      CombatClassMajor = -122
	ClassWeaver          CombatClassMajor = -121
	ClassVillager        CombatClassMajor = -120
	ClassAdapter         CombatClassMajor = -119
)

// CombatClassMinor is the specialization within a major class.
type CombatClassMinor uint8

const (
	SpecDefault CombatClassMinor = iota
	SpecAlternative
	SpecWitch
)

// PhysicsFlags is the 32-bit contact flagset.
type PhysicsFlags uint32

const (
	PhysOnGround PhysicsFlags = 1 << 0
	PhysSwimming PhysicsFlags = 1 << 1
	PhysTouchingWall PhysicsFlags = 1 << 2
	PhysPushingWall PhysicsFlags = 1 << 5
	PhysPushingObject PhysicsFlags = 1 << 6
)

func (f PhysicsFlags) Has(flag PhysicsFlags) bool { return f&flag != 0 }

// CreatureFlags is the 16-bit behavior flagset.
type CreatureFlags uint16

const (
	FlagClimbing     CreatureFlags = 1 << 0
	FlagAiming       CreatureFlags = 1 << 2
	FlagGliding      CreatureFlags = 1 << 4
	FlagFriendlyFire CreatureFlags = 1 << 5
	FlagSprinting    CreatureFlags = 1 << 6
	FlagLamp         CreatureFlags = 1 << 9
	FlagSniping      CreatureFlags = 1 << 10
)

func (f CreatureFlags) Has(flag CreatureFlags) bool { return f&flag != 0 }

// AppearanceFlags is the 16-bit appearance flagset.
type AppearanceFlags uint16

const (
	AppearFourLegged AppearanceFlags = 1 << 0
	AppearCanFly     AppearanceFlags = 1 << 1
	AppearImmovable  AppearanceFlags = 1 << 8
	AppearBossGlow   AppearanceFlags = 1 << 9
	AppearInvincible AppearanceFlags = 1 << 13
)

func (f AppearanceFlags) Has(flag AppearanceFlags) bool { return f&flag != 0 }
