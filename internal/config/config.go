// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1280
	ScreenHeight = 960

	// MaxDeltaTime ограничивает кадровую дельту сверху: после паузы или
	// лага симуляция догоняет время одним большим, но не безразмерным шагом.
	MaxDeltaTime = 0.12

	// PathSubdivisions — число подразбиений сплайна на сегмент маршрута.
	PathSubdivisions = 12

	StartingEnergy = 250.0
	EnergyCap      = 9999.0
	StartingLives  = 20

	// SellRefundFactor — доля накопленной стоимости башни при продаже.
	SellRefundFactor = 1.0

	// GlobalBreachDefense вычитается из урона прорыва, если ни у экземпляра
	// врага, ни у его определения нет собственной защиты.
	GlobalBreachDefense = 0.0

	EnemyRadius     = 10.0
	DefaultSpawnGap = 1.5 // секунд между врагами одной группы
	BossSpawnGap    = 2.5

	// Бесконечный режим: на каждом цикле здоровье и награда врастают
	// десятикратно, скорость — на десять процентов.
	CycleHealthFactor = 10.0
	CycleRewardFactor = 10.0
	CycleSpeedBonus   = 0.1

	TowerRadius      = 14.0
	MinTowerGap      = 30.0 // минимальное расстояние между башнями
	MinPathClearance = 22.0 // башню нельзя ставить вплотную к маршруту
	BuildRadius      = 420.0

	ProjectileRadius       = 4.0
	ProjectileLifetime     = 4.0 // секунд до самоуничтожения снаряда
	DefaultProjectileSpeed = 520.0

	// Экономика линий снабжения. Поставщик вместо выстрела отправляет
	// сгусток; получатель конвертирует его в заряд, заряд — в бонус урона.
	LinkRange          = 260.0
	MotePayloadPerShot = 3.0
	MoteSpeed          = 340.0
	ChargePerMote      = 1.0
	ChargeDamageBonus  = 0.04 // прибавка к множителю урона за единицу заряда
	ChargeSpendPerShot = 2.0
	IdleFeedDelay      = 2.5 // секунд без целей до подкормки коллектора

	// Вектор вспышки попадания для отрисовки: нормаль от источника к цели,
	// сила зависит от доли снятого здоровья и зажата в эти пределы.
	ImpactPowerMin = 0.45
	ImpactPowerMax = 1.35
	ImpactDecay    = 3.2 // скорость затухания вспышки, 1/с

	// Пределы журналов статистики, чтобы бесконечный режим не съёл память.
	StatsAttackLogLimit  = 256
	StatsHistoryLimit    = 128
	StatsContributorsTop = 3

	SpeedLevels = 3 // x1, x2, x4
)

var (
	BackgroundColor = color.RGBA{18, 20, 28, 255}
	PathColor       = color.RGBA{70, 100, 120, 220}
	EntryColor      = color.RGBA{80, 220, 100, 255}
	ExitColor       = color.RGBA{220, 70, 70, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	RangeRingColor  = color.RGBA{240, 240, 240, 40}
	LinkLineColor   = color.RGBA{255, 225, 90, 140}
	EnemyColor      = color.RGBA{210, 210, 220, 255}
	BossColor       = color.RGBA{255, 140, 60, 255}
	ThrallColor     = color.RGBA{120, 230, 170, 255}
	CrystalColor    = color.RGBA{140, 200, 255, 255}

	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},
		color.RGBA{220, 120, 60, 220},
		color.RGBA{194, 178, 128, 255},
	}
)
