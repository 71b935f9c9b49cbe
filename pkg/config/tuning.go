package config

import (
	"fmt"
	"math"
	"os"

	"github.com/gonewx/tankarena/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultTuningPath 嵌入数值配置文件路径
const DefaultTuningPath = "data/tuning.yaml"

// Tuning 一局比赛的全部数值配置
// 时间单位为秒，移动单位为 像素/帧，角度单位为弧度
type Tuning struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      TankProfile      `yaml:"enemy"`
	Bosses     []BossProfile    `yaml:"bosses"`
	Projectile ProjectileConfig `yaml:"projectile"`
	PowerUps   PowerUpConfig    `yaml:"powerUps"`
	Waves      WaveConfig       `yaml:"waves"`
	Particles  ParticleConfig   `yaml:"particles"`
}

// SimulationConfig 主循环参数
type SimulationConfig struct {
	TicksPerSecond int     `yaml:"ticksPerSecond"` // 宿主调用 Update 的频率
	MaxFrameTime   float64 `yaml:"maxFrameTime"`   // 单帧 deltaTime 上限，防止切后台回来时时钟跳变
}

// ArenaConfig 竞技场尺寸与障碍物生成参数
type ArenaConfig struct {
	Width                float64 `yaml:"width"`
	Height               float64 `yaml:"height"`
	ObstacleCount        int     `yaml:"obstacleCount"`
	ObstacleSizeMin      float64 `yaml:"obstacleSizeMin"`
	ObstacleSizeMax      float64 `yaml:"obstacleSizeMax"`
	ObstacleMargin       float64 `yaml:"obstacleMargin"`       // 障碍物距边界最小距离
	CenterClearance      float64 `yaml:"centerClearance"`      // 中心出生点净空半径
	MaxPlacementAttempts int     `yaml:"maxPlacementAttempts"` // 每个障碍物的最大采样次数
}

// PlayerConfig 玩家坦克参数
type PlayerConfig struct {
	Size          float64 `yaml:"size"`
	Speed         float64 `yaml:"speed"`
	TurnSpeed     float64 `yaml:"turnSpeed"`
	ReverseFactor float64 `yaml:"reverseFactor"` // 倒车速度系数
	MaxHealth     int     `yaml:"maxHealth"`
	FireRate      float64 `yaml:"fireRate"` // 两次开火最小间隔（秒）
}

// TankProfile 敌方坦克（含 Boss）参数
type TankProfile struct {
	Name                string  `yaml:"name"`
	Size                float64 `yaml:"size"`
	MaxHealth           int     `yaml:"maxHealth"`
	Speed               float64 `yaml:"speed"`
	TurnSpeed           float64 `yaml:"turnSpeed"`
	FireRate            float64 `yaml:"fireRate"`
	SpreadCount         int     `yaml:"spreadCount"` // 每次开火的弹丸数量，1 为单发
	SpreadAngle         float64 `yaml:"spreadAngle"` // 扇形总张角
	AimInaccuracy       float64 `yaml:"aimInaccuracy"`
	KillScore           int     `yaml:"killScore"`
	StuckTurnMultiplier float64 `yaml:"stuckTurnMultiplier"` // 受阻时的转向倍率
}

// BossProfile 指定波次出场的 Boss
type BossProfile struct {
	Wave        int `yaml:"wave"`
	TankProfile `yaml:",inline"`
}

// ProjectileConfig 炮弹参数
type ProjectileConfig struct {
	Size        float64 `yaml:"size"`
	Speed       float64 `yaml:"speed"`
	Damage      int     `yaml:"damage"`
	MaxLifetime float64 `yaml:"maxLifetime"` // 超过该存活时间自动销毁，0 表示不限
}

// PowerUpConfig 道具参数
type PowerUpConfig struct {
	Size                float64 `yaml:"size"`
	DropChance          float64 `yaml:"dropChance"`
	HealthRestore       int     `yaml:"healthRestore"`
	ShieldCharge        int     `yaml:"shieldCharge"`
	RapidFireDuration   float64 `yaml:"rapidFireDuration"`
	RapidFireMultiplier float64 `yaml:"rapidFireMultiplier"` // 射速 buff 下开火间隔乘数
	MultiShotDuration   float64 `yaml:"multiShotDuration"`
	MultiShotCount      int     `yaml:"multiShotCount"`
	MultiShotSpread     float64 `yaml:"multiShotSpread"`
	BossSpawnInterval   float64 `yaml:"bossSpawnInterval"` // Boss 波次中道具刷新间隔
	BossSpawnMargin     float64 `yaml:"bossSpawnMargin"`
	BossSpawnAttempts   int     `yaml:"bossSpawnAttempts"`
}

// WaveConfig 波次参数
type WaveConfig struct {
	StartDelay        float64 `yaml:"startDelay"` // 波次公告持续时间
	BaseEnemyCount    int     `yaml:"baseEnemyCount"`
	MaxEnemiesPerWave int     `yaml:"maxEnemiesPerWave"` // 0 表示不封顶
	SpawnAttempts     int     `yaml:"spawnAttempts"`
	SpawnMarginFactor float64 `yaml:"spawnMarginFactor"` // 出生点距边界 = 坦克尺寸 * 系数
}

// ParticleConfig 粒子特效参数
type ParticleConfig struct {
	Damping          float64 `yaml:"damping"`
	ObstacleHitCount int     `yaml:"obstacleHitCount"`
	TankHitCount     int     `yaml:"tankHitCount"`
	EnemyDeathCount  int     `yaml:"enemyDeathCount"`
	BossDeathCount   int     `yaml:"bossDeathCount"`
	PlayerDeathCount int     `yaml:"playerDeathCount"`
	MuzzleFlashCount int     `yaml:"muzzleFlashCount"`
}

// DefaultTuning 返回与 data/tuning.yaml 一致的默认配置
func DefaultTuning() *Tuning {
	return &Tuning{
		Simulation: SimulationConfig{TicksPerSecond: 60, MaxFrameTime: 0.25},
		Arena: ArenaConfig{
			Width:                1280,
			Height:               720,
			ObstacleCount:        12,
			ObstacleSizeMin:      30,
			ObstacleSizeMax:      80,
			ObstacleMargin:       100,
			CenterClearance:      200,
			MaxPlacementAttempts: 500,
		},
		Player: PlayerConfig{
			Size:          40,
			Speed:         2.5,
			TurnSpeed:     0.05,
			ReverseFactor: 0.7,
			MaxHealth:     100,
			FireRate:      0.4,
		},
		Enemy: TankProfile{
			Size:                40,
			MaxHealth:           30,
			Speed:               1.2,
			TurnSpeed:           0.03,
			FireRate:            1.8,
			SpreadCount:         1,
			AimInaccuracy:       0.1,
			KillScore:           100,
			StuckTurnMultiplier: 5,
		},
		Bosses: []BossProfile{
			{Wave: 6, TankProfile: TankProfile{
				Name:                "Dreadnought",
				Size:                80,
				MaxHealth:           1000,
				Speed:               0.8,
				TurnSpeed:           0.015,
				FireRate:            2.5,
				SpreadCount:         8,
				SpreadAngle:         math.Pi / 2,
				KillScore:           1000,
				StuckTurnMultiplier: 5,
			}},
			{Wave: 12, TankProfile: TankProfile{
				Name:                "Hailstorm",
				Size:                75,
				MaxHealth:           1500,
				Speed:               0.6,
				TurnSpeed:           0.02,
				FireRate:            0.25,
				SpreadCount:         3,
				SpreadAngle:         math.Pi / 6,
				KillScore:           1000,
				StuckTurnMultiplier: 5,
			}},
		},
		Projectile: ProjectileConfig{Size: 8, Speed: 6, Damage: 10, MaxLifetime: 2},
		PowerUps: PowerUpConfig{
			Size:                25,
			DropChance:          0.3,
			HealthRestore:       25,
			ShieldCharge:        50,
			RapidFireDuration:   5,
			RapidFireMultiplier: 0.4,
			MultiShotDuration:   8,
			MultiShotCount:      5,
			MultiShotSpread:     math.Pi / 8,
			BossSpawnInterval:   15,
			BossSpawnMargin:     100,
			BossSpawnAttempts:   50,
		},
		Waves: WaveConfig{
			StartDelay:        3,
			BaseEnemyCount:    2,
			MaxEnemiesPerWave: 24,
			SpawnAttempts:     50,
			SpawnMarginFactor: 1.5,
		},
		Particles: ParticleConfig{
			Damping:          0.98,
			ObstacleHitCount: 10,
			TankHitCount:     15,
			EnemyDeathCount:  50,
			BossDeathCount:   200,
			PlayerDeathCount: 100,
			MuzzleFlashCount: 20,
		},
	}
}

// LoadTuning 从嵌入资源加载数值配置
// path 必须以 "data/" 开头，例如 DefaultTuningPath
func LoadTuning(path string) (*Tuning, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("invalid tuning in %s: %w", path, err)
	}
	return t, nil
}

// LoadTuningFile 从磁盘加载数值配置（用于 --tuning 覆盖）
func LoadTuningFile(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("invalid tuning in %s: %w", path, err)
	}
	return t, nil
}

// ParseTuning 解析 YAML 数值配置
// 文件中未出现的字段保留 DefaultTuning 的值，因此只需写出要覆盖的部分。
// 注意 bosses 列表整体替换，不与默认列表合并。
func ParseTuning(data []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate 校验配置的合法性
func (t *Tuning) Validate() error {
	if t.Simulation.TicksPerSecond <= 0 {
		return fmt.Errorf("simulation.ticksPerSecond must be positive, got %d", t.Simulation.TicksPerSecond)
	}
	if t.Simulation.MaxFrameTime <= 0 {
		return fmt.Errorf("simulation.maxFrameTime must be positive, got %v", t.Simulation.MaxFrameTime)
	}

	a := t.Arena
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("arena: width and height must be positive, got %vx%v", a.Width, a.Height)
	}
	if a.ObstacleCount < 0 {
		return fmt.Errorf("arena.obstacleCount cannot be negative, got %d", a.ObstacleCount)
	}
	if a.ObstacleSizeMin <= 0 || a.ObstacleSizeMax < a.ObstacleSizeMin {
		return fmt.Errorf("arena: obstacle size range [%v, %v] is invalid", a.ObstacleSizeMin, a.ObstacleSizeMax)
	}
	if 2*a.ObstacleMargin >= a.Width || 2*a.ObstacleMargin >= a.Height {
		return fmt.Errorf("arena.obstacleMargin %v leaves no room inside %vx%v", a.ObstacleMargin, a.Width, a.Height)
	}
	if a.MaxPlacementAttempts <= 0 {
		return fmt.Errorf("arena.maxPlacementAttempts must be positive, got %d", a.MaxPlacementAttempts)
	}

	p := t.Player
	if p.Size <= 0 || p.Speed < 0 || p.TurnSpeed < 0 {
		return fmt.Errorf("player: size must be positive and speeds non-negative")
	}
	if p.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be positive, got %d", p.MaxHealth)
	}
	if p.FireRate < 0 {
		return fmt.Errorf("player.fireRate cannot be negative, got %v", p.FireRate)
	}

	if err := validateProfile("enemy", t.Enemy); err != nil {
		return err
	}
	seen := make(map[int]bool, len(t.Bosses))
	for i, b := range t.Bosses {
		name := fmt.Sprintf("bosses[%d]", i)
		if b.Wave < 1 {
			return fmt.Errorf("%s: wave must be at least 1, got %d", name, b.Wave)
		}
		if seen[b.Wave] {
			return fmt.Errorf("%s: duplicate boss wave %d", name, b.Wave)
		}
		seen[b.Wave] = true
		if err := validateProfile(name, b.TankProfile); err != nil {
			return err
		}
		if b.SpreadCount < 2 {
			return fmt.Errorf("%s: spreadCount must be at least 2, got %d", name, b.SpreadCount)
		}
	}

	if t.Projectile.Size <= 0 || t.Projectile.Speed <= 0 {
		return fmt.Errorf("projectile: size and speed must be positive")
	}
	if t.Projectile.Damage < 0 || t.Projectile.MaxLifetime < 0 {
		return fmt.Errorf("projectile: damage and maxLifetime cannot be negative")
	}

	pu := t.PowerUps
	if pu.Size <= 0 {
		return fmt.Errorf("powerUps.size must be positive, got %v", pu.Size)
	}
	if pu.DropChance < 0 || pu.DropChance > 1 {
		return fmt.Errorf("powerUps.dropChance must be in [0, 1], got %v", pu.DropChance)
	}
	if pu.HealthRestore < 0 || pu.ShieldCharge < 0 {
		return fmt.Errorf("powerUps: healthRestore and shieldCharge cannot be negative")
	}
	if pu.RapidFireDuration < 0 || pu.MultiShotDuration < 0 {
		return fmt.Errorf("powerUps: buff durations cannot be negative")
	}
	if pu.RapidFireMultiplier <= 0 {
		return fmt.Errorf("powerUps.rapidFireMultiplier must be positive, got %v", pu.RapidFireMultiplier)
	}
	if pu.MultiShotCount < 1 {
		return fmt.Errorf("powerUps.multiShotCount must be at least 1, got %d", pu.MultiShotCount)
	}
	if pu.BossSpawnInterval <= 0 || pu.BossSpawnAttempts <= 0 {
		return fmt.Errorf("powerUps: bossSpawnInterval and bossSpawnAttempts must be positive")
	}

	w := t.Waves
	if w.StartDelay < 0 {
		return fmt.Errorf("waves.startDelay cannot be negative, got %v", w.StartDelay)
	}
	if w.BaseEnemyCount < 1 {
		return fmt.Errorf("waves.baseEnemyCount must be at least 1, got %d", w.BaseEnemyCount)
	}
	if w.MaxEnemiesPerWave < 0 {
		return fmt.Errorf("waves.maxEnemiesPerWave cannot be negative, got %d", w.MaxEnemiesPerWave)
	}
	if w.SpawnAttempts <= 0 {
		return fmt.Errorf("waves.spawnAttempts must be positive, got %d", w.SpawnAttempts)
	}

	if t.Particles.Damping <= 0 || t.Particles.Damping > 1 {
		return fmt.Errorf("particles.damping must be in (0, 1], got %v", t.Particles.Damping)
	}
	return nil
}

func validateProfile(name string, p TankProfile) error {
	if p.Size <= 0 {
		return fmt.Errorf("%s: size must be positive, got %v", name, p.Size)
	}
	if p.MaxHealth <= 0 {
		return fmt.Errorf("%s: maxHealth must be positive, got %d", name, p.MaxHealth)
	}
	if p.Speed < 0 || p.TurnSpeed < 0 {
		return fmt.Errorf("%s: speed and turnSpeed cannot be negative", name)
	}
	if p.FireRate < 0 {
		return fmt.Errorf("%s: fireRate cannot be negative, got %v", name, p.FireRate)
	}
	if p.SpreadCount < 1 {
		return fmt.Errorf("%s: spreadCount must be at least 1, got %d", name, p.SpreadCount)
	}
	if p.AimInaccuracy < 0 {
		return fmt.Errorf("%s: aimInaccuracy cannot be negative, got %v", name, p.AimInaccuracy)
	}
	if p.KillScore < 0 {
		return fmt.Errorf("%s: killScore cannot be negative, got %d", name, p.KillScore)
	}
	return nil
}

// BossForWave 返回指定波次的 Boss 配置
// 该波次不是 Boss 波次时返回 nil, false
func (t *Tuning) BossForWave(wave int) (*BossProfile, bool) {
	for i := range t.Bosses {
		if t.Bosses[i].Wave == wave {
			return &t.Bosses[i], true
		}
	}
	return nil, false
}

// IsBossWave 指定波次是否为 Boss 波次
func (t *Tuning) IsBossWave(wave int) bool {
	_, ok := t.BossForWave(wave)
	return ok
}
