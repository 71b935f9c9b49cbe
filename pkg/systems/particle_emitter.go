package systems

import (
	"math"

	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/utils"
)

// 爆炸与枪口火焰的随机参数范围
const (
	explosionSpeedLarge = 7.0
	explosionSpeedSmall = 4.0
	explosionSizeLarge  = 7.0
	explosionSizeSmall  = 3.0

	muzzleBarrelFactor = 0.7 // 枪口位置 = 车身尺寸 * 系数
	muzzleCone         = 0.6 // 火焰锥体总张角
)

// ParticleEmitter 生成一次性粒子特效
// 粒子只影响画面，随机数取自对局的 Rand，保证同一种子下结果一致。
type ParticleEmitter struct {
	tuning *config.Tuning
}

// NewParticleEmitter 创建粒子发射器
func NewParticleEmitter(tuning *config.Tuning) *ParticleEmitter {
	return &ParticleEmitter{tuning: tuning}
}

// EmitExplosion 在 (x, y) 生成 count 个向四周飞散的暖色粒子
// large 为 true 时粒子更快更大（击毁），否则为命中火花
func (e *ParticleEmitter) EmitExplosion(ctx *TickContext, x, y float64, count int, large bool) {
	if count <= 0 {
		return
	}
	rng := ctx.State.Rand
	speedRange, sizeRange := explosionSpeedSmall, explosionSizeSmall
	if large {
		speedRange, sizeRange = explosionSpeedLarge, explosionSizeLarge
	}

	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := rng.Float64()*speedRange + 1
		lifespan := rng.Float64()*40 + 30
		size := rng.Float64()*sizeRange + 2
		clr := utils.HSLToRGBA(rng.Float64()*25+15, 1, 0.5+rng.Float64()*0.15)
		entities.NewParticle(ctx.EM, x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, size, lifespan, clr)
	}

	ctx.State.Emit(game.Event{Type: game.EventExplosion, X: x, Y: y, Value: count, Large: large})
}

// EmitMuzzleFlash 在炮管末端生成沿炮塔方向喷出的短命火焰粒子
func (e *ParticleEmitter) EmitMuzzleFlash(ctx *TickContext, x, y, tankSize, turret float64) {
	rng := ctx.State.Rand
	barrel := tankSize * muzzleBarrelFactor
	fx := x + math.Cos(turret)*barrel
	fy := y + math.Sin(turret)*barrel

	for i := 0; i < e.tuning.Particles.MuzzleFlashCount; i++ {
		angle := turret + (rng.Float64()-0.5)*muzzleCone
		speed := rng.Float64()*5 + 3
		lifespan := rng.Float64()*8 + 4
		size := rng.Float64()*6 + 2
		clr := utils.HSLToRGBA(rng.Float64()*20+35, 1, 0.6+rng.Float64()*0.2)
		entities.NewParticle(ctx.EM, fx, fy, math.Cos(angle)*speed, math.Sin(angle)*speed, size, lifespan, clr)
	}
}
