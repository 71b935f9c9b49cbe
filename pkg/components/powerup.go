package components

import "github.com/gonewx/tankarena/pkg/types"

// PowerUpComponent 可拾取道具
type PowerUpComponent struct {
	Type types.PowerUpType
}
