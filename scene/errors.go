package scene

import "errors"

var (
	ErrNoMaterial      = errors.New("scene: no material assigned to primitive")
	ErrDegenerateLight = errors.New("scene: quad light has zero area")
	ErrUnknownScene    = errors.New("scene: unknown built-in scene")
)
