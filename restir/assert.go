//go:build !restirdebug

package restir

func assertReservoir(*Reservoir) {}
