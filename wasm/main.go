//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	exports := map[string]func(js.Value, []js.Value) interface{}{
		"NestcheckNew":        newChecker,
		"NestcheckCheck":      check,
		"NestcheckCheckOnce":  checkOnce,
		"NestcheckCheckBatch": checkBatch,
		"NestcheckClose":      closeChecker,
		"NestcheckRules":      getRules,
	}
	for name, fn := range exports {
		js.Global().Set(name, js.FuncOf(fn))
	}

	// Keep WASM running
	<-make(chan struct{})
}
