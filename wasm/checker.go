//go:build wasm

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/nestcheck/pkg/scanner"
)

var errInvalidHandle = errors.New("invalid checker handle")

// registry maps the integer handles given to JavaScript to open cores.
type registry struct {
	mu    sync.Mutex
	cores map[int]*scanner.Core
	next  int
}

var cores = &registry{cores: make(map[int]*scanner.Core)}

func (r *registry) add(core *scanner.Core) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	r.cores[id] = core
	return id
}

func (r *registry) get(handle int) (*scanner.Core, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	core, ok := r.cores[handle]
	if !ok {
		return nil, errInvalidHandle
	}
	return core, nil
}

func (r *registry) remove(handle int) (*scanner.Core, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	core, ok := r.cores[handle]
	if !ok {
		return nil, errInvalidHandle
	}
	delete(r.cores, handle)
	return core, nil
}

// failure is the value returned to JavaScript when a call fails.
func failure(msg string, err error) map[string]interface{} {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return map[string]interface{}{"error": msg}
}

// encode returns v as a JSON string, or a failure if it cannot be encoded.
func encode(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return failure("encoding result", err)
	}
	return string(data)
}

// stringArg returns args[i] if it is a string, otherwise "".
func stringArg(args []js.Value, i int) string {
	if len(args) > i && args[i].Type() == js.TypeString {
		return args[i].String()
	}
	return ""
}

// handleArg resolves args[0] to an open core.
func handleArg(args []js.Value) (*scanner.Core, int, error) {
	if len(args) < 1 || args[0].Type() != js.TypeNumber {
		return nil, 0, fmt.Errorf("%w: expected a number", errInvalidHandle)
	}
	handle := args[0].Int()
	core, err := cores.get(handle)
	return core, handle, err
}

// newChecker opens a checker.
// JS: NestcheckNew(optionsJSON?) -> {handle} or {error}
func newChecker(this js.Value, args []js.Value) interface{} {
	core, err := scanner.NewCore(stringArg(args, 0), scanner.NoopLogger{})
	if err != nil {
		return failure("creating checker", err)
	}
	return map[string]interface{}{"handle": cores.add(core)}
}

// check checks one buffer.
// JS: NestcheckCheck(handle, content, source?) -> JSON ScanResult or {error}
func check(this js.Value, args []js.Value) interface{} {
	core, _, err := handleArg(args)
	if err != nil {
		return failure("check", err)
	}
	if len(args) < 2 || args[1].Type() != js.TypeString {
		return failure("check: content must be a string", nil)
	}

	result, err := core.Check(context.Background(), args[1].String(), stringArg(args, 2))
	if err != nil {
		return failure("check", err)
	}
	return encode(result)
}

// checkOnce checks one buffer without keeping a handle open.
// JS: NestcheckCheckOnce(content, source?, optionsJSON?) -> JSON ScanResult or {error}
func checkOnce(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return failure("check: content must be a string", nil)
	}
	core, err := scanner.NewCore(stringArg(args, 2), scanner.NoopLogger{})
	if err != nil {
		return failure("creating checker", err)
	}
	defer core.Close()

	result, err := core.Check(context.Background(), args[0].String(), stringArg(args, 1))
	if err != nil {
		return failure("check", err)
	}
	return encode(result)
}

// checkBatch checks several buffers.
// JS: NestcheckCheckBatch(handle, itemsJSON) -> JSON BatchScanResult or {error}
func checkBatch(this js.Value, args []js.Value) interface{} {
	core, _, err := handleArg(args)
	if err != nil {
		return failure("check batch", err)
	}

	var items []scanner.ContentItem
	if err := json.Unmarshal([]byte(stringArg(args, 1)), &items); err != nil {
		return failure("parsing items", err)
	}

	batch, err := core.CheckBatch(context.Background(), items)
	if err != nil {
		return failure("check batch", err)
	}
	return encode(batch)
}

// closeChecker releases a handle.
// JS: NestcheckClose(handle) -> null or {error}
func closeChecker(this js.Value, args []js.Value) interface{} {
	_, handle, err := handleArg(args)
	if err != nil {
		return failure("close", err)
	}
	core, err := cores.remove(handle)
	if err != nil {
		return failure("close", err)
	}
	core.Close()
	return nil
}

// getRules lists the reportable problem kinds.
// JS: NestcheckRules() -> JSON rules array
func getRules(this js.Value, args []js.Value) interface{} {
	return encode(scanner.Rules())
}
