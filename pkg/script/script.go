// Package script is a Lisp scene-description DSL for PolyFit, built on
// github.com/glycerine/zygomys, generalized from the teacher's sandboxed
// evaluation-engine pattern: a fresh interpreter per call, a hard
// wall-clock timeout, and a generation counter that discards stale
// results from a superseded evaluation.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError is a non-fatal parse or runtime error encountered while
// evaluating a scene script.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// Interpreter evaluates scene scripts. It is safe for concurrent use;
// each call to Eval creates a fresh sandboxed zygomys environment.
type Interpreter struct {
	mu         sync.Mutex
	generation uint64
}

// NewInterpreter returns a ready-to-use Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

type evalResult struct {
	scene  *Scene
	errors []EvalError
	err    error
}

// Eval parses and runs source, returning the Scene built by its
// (segment ...) and (config ...) forms.
//
// Return semantics mirror the teacher's engine: on a parse/runtime
// failure in user code, a nil *Scene and a non-nil EvalError slice are
// returned with a nil error; a nil *Scene and nil EvalErrors with a
// non-nil error indicates a fatal failure (timeout or panic) unrelated
// to the script's content.
func (in *Interpreter) Eval(source string) (*Scene, []EvalError, error) {
	in.mu.Lock()
	in.generation++
	gen := in.generation
	in.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		scene, evalErrs, err := in.eval(source)
		ch <- evalResult{scene: scene, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &in.mu, &in.generation)
}

func (in *Interpreter) eval(source string) (*Scene, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return &Scene{}, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	scene := &Scene{}
	registerBuiltins(env, scene)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return scene, nil, nil
}

func waitWithTimeout(ch <-chan evalResult, gen uint64, mu *sync.Mutex, currentGen *uint64) (*Scene, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()
		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.scene, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}

var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
