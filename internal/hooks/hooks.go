package hooks

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dop251/goja"

	"todopad/internal/task"
)

// HookEnv hosts user-provided JS hooks. A nil env is valid and inert.
type HookEnv struct{ rt *goja.Runtime }

// LoadDir evaluates every .js file in dir into a shared runtime. A missing
// dir yields an inert env; per-file errors are logged and skipped.
func LoadDir(dir string) *HookEnv {
	env := &HookEnv{rt: goja.New()}
	if dir == "" {
		return env
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return env
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".js" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		// strip simple ESM exports
		code := string(b)
		code = strings.ReplaceAll(code, "export function ", "function ")
		code = strings.ReplaceAll(code, "export const ", "const ")
		if _, err := env.rt.RunString(code); err != nil {
			log.Printf("[hooks] error evaluating %s: %v", e.Name(), err)
		}
	}
	return env
}

// DecorateTaskRow asks the optional decorateTaskRow(task) hook to override a
// row's displayed text. Returns ok=false when no hook is present, it fails,
// or it yields nothing.
func (h *HookEnv) DecorateTaskRow(t task.Task) (string, bool) {
	if h == nil || h.rt == nil {
		return "", false
	}
	v := h.rt.Get("decorateTaskRow")
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "", false
	}
	f, ok := goja.AssertFunction(v)
	if !ok {
		return "", false
	}
	arg := map[string]any{"id": t.ID, "name": t.Name, "complete": t.Complete}
	rv, err := f(goja.Undefined(), h.rt.ToValue(arg))
	if err != nil {
		log.Printf("[hooks] decorateTaskRow: %v", err)
		return "", false
	}
	if goja.IsUndefined(rv) || goja.IsNull(rv) {
		return "", false
	}
	s := rv.String()
	if s == "" {
		return "", false
	}
	return s, true
}
