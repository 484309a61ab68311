package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dshills/chunkdoc/internal/engine/buffer"
	"github.com/dshills/chunkdoc/internal/logging"
	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds one Lua run when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Target is the buffer surface exposed to Lua scripts as the doc module.
type Target interface {
	Editor
	Newlines() uint64
	Text() string
	LineText(line uint64) (string, error)
	LineForOffset(offset buffer.Offset) (uint64, error)
	LineStartOffset(line uint64) (buffer.Offset, error)
}

// LuaRunner executes Lua scripts in a fresh sandboxed state per run.
//
// gopher-lua states are not goroutine-safe; each Run creates and closes its
// own state, so one LuaRunner may be shared.
type LuaRunner struct {
	timeout time.Duration
	maxOps  int
	out     io.Writer
	logger  *logging.Logger
}

// LuaOption configures a LuaRunner.
type LuaOption func(*LuaRunner)

// WithTimeout bounds the wall-clock time of a run.
func WithTimeout(d time.Duration) LuaOption {
	return func(r *LuaRunner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLuaMaxOps limits the number of doc mutations per run; 0 disables
// the limit.
func WithLuaMaxOps(n int) LuaOption {
	return func(r *LuaRunner) {
		r.maxOps = n
	}
}

// WithOutput redirects the script's print output.
func WithOutput(w io.Writer) LuaOption {
	return func(r *LuaRunner) {
		r.out = w
	}
}

// WithLuaLogger sets the runner's logger.
func WithLuaLogger(l *logging.Logger) LuaOption {
	return func(r *LuaRunner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewLuaRunner creates a Lua runner.
func NewLuaRunner(opts ...LuaOption) *LuaRunner {
	r := &LuaRunner{
		timeout: DefaultTimeout,
		out:     io.Discard,
		logger:  logging.Null,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("lua")
	return r
}

// Run executes code against t.
func (r *LuaRunner) Run(ctx context.Context, t Target, code string) error {
	return r.run(ctx, t, func(L *lua.LState) error { return L.DoString(code) })
}

// RunFile executes the Lua file at path against t.
func (r *LuaRunner) RunFile(ctx context.Context, t Target, path string) error {
	return r.run(ctx, t, func(L *lua.LState) error { return L.DoFile(path) })
}

func (r *LuaRunner) run(ctx context.Context, t Target, exec func(*lua.LState) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	L := newSandbox(r.out)
	defer L.Close()
	L.SetContext(ctx)

	m := &docModule{target: t, maxOps: r.maxOps}
	L.SetGlobal("doc", L.SetFuncs(L.NewTable(), m.funcs()))

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
		r.logger.Debug("run finished in %s after %d mutations", time.Since(start), m.ops)
	}()

	if err := exec(L); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// newSandbox creates a state with only the base, table, string and math
// libraries and without the functions that load code from files or strings.
func newSandbox(out io.Writer) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		fmt.Fprintln(out, strings.Join(parts, "\t"))
		return 0
	}))
	return L
}

// docModule binds a Target to Lua functions.
type docModule struct {
	target Target
	maxOps int
	ops    int
}

func (m *docModule) funcs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"insert":     m.insert,
		"delete":     m.delete,
		"replace":    m.replace,
		"push":       m.push,
		"len":        m.length,
		"newlines":   m.newlines,
		"line_for":   m.lineFor,
		"cursor_for": m.cursorFor,
		"line":       m.line,
		"text":       m.text,
	}
}

func checkOffset(L *lua.LState, n int) uint64 {
	v := L.CheckInt64(n)
	if v < 0 {
		L.ArgError(n, "offset must not be negative")
	}
	return uint64(v)
}

func (m *docModule) edit(L *lua.LState, edit buffer.Edit) int {
	m.ops++
	if m.maxOps > 0 && m.ops > m.maxOps {
		L.RaiseError("%v: %d", ErrTooManyOps, m.maxOps)
	}
	res, err := m.target.ApplyEdit(edit)
	if err != nil {
		L.RaiseError("%s: %v", edit, err)
	}
	L.Push(lua.LNumber(res.NewRange.End))
	return 1
}

// doc.insert(at, text) -> end
func (m *docModule) insert(L *lua.LState) int {
	return m.edit(L, buffer.NewInsert(checkOffset(L, 1), L.CheckString(2)))
}

// doc.delete(from, to)
func (m *docModule) delete(L *lua.LState) int {
	m.edit(L, buffer.NewDelete(checkOffset(L, 1), checkOffset(L, 2)))
	L.Pop(1)
	return 0
}

// doc.replace(from, to, text) -> end
func (m *docModule) replace(L *lua.LState) int {
	return m.edit(L, buffer.NewReplace(checkOffset(L, 1), checkOffset(L, 2), L.CheckString(3)))
}

// doc.push(text) -> end
func (m *docModule) push(L *lua.LState) int {
	return m.edit(L, buffer.NewInsert(m.target.Len(), L.CheckString(1)))
}

func (m *docModule) length(L *lua.LState) int {
	L.Push(lua.LNumber(m.target.Len()))
	return 1
}

func (m *docModule) newlines(L *lua.LState) int {
	L.Push(lua.LNumber(m.target.Newlines()))
	return 1
}

// doc.line_for(offset) -> line or nil
func (m *docModule) lineFor(L *lua.LState) int {
	line, err := m.target.LineForOffset(checkOffset(L, 1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(line))
	return 1
}

// doc.cursor_for(line) -> offset or nil
func (m *docModule) cursorFor(L *lua.LState) int {
	offset, err := m.target.LineStartOffset(checkOffset(L, 1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(offset))
	return 1
}

// doc.line(line) -> text or nil
func (m *docModule) line(L *lua.LState) int {
	text, err := m.target.LineText(checkOffset(L, 1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(text))
	return 1
}

func (m *docModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.target.Text()))
	return 1
}
