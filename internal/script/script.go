package script

import (
	"context"
	"fmt"

	"github.com/dshills/chunkdoc/internal/engine/buffer"
	"github.com/dshills/chunkdoc/internal/logging"
)

// OpKind names an operation.
type OpKind string

const (
	OpPush    OpKind = "push"
	OpInsert  OpKind = "insert"
	OpDelete  OpKind = "delete"
	OpReplace OpKind = "replace"
)

// Op is one step of a declarative script. At and End are character offsets;
// End is only used by delete and replace, Text by push, insert and replace.
type Op struct {
	Kind OpKind `yaml:"op" toml:"op"`
	At   uint64 `yaml:"at,omitempty" toml:"at,omitempty"`
	End  uint64 `yaml:"end,omitempty" toml:"end,omitempty"`
	Text string `yaml:"text,omitempty" toml:"text,omitempty"`
}

func (op Op) String() string {
	switch op.Kind {
	case OpPush:
		return fmt.Sprintf("push %q", op.Text)
	case OpInsert:
		return fmt.Sprintf("insert %d %q", op.At, op.Text)
	case OpDelete:
		return fmt.Sprintf("delete [%d:%d)", op.At, op.End)
	case OpReplace:
		return fmt.Sprintf("replace [%d:%d) %q", op.At, op.End, op.Text)
	}
	return string(op.Kind)
}

// Edit converts the operation into a buffer edit. length is the current
// buffer length, used by push.
func (op Op) Edit(length uint64) (buffer.Edit, error) {
	switch op.Kind {
	case OpPush:
		return buffer.NewInsert(length, op.Text), nil
	case OpInsert:
		return buffer.NewInsert(op.At, op.Text), nil
	case OpDelete:
		return buffer.NewDelete(op.At, op.End), nil
	case OpReplace:
		return buffer.NewReplace(op.At, op.End, op.Text), nil
	}
	return buffer.Edit{}, fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
}

// Script is a named, ordered list of operations.
type Script struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	Ops  []Op   `yaml:"ops" toml:"ops"`
}

// Editor is the buffer surface a declarative script needs.
type Editor interface {
	Len() uint64
	ApplyEdit(edit buffer.Edit) (buffer.EditResult, error)
}

// Runner applies declarative scripts.
type Runner struct {
	maxOps int
	logger *logging.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMaxOps limits the number of operations per script; 0 disables the
// limit.
func WithMaxOps(n int) RunnerOption {
	return func(r *Runner) {
		r.maxOps = n
	}
}

// WithRunnerLogger sets the runner's logger.
func WithRunnerLogger(l *logging.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: logging.Null}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")
	return r
}

// Apply runs the operations in order and returns one result per applied
// operation. It stops at the first failing operation or when ctx is done;
// operations applied before that stay applied.
func (r *Runner) Apply(ctx context.Context, ed Editor, s *Script) ([]buffer.EditResult, error) {
	if r.maxOps > 0 && len(s.Ops) > r.maxOps {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyOps, len(s.Ops), r.maxOps)
	}

	results := make([]buffer.EditResult, 0, len(s.Ops))
	for i, op := range s.Ops {
		if err := ctx.Err(); err != nil {
			return results, &OpError{Index: i, Op: op, Err: err}
		}
		edit, err := op.Edit(ed.Len())
		if err != nil {
			return results, &OpError{Index: i, Op: op, Err: err}
		}
		res, err := ed.ApplyEdit(edit)
		if err != nil {
			return results, &OpError{Index: i, Op: op, Err: err}
		}
		results = append(results, res)
	}
	r.logger.Debug("applied %d ops from %q", len(results), s.Name)
	return results, nil
}

// Apply runs s against ed with a default runner.
func Apply(ctx context.Context, ed Editor, s *Script) ([]buffer.EditResult, error) {
	return NewRunner().Apply(ctx, ed, s)
}
