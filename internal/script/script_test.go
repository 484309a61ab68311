package script

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/chunkdoc/internal/engine/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyScenario(t *testing.T) {
	buf := buffer.NewBuffer()
	s := &Script{Ops: []Op{
		{Kind: OpInsert, At: 0, Text: "ab\ncd"},
		{Kind: OpDelete, At: 1, End: 4},
	}}

	results, err := Apply(context.Background(), buf, s)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "ad", buf.Text())
	assert.Equal(t, "b\nc", results[1].OldText)
}

func TestApplyAllKinds(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	s := &Script{Ops: []Op{
		{Kind: OpPush, Text: " world"},
		{Kind: OpReplace, At: 0, End: 5, Text: "goodbye"},
		{Kind: OpInsert, At: 0, Text: "> "},
		{Kind: OpDelete, At: 9, End: 100},
	}}

	_, err := Apply(context.Background(), buf, s)
	require.NoError(t, err)
	assert.Equal(t, "> goodbye", buf.Text())
}

func TestApplyStopsAtFailingOp(t *testing.T) {
	buf := buffer.NewBufferFromString("abc")
	s := &Script{Ops: []Op{
		{Kind: OpPush, Text: "d"},
		{Kind: OpInsert, At: 99, Text: "x"},
		{Kind: OpPush, Text: "never"},
	}}

	results, err := Apply(context.Background(), buf, s)
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, 1, opErr.Index)
	assert.True(t, errors.Is(err, buffer.ErrOffsetOutOfRange))
	assert.Len(t, results, 1)
	assert.Equal(t, "abcd", buf.Text())
}

func TestApplyUnknownOp(t *testing.T) {
	_, err := Apply(context.Background(), buffer.NewBuffer(), &Script{Ops: []Op{{Kind: "upsert"}}})
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestApplyHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := buffer.NewBuffer()
	_, err := Apply(ctx, buf, &Script{Ops: []Op{{Kind: OpPush, Text: "x"}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, buf.IsEmpty())
}

func TestRunnerMaxOps(t *testing.T) {
	r := NewRunner(WithMaxOps(1))
	buf := buffer.NewBuffer()
	_, err := r.Apply(context.Background(), buf, &Script{Ops: []Op{{Kind: OpPush, Text: "a"}, {Kind: OpPush, Text: "b"}}})
	assert.ErrorIs(t, err, ErrTooManyOps)
	assert.True(t, buf.IsEmpty())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, `push "x"`, Op{Kind: OpPush, Text: "x"}.String())
	assert.Equal(t, `insert 2 "x"`, Op{Kind: OpInsert, At: 2, Text: "x"}.String())
	assert.Equal(t, "delete [1:3)", Op{Kind: OpDelete, At: 1, End: 3}.String())
	assert.Equal(t, `replace [1:3) "y"`, Op{Kind: OpReplace, At: 1, End: 3, Text: "y"}.String())
}
