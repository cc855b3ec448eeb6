package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	assert.NotNil(t, NewInterruptHandler(nil).writer)
	assert.False(t, NewInterruptHandler(&bytes.Buffer{}).WasInterrupted())
}

func TestInterruptHandler_StopCancelsContext(t *testing.T) {
	h := NewInterruptHandler(&bytes.Buffer{})
	ctx, stop := h.HandleInterrupts(context.Background())

	stop()
	stop()

	<-ctx.Done()
	assert.False(t, h.WasInterrupted())
}

func TestInterruptHandler_MarkInterruptedOnce(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out)

	h.markInterrupted()
	h.markInterrupted()

	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Questionario interrotto")))
}
