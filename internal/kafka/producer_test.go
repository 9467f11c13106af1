package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitClosed(t *testing.T, p *Producer) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		p.WaitClosed()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not shut down")
	}
}

func TestProducerCloseThenCancel(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "orders-test", 4)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	assert.NotPanics(t, func() {
		p.Close()
		cancel()
		p.Close()
	})
	waitClosed(t, p)
}

func TestProducerCancelThenClose(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "orders-test", 4)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	cancel()
	assert.NotPanics(t, p.Close)
	waitClosed(t, p)
}
