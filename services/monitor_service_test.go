package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"stackforge/internal/models"
)

func TestMonitorStopsOnContextCancel(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("fine", healthyProbe("fine"))
	h.Register("broken", func(ctx context.Context) (models.ComponentStatus, error) {
		return models.ComponentStatus{}, errors.New("down")
	})

	m := NewMonitorService(h, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after context cancellation")
	}
}
