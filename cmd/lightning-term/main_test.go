package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestPollEventsDone(t *testing.T) {
	poll := func() tcell.Event {
		return tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	}
	done := make(chan struct{})
	events := pollEvents(poll, done)

	if ev := <-events; ev == nil {
		t.Fatal("expected an event")
	}

	// the goroutine must exit once done is closed
	close(done)
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event goroutine still running after done was closed")
		}
	}
}

func TestPollEventsFinished(t *testing.T) {
	n := 0
	poll := func() tcell.Event {
		n++
		if n > 2 {
			return nil
		}
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	}
	events := pollEvents(poll, make(chan struct{}))

	count := 0
	for range events {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}
}
