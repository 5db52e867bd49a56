package workers

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
)

type fakeWorker struct {
	name     string
	startErr error
	events   *[]string
}

func (w *fakeWorker) Start() error {
	if w.startErr != nil {
		return w.startErr
	}
	*w.events = append(*w.events, "start "+w.name)
	return nil
}

func (w *fakeWorker) Stop() {
	*w.events = append(*w.events, "stop "+w.name)
}

func (w *fakeWorker) Name() string { return w.name }

func TestManager(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("stops in reverse order", func(t *testing.T) {
		var events []string
		m := NewManager(logger,
			&fakeWorker{name: "a", events: &events},
			&fakeWorker{name: "b", events: &events},
		)

		if err := m.Start(); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		m.Stop()

		want := []string{"start a", "start b", "stop b", "stop a"}
		if !reflect.DeepEqual(events, want) {
			t.Errorf("events = %v, want %v", events, want)
		}
	})

	t.Run("rolls back on start failure", func(t *testing.T) {
		var events []string
		m := NewManager(logger,
			&fakeWorker{name: "a", events: &events},
			&fakeWorker{name: "b", events: &events, startErr: errors.New("boom")},
			&fakeWorker{name: "c", events: &events},
		)

		if err := m.Start(); err == nil {
			t.Fatal("Start() error = nil, want error")
		}

		want := []string{"start a", "stop a"}
		if !reflect.DeepEqual(events, want) {
			t.Errorf("events = %v, want %v", events, want)
		}
	})
}
