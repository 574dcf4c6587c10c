package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/vfpar/registro/internal/registry"
	"github.com/vfpar/registro/internal/state"
)

func TestProgram_LoadsSearchesAndQuits(t *testing.T) {
	store := &state.Store{}
	loader := state.NewLoader(store, sourceFunc(func(context.Context) ([]registry.Company, error) {
		return sampleCompanies(), nil
	}), nil)

	tm := teatest.NewTestModel(t, New(Options{Store: store, Loader: loader}),
		teatest.WithInitialTermSize(testWidth, testHeight),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Acme Ltda"))
	}, teatest.WithCheckInterval(50*time.Millisecond), teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	tm.Type("curitiba")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	if !ok {
		t.Fatalf("final model has unexpected type")
	}
	if final.snapshot.SearchTerm != "curitiba" {
		t.Fatalf("SearchTerm = %q, want curitiba", final.snapshot.SearchTerm)
	}
	if len(final.visible) != 1 || final.visible[0].Name != "Gama Comércio" {
		t.Fatalf("visible = %#v, want only Gama Comércio", final.visible)
	}
	if final.snapshot.Status != state.StatusReady {
		t.Fatalf("Status = %v, want ready", final.snapshot.Status)
	}
}
