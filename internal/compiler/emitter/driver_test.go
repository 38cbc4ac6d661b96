package emitter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pld-lang/pld/internal/compiler/emitter"
	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	name string
	err  error
	ran  *bool
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Emit(rc *resolver.Context, opts emitter.Options, sink emitter.Sink) error {
	*s.ran = true
	if s.err != nil {
		return s.err
	}
	w, err := sink.Create("out.rs")
	if err != nil {
		return err
	}
	defer w.Close()
	_, err = w.Write([]byte("ok"))
	return err
}

func newContext(t *testing.T) *resolver.Context {
	t.Helper()
	rc := resolver.New()
	_, err := rc.AddFile(source.New("a.pld", "namespace demo;\nstruct P { a: i32; };\n"))
	require.NoError(t, err)
	return rc
}

func TestDriverRunsAllGeneratorsAndCollectsOutput(t *testing.T) {
	rc := newContext(t)
	sink := emitter.NewMemSink()
	ran := false
	job := emitter.Job{Generator: &stubGenerator{name: "stub", ran: &ran}, Options: emitter.Options{Language: "stub"}, Sink: sink}

	d := emitter.NewDriver(nil)
	err := d.Run(context.Background(), rc, []emitter.Job{job})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, []byte("ok"), sink.Snapshot()["out.rs"])
}

func TestDriverSurfacesGeneratorError(t *testing.T) {
	rc := newContext(t)
	ran := false
	job := emitter.Job{Generator: &stubGenerator{name: "broken", err: errors.New("boom"), ran: &ran}, Options: emitter.Options{Language: "broken"}, Sink: emitter.NewMemSink()}

	d := emitter.NewDriver(nil)
	err := d.Run(context.Background(), rc, []emitter.Job{job})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
