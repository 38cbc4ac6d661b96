package rustgen_test

import (
	"testing"

	"github.com/pld-lang/pld/internal/compiler/emitter"
	"github.com/pld-lang/pld/internal/compiler/emitter/rustgen"
	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitWritesOneFilePerNamespace(t *testing.T) {
	rc := resolver.New()
	_, err := rc.AddFile(source.New("billing.pld", `namespace billing;
struct Invoice { id: str; amount: i64; };
enum Status { Open = 0, Paid = 1 };
type Alias = i32;
`))
	require.NoError(t, err)

	sink := emitter.NewMemSink()
	gen := rustgen.New()
	require.NoError(t, gen.Emit(rc, emitter.Options{Language: "rust"}, sink))

	files := sink.Snapshot()
	require.Contains(t, files, "billing.rs")
	text := string(files["billing.rs"])
	assert.Contains(t, text, "pub struct Invoice")
	assert.Contains(t, text, "pub enum Status")
	assert.Contains(t, text, "pub type Alias = i32;")
}

func TestNameIsRust(t *testing.T) {
	assert.Equal(t, "rust", rustgen.New().Name())
}
