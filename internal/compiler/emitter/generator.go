package emitter

import "github.com/pld-lang/pld/internal/compiler/resolver"

// Generator is one target-language code generator. Its Name is used for
// log correlation and manifest `languages` matching; Emit receives the
// fully resolved context and is responsible for iterating namespaces and
// writing through the supplied Sink. Implementations are free to fan out
// per-namespace work internally (rustgen does not; it emits namespaces
// one after another) — the driver only parallelizes across languages,
// not within one.
type Generator interface {
	Name() string
	Emit(rc *resolver.Context, opts Options, sink Sink) error
}
