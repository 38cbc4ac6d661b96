// Package introspect exposes a read-only HTTP view over a resolved
// schema: every namespace, its declarations, and one declaration's
// detail, as JSON. Meant for editor plugins or CI dashboards that don't
// want to speak LSP. Grounded on the teacher's internal/web/router chi
// wiring (mux construction, one handler per route), but the teacher's
// router generates CRUD routes for a web app's resources — this package
// has no analogue for that, so only the chi wiring itself carries over;
// the routes and their handlers are new, because spec.md §6 "persisted
// state: none" rules out every mutation route the teacher's CRUD
// generator produces.
package introspect

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/tooling"
)

// NewRouter builds the introspection HTTP surface over api. Routes:
//
//	GET /namespaces                      -> []string
//	GET /namespaces/{path}                -> namespaceView
//	GET /namespaces/{path}/{kind}/{name}   -> declView
func NewRouter(api *tooling.API) http.Handler {
	r := chi.NewRouter()
	h := &handlers{api: api}

	r.Get("/namespaces", h.listNamespaces)
	r.Get("/namespaces/{path}", h.showNamespace)
	r.Get("/namespaces/{path}/{kind}/{name}", h.showDecl)

	return r
}

type handlers struct {
	api *tooling.API
}

type namespaceView struct {
	Path    string      `json:"path"`
	Symbols []symbolRef `json:"symbols"`
}

type symbolRef struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type declView struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Hover string `json:"hover"`
}

func (h *handlers) listNamespaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.api.Context().Namespaces())
}

func (h *handlers) showNamespace(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")
	ns := h.api.Context().Namespace(path)
	if ns == nil {
		writeError(w, http.StatusNotFound, "namespace not found: "+path)
		return
	}

	names := make([]string, 0, len(ns.Symbols))
	for name := range ns.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	view := namespaceView{Path: ns.Path}
	for _, name := range names {
		view.Symbols = append(view.Symbols, symbolRef{Name: name, Kind: declKind(ns.Symbols[name])})
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) showDecl(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")
	kind := chi.URLParam(r, "kind")
	name := chi.URLParam(r, "name")

	decl, ok := h.api.Definition(path, []string{name})
	if !ok {
		writeError(w, http.StatusNotFound, "symbol not found: "+path+"::"+name)
		return
	}
	if declKind(decl) != kind {
		writeError(w, http.StatusNotFound, "symbol "+name+" is not a "+kind)
		return
	}

	hover, _ := h.api.Hover(path, []string{name})
	writeJSON(w, http.StatusOK, declView{Name: decl.DeclName(), Kind: kind, Hover: hover})
}

func declKind(d ast.Decl) string {
	switch d.(type) {
	case *ast.StructDecl:
		return "struct"
	case *ast.EnumDecl:
		return "enum"
	case *ast.OneofDecl:
		return "oneof"
	case *ast.ErrorDecl:
		return "error"
	case *ast.TypeAliasDecl:
		return "type"
	case *ast.OperationDecl:
		return "operation"
	default:
		return "unknown"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
