package gen

import "io"

// Emitter renders one output file from a resolved graph.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Generator                            │
//	│  (Orchestration: parallel rendering, atomic commit)         │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ uses
//	                          ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                         Emitter                             │
//	│  (Interface: one output file per emitter)                   │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ implemented by
//	        ┌───────────────┬─┴─────────────┬───────────────┐
//	        ▼               ▼               ▼               ▼
//	 ┌─────────────┐ ┌─────────────┐ ┌─────────────┐ ┌─────────────┐
//	 │   xmltmpl   │ │     cpp     │ │     lua     │ │   golang    │
//	 │ (template)  │ │ (.h / .cpp) │ │  (loader)   │ │  (feature)  │
//	 └─────────────┘ └─────────────┘ └─────────────┘ └─────────────┘
//
// Emitters are pure functions of the graph. They never touch the file
// system and may run concurrently: the Generator buffers their output and
// writes all files only after every emitter succeeded.
type Emitter interface {
	// Name returns the emitter name used in logs and errors (e.g., "cpp/header").
	Name() string
	// Filename returns the output file name, relative to the target directory.
	Filename(g *Graph) string
	// Emit writes the file content to w.
	Emit(w io.Writer, g *Graph) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc struct {
	ID   string
	File func(*Graph) string
	Fn   func(io.Writer, *Graph) error
}

// Name implements Emitter.
func (e EmitterFunc) Name() string { return e.ID }

// Filename implements Emitter.
func (e EmitterFunc) Filename(g *Graph) string { return e.File(g) }

// Emit implements Emitter.
func (e EmitterFunc) Emit(w io.Writer, g *Graph) error { return e.Fn(w, g) }
