// Package schema owns the process-wide "active schema" state and the only
// sanctioned way to change it. Every operation that needs to touch another
// tenant's tables goes through Context.RunIn, which restores the previous
// schema on every exit path.
package schema

import (
	"context"
	"fmt"
)

// Engine is the storage engine's schema-switch primitive set. The postgres
// implementation lives in this package; tests substitute a fake.
//
//go:generate mockery --name Engine --output ../mocks
type Engine interface {
	// CurrentSchema returns the name of the currently active schema.
	CurrentSchema() string
	// UseSchema makes the named schema the active one for subsequent
	// storage operations.
	UseSchema(name string) error
	// CreateSchema allocates a new isolated schema.
	CreateSchema(ctx context.Context, name string) error
	// DropSchema drops a schema and everything in it.
	DropSchema(ctx context.Context, name string) error
}

// Context provides scoped schema switching over an Engine.
type Context struct {
	engine Engine
}

func NewContext(engine Engine) *Context {
	return &Context{engine: engine}
}

// Current returns the active schema name.
func (c *Context) Current() string {
	return c.engine.CurrentSchema()
}

// Engine exposes the underlying engine for schema create/drop during
// provisioning and rollback.
func (c *Context) Engine() Engine {
	return c.engine
}

// RunIn switches the active schema to name, runs fn, and restores the schema
// that was active on entry before returning -- whether fn returns normally
// or with an error. Calls nest: each level restores to its immediate
// enclosing schema. A failed restore leaves the process with corrupted
// ambient state, so it panics instead of returning.
func (c *Context) RunIn(name string, fn func() error) error {
	saved := c.engine.CurrentSchema()
	if err := c.engine.UseSchema(name); err != nil {
		return fmt.Errorf("switch to schema %q: %w", name, err)
	}
	defer func() {
		if err := c.engine.UseSchema(saved); err != nil {
			panic(fmt.Sprintf("schema: restore to %q failed, ambient state corrupted: %v", saved, err))
		}
	}()
	return fn()
}
