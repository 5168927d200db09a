package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// fakeEngine records schema switches in memory.
type fakeEngine struct {
	current  string
	switches []string
	failOn   map[string]error
}

func newFakeEngine(initial string) *fakeEngine {
	return &fakeEngine{current: initial, failOn: map[string]error{}}
}

func (e *fakeEngine) CurrentSchema() string { return e.current }

func (e *fakeEngine) UseSchema(name string) error {
	if err, ok := e.failOn[name]; ok {
		return err
	}
	e.current = name
	e.switches = append(e.switches, name)
	return nil
}

func (e *fakeEngine) CreateSchema(ctx context.Context, name string) error { return nil }
func (e *fakeEngine) DropSchema(ctx context.Context, name string) error   { return nil }

type ContextTestSuite struct {
	suite.Suite
	engine *fakeEngine
	sc     *Context
}

func (s *ContextTestSuite) SetupTest() {
	s.engine = newFakeEngine("public")
	s.sc = NewContext(s.engine)
}

func TestContext(t *testing.T) {
	suite.Run(t, new(ContextTestSuite))
}

func (s *ContextTestSuite) TestRunInSwitchesAndRestores() {
	var active string
	err := s.sc.RunIn("acme", func() error {
		active = s.sc.Current()
		return nil
	})

	s.NoError(err)
	s.Equal("acme", active)
	s.Equal("public", s.sc.Current())
}

func (s *ContextTestSuite) TestRunInRestoresOnError() {
	wantErr := errors.New("boom")
	err := s.sc.RunIn("acme", func() error {
		return wantErr
	})

	s.ErrorIs(err, wantErr)
	s.Equal("public", s.sc.Current())
}

func (s *ContextTestSuite) TestRunInRestoresOnPanic() {
	s.Panics(func() {
		_ = s.sc.RunIn("acme", func() error {
			panic("inner failure")
		})
	})
	s.Equal("public", s.sc.Current())
}

func (s *ContextTestSuite) TestRunInNests() {
	var inner, betweenLevels string
	err := s.sc.RunIn("outer", func() error {
		return s.sc.RunIn("inner", func() error {
			inner = s.sc.Current()
			return nil
		})
	})

	s.NoError(err)
	s.Equal("inner", inner)
	s.Equal("public", s.sc.Current())

	// Each level restores to its immediate enclosing schema.
	err = s.sc.RunIn("outer", func() error {
		if err := s.sc.RunIn("inner", func() error { return nil }); err != nil {
			return err
		}
		betweenLevels = s.sc.Current()
		return nil
	})
	s.NoError(err)
	s.Equal("outer", betweenLevels)
}

func (s *ContextTestSuite) TestRunInSwitchFailure() {
	s.engine.failOn["broken"] = errors.New("no such schema")

	called := false
	err := s.sc.RunIn("broken", func() error {
		called = true
		return nil
	})

	s.Error(err)
	s.False(called)
	s.Equal("public", s.sc.Current())
}

func (s *ContextTestSuite) TestRunInPanicsWhenRestoreFails() {
	s.Panics(func() {
		_ = s.sc.RunIn("acme", func() error {
			// Once inside, make the way back impossible.
			s.engine.failOn["public"] = errors.New("connection lost")
			return nil
		})
	})
}

func TestValidSchemaName(t *testing.T) {
	valid := []string{"public", "acme_1724990400", "_internal", "a"}
	for _, name := range valid {
		if !ValidSchemaName(name) {
			t.Errorf("ValidSchemaName(%q) = false, want true", name)
		}
	}

	invalid := []string{"", "1starts_with_digit", "has-dash", "Has_Upper", "white space", `quoted"name`}
	for _, name := range invalid {
		if ValidSchemaName(name) {
			t.Errorf("ValidSchemaName(%q) = true, want false", name)
		}
	}
}
