package proc

import (
	"context"
	"strings"
)

// Call records one invocation made through a FakeRunner.
type Call struct {
	Name string
	Args []string
}

// FakeRunner is a scripted Runner for tests. Respond is consulted for every
// call; when nil the call succeeds with empty output.
type FakeRunner struct {
	Calls   []Call
	Respond func(name string, args []string) (Result, error)
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	f.Calls = append(f.Calls, Call{Name: name, Args: append([]string(nil), args...)})
	if f.Respond == nil {
		return Result{}, nil
	}
	return f.Respond(name, args)
}

// Last returns the most recent call, or the zero Call.
func (f *FakeRunner) Last() Call {
	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}

// String renders a call as a shell-like command line for assertions.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}
