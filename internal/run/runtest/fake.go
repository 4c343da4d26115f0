// Package runtest provides a scripted fake Runner for testing
// orchestration code without spawning external processes.
package runtest

import (
	"fmt"
	"strings"
)

// Call records a single invocation made against the fake.
type Call struct {
	// Dir is the working directory the command was invoked with.
	Dir string

	// Argv is the command name followed by its arguments.
	Argv []string

	// Interactive indicates the call went through RunInteractive.
	Interactive bool
}

// String renders the call as a shell-like line for assertion messages.
func (c Call) String() string {
	return strings.Join(c.Argv, " ")
}

// Response scripts the outcome of a matched invocation.
type Response struct {
	// Stdout is returned from Run. Ignored for interactive calls.
	Stdout string

	// Err is returned as the invocation's error.
	Err error
}

// FakeRunner is a Runner that matches invocations against scripted
// responses by command prefix and records every call it sees.
//
// Unmatched captured invocations return empty output and no error, which
// mirrors a succeeding external command with nothing to say. Tests that
// care about a specific command script it with Stub.
type FakeRunner struct {
	// Calls is the ordered log of every invocation.
	Calls []Call

	// Missing lists names that LookPath should report as not found.
	Missing []string

	stubs map[string]Response
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{stubs: map[string]Response{}}
}

// Stub registers a response for any invocation whose argv begins with the
// space-joined prefix (e.g. "git rev-parse --verify HEAD" or "gh auth").
// Later stubs with the same prefix replace earlier ones.
func (f *FakeRunner) Stub(prefix string, resp Response) {
	f.stubs[prefix] = resp
}

// StubError is shorthand for scripting a failing invocation.
func (f *FakeRunner) StubError(prefix, message string) {
	f.Stub(prefix, Response{Err: fmt.Errorf("%s", message)})
}

// Run implements run.Runner.
func (f *FakeRunner) Run(dir, name string, args ...string) (string, error) {
	argv := append([]string{name}, args...)
	f.Calls = append(f.Calls, Call{Dir: dir, Argv: argv})

	resp, ok := f.match(argv)
	if !ok {
		return "", nil
	}
	return resp.Stdout, resp.Err
}

// RunInteractive implements run.Runner.
func (f *FakeRunner) RunInteractive(dir, name string, args ...string) error {
	argv := append([]string{name}, args...)
	f.Calls = append(f.Calls, Call{Dir: dir, Argv: argv, Interactive: true})

	resp, ok := f.match(argv)
	if !ok {
		return nil
	}
	return resp.Err
}

// LookPath implements run.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	for _, m := range f.Missing {
		if m == name {
			return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
		}
	}
	return "/usr/bin/" + name, nil
}

// CommandLines returns every recorded invocation as a shell-like line,
// in order. Convenient for asserting on the overall command sequence.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

// Ran reports whether any recorded invocation begins with the
// space-joined prefix.
func (f *FakeRunner) Ran(prefix string) bool {
	for _, line := range f.CommandLines() {
		if line == prefix || strings.HasPrefix(line, prefix+" ") {
			return true
		}
	}
	return false
}

// match finds the longest stub prefix matching argv. Longest-prefix wins so
// "git rev-parse --verify HEAD" can be scripted independently of a broader
// "git rev-parse" stub.
func (f *FakeRunner) match(argv []string) (Response, bool) {
	line := strings.Join(argv, " ")
	bestLen := -1
	var best Response
	for prefix, resp := range f.stubs {
		if line == prefix || strings.HasPrefix(line, prefix+" ") {
			if len(prefix) > bestLen {
				bestLen = len(prefix)
				best = resp
			}
		}
	}
	return best, bestLen >= 0
}
