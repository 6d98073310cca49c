// Package maincmd implements the REPL shell around the interpreter core:
// stdin/stdout framing, the version banner, and capacity tuning through
// environment variables (spec 6: "REPL protocol"). Everything the core
// itself needs (reader, compiler, evaluator, environments) lives under
// lang/; this package only drives it one turn at a time.
package maincmd

import (
	"fmt"
	"io"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"

	"github.com/codr7/fibr/lang/interp"
)

const binName = "fibr"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...]
       %[1]s -h|--help
       %[1]s -v|--version

An interactive stack-oriented expression-language interpreter.

Forms are read from standard input until a ';' terminates a turn; the
turn is compiled and evaluated, and the resulting operand stack is
printed. There is no file mode: %[1]s only ever reads from stdin.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -d --debug                Write the per-opcode trace, once the
                                 'debug' function switches it on, to
                                 stdout; without this flag the trace
                                 is discarded.

Capacity bounds can be tuned through these environment variables:
FIBR_FORM_ARENA_CAP, FIBR_SCOPE_DEPTH, FIBR_ENV_CAP, FIBR_OPCODE_CAP,
FIBR_STACK_CAP, FIBR_REG_CAP and FIBR_FRAME_DEPTH.
`, binName)
)

// Cmd is the entry point mainer.Run dispatches to (spec 6).
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Debug   bool `flag:"d,debug"`

	args []string
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

// Validate implements mainer.Cmd. fibr takes no positional arguments: it is
// always a REPL reading stdin, never a file-processing tool (spec 6: "no
// files").
func (c *Cmd) Validate() error {
	if len(c.args) > 0 && !c.Help && !c.Version {
		return fmt.Errorf("unexpected argument: %s", c.args[0])
	}
	return nil
}

// limitsEnv mirrors interp.Limits, overridable per-field through the
// environment (spec section 5's capacity bounds are defaults, not hard
// constants baked into the binary).
type limitsEnv struct {
	FormArenaCap int `env:"FIBR_FORM_ARENA_CAP" envDefault:"8192"`
	ScopeDepth   int `env:"FIBR_SCOPE_DEPTH" envDefault:"64"`
	EnvCap       int `env:"FIBR_ENV_CAP" envDefault:"256"`
	OpcodeCap    int `env:"FIBR_OPCODE_CAP" envDefault:"16384"`
	StackCap     int `env:"FIBR_STACK_CAP" envDefault:"256"`
	RegCap       int `env:"FIBR_REG_CAP" envDefault:"32"`
	FrameDepth   int `env:"FIBR_FRAME_DEPTH" envDefault:"512"`
}

func loadLimits() (interp.Limits, error) {
	var cfg limitsEnv
	if err := env.Parse(&cfg); err != nil {
		return interp.Limits{}, fmt.Errorf("reading capacity limits: %w", err)
	}

	lim := interp.DefaultLimits
	lim.FormArenaCap = cfg.FormArenaCap
	lim.ScopeDepth = cfg.ScopeDepth
	lim.EnvCap = cfg.EnvCap
	lim.OpcodeCap = cfg.OpcodeCap
	lim.Machine.StackCap = cfg.StackCap
	lim.Machine.RegCap = cfg.RegCap
	lim.Machine.FrameDepth = cfg.FrameDepth
	return lim, nil
}

// Main implements mainer.Cmd.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	limits, err := loadLimits()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}

	var debugW io.Writer = io.Discard
	if c.Debug {
		debugW = stdio.Stdout
	}

	ip, err := interp.New("stdin", stdio.Stdin, limits, debugW)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}

	fmt.Fprintf(stdio.Stdout, "%s %s\n\n", binName, c.BuildVersion)
	return runREPL(ip, stdio)
}

func runREPL(ip *interp.Interp, stdio mainer.Stdio) mainer.ExitCode {
	for {
		stack, eof, err := ip.Turn()
		if eof {
			return mainer.Success
		}
		if err != nil {
			fmt.Fprintf(stdio.Stdout, "%s\n", ip.LastError())
			continue
		}

		fmt.Fprint(stdio.Stdout, "[")
		for _, v := range stack {
			fmt.Fprintf(stdio.Stdout, " %s", v)
		}
		fmt.Fprint(stdio.Stdout, " ]\n")
	}
}
