// Command lc3vm loads an LC-3 machine-code image and runs it to
// completion. Image loading, terminal setup/teardown, and signal
// handling live here rather than in package vm, per the core's
// external-collaborator contract.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"lc3vm/pkg/console"
	"lc3vm/pkg/loader"
	"lc3vm/pkg/vm"
)

// errLoadFailure wraps any error that prevents a run from starting at
// all (bad path, unusable terminal, malformed image), as distinct from
// an error raised by the machine once it is actually executing.
var errLoadFailure = errors.New("cannot prepare image")

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		log.Print(err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor classifies a run() error into the exit code lc3vm
// promises its caller: 1 for an illegal instruction encountered while
// executing, 2 for anything that kept the machine from starting.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, errLoadFailure):
		return 2
	case errors.Is(err, vm.ErrIllegalOpcode):
		return 1
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "lc3vm <image>",
		Short:         "Run an LC-3 machine-code image",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], verbose)
		},
	}
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the load address and word count before running")
	return root
}

func run(path string, verbose bool) error {
	fp, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errLoadFailure, err)
	}
	defer fp.Close()

	term, err := console.NewStdin()
	if err != nil {
		return fmt.Errorf("%w: cannot initialize console: %w", errLoadFailure, err)
	}
	defer term.Close()
	installInterruptHandler(term)

	machine := vm.New(term)
	origin, n, err := loader.Load(fp, &machine.Mem)
	if err != nil {
		return fmt.Errorf("%w: %w", errLoadFailure, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "lc3vm: loaded %d words at 0x%04x\n", n, origin)
	}

	return machine.Run()
}

// installInterruptHandler restores the terminal and exits with status
// 130 when the process receives SIGINT. While stdin is a terminal in
// raw mode, Ctrl-C does not raise SIGINT (raw mode turns off the
// terminal's signal keys); the keystroke reaches the guest as byte
// 0x03 instead. The VM loop itself never observes the interrupt;
// restoring terminal state here is purely a concern of this
// surrounding program.
func installInterruptHandler(term *console.Stdin) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		term.Close()
		os.Exit(130)
	}()
}
