package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	tscheme "github.com/kunedo/tscheme"
)

const banner = "Tscheme\n\n"

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-i init_file]\n", os.Args[0])
	os.Exit(1)
}

func main() {
	fs := flag.NewFlagSet("tscheme", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	initFile := fs.String("i", "./init.scm", "path to the init script")
	if err := fs.Parse(os.Args[1:]); err != nil {
		usage()
	}
	if fs.NArg() > 0 {
		usage()
	}

	it := tscheme.NewInterp(tscheme.Options{})

	fmt.Print(banner)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		for range ch {
			it.Interrupt()
		}
	}()

	if err := it.Load(*initFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error in init file.")
		os.Exit(1)
	}

	for {
		err := it.Run()
		if err == nil {
			os.Exit(0)
		}
		var fatal *tscheme.FatalError
		if errors.As(err, &fatal) {
			os.Exit(1)
		}
		// non-fatal: resume the toplevel
	}
}
