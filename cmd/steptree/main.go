// Command steptree reads a JSON-lines log file of LoggingEvents in this
// module's event JSON encoding, reconstructs the step tree from its Progress-severity
// lines, and prints it to standard output, flagging any close marker that
// does not match the step currently open on its internal stack.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
)

func main() {
	path := flag.String("log", "", "Path to a JSON-lines log file (required)")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "Usage: steptree -log <file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	_, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("steptree: open log: %v", err)
	}
	defer f.Close()

	if err := printStepTree(os.Stdout, f); err != nil {
		log.Fatalf("steptree: %v", err)
	}
}
