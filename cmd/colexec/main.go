package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/kokes/colexec/internal/engine"
)

// global, so that we can inject it at build time
var (
	gitCommit      string
	buildTime      string
	buildGoVersion string
)

func main() {
	query := flag.String("query", "", "a single SQL statement to run")
	file := flag.String("file", "", "a file of semicolon-separated SQL statements to run in order")
	version := flag.Bool("version", false, "print the binary's version")
	flag.Parse()

	if *version {
		fmt.Printf("build commit: %v\nbuild time: %v\ngo version: %v\n", gitCommit, buildTime, buildGoVersion)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		defer signal.Stop(signals)

		select {
		case s := <-signals:
			log.Printf("signal %v received, aborting", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := run(ctx, *query, *file); err != nil {
		log.Fatal(err)
	}
}

// run executes query (if set) or every statement in file (if set), in
// order, against a single ExecutionContext, printing each query's rows
// to standard output.
func run(ctx context.Context, query, file string) error {
	statements, err := statementsFrom(query, file)
	if err != nil {
		return err
	}

	c := engine.NewExecutionContext(engine.Local())
	for _, stmt := range statements {
		if _, err := c.Run(ctx, stmt, os.Stdout); err != nil {
			return fmt.Errorf("running %q: %w", stmt, err)
		}
	}
	return nil
}

func statementsFrom(query, file string) ([]string, error) {
	if query != "" && file != "" {
		return nil, fmt.Errorf("specify either -query or -file, not both")
	}
	if query != "" {
		return []string{query}, nil
	}
	if file == "" {
		return nil, fmt.Errorf("specify -query or -file")
	}
	contents, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var statements []string
	for _, part := range strings.Split(string(contents), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		statements = append(statements, part)
	}
	return statements, nil
}
