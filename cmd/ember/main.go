// Ember CLI - compiles and runs Ember expressions.
//
// Usage:
//   ember script.em          # compile and run a script
//   ember                    # start the REPL
//   ember -d script.em       # disassemble without executing
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/ember-lang/ember/cache"
	"github.com/ember-lang/ember/compiler"
	"github.com/ember-lang/ember/config"
	"github.com/ember-lang/ember/vm"
)

const prompt = "ember> "

var log = commonlog.GetLogger("ember")

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	interactive := flag.Bool("i", false, "Start interactive REPL")
	disasmOnly := flag.Bool("d", false, "Disassemble without executing")
	noCache := flag.Bool("no-cache", false, "Disable the compile cache")
	trace := flag.Bool("trace", false, "Verbose logging")
	configDir := flag.String("C", ".", "Directory to load ember.toml from")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ember [options] [script.em]\n\n")
		fmt.Fprintf(os.Stderr, "Compiles and runs a single Ember expression per script or REPL line.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ember calc.em          # Run a script\n")
		fmt.Fprintf(os.Stderr, "  ember                  # Start the REPL\n")
		fmt.Fprintf(os.Stderr, "  ember -d calc.em       # Show bytecode, don't execute\n")
	}
	flag.Parse()

	verbosity := 0
	if *trace {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(2)
	}
	if *disasmOnly {
		cfg.Debug.Disassemble = true
	}

	var store *cache.Store
	if cfg.Cache.Enabled && !*noCache {
		store, err = cache.Open(cfg.CachePath())
		if err != nil {
			// The cache is advisory; run without it.
			log.Errorf("compile cache unavailable: %s", err.Error())
			store = nil
		} else {
			defer store.Close()
		}
	}

	switch {
	case flag.NArg() > 1:
		flag.Usage()
		os.Exit(2)
	case flag.NArg() == 1 && !*interactive:
		os.Exit(runFile(flag.Arg(0), cfg, store, *disasmOnly))
	default:
		os.Exit(runRepl(cfg, store))
	}
}

// runFile compiles and executes a script file. Exit codes: 0 success, 1
// runtime fault, 2 compile error or unreadable script.
func runFile(path string, cfg *config.Config, store *cache.Store, disasmOnly bool) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read script file: %v\n", err)
		return 2
	}
	source := string(data)

	chunk, errs := compileSource(source, store)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 2
	}

	if cfg.Debug.Disassemble {
		chunk.Disassemble(os.Stdout)
		if disasmOnly {
			return 0
		}
	}

	result, err := vm.New().Run(chunk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		return 1
	}
	fmt.Println(result)
	return 0
}

// compileSource consults the compile cache before invoking the compiler,
// and fills it after a clean compile. Cache failures never fail the
// pipeline.
func compileSource(source string, store *cache.Store) (*vm.Chunk, []compiler.Error) {
	if store != nil {
		chunk, hit, err := store.Get(source)
		if err != nil {
			log.Errorf("cache lookup failed: %s", err.Error())
		} else if hit {
			log.Debugf("compile cache hit")
			return chunk, nil
		}
	}

	chunk, errs := compiler.Compile(source)
	if store != nil && len(errs) == 0 {
		if err := store.Put(source, chunk); err != nil {
			log.Errorf("cache store failed: %s", err.Error())
		}
	}
	return chunk, errs
}

// runRepl reads expressions line by line, compiling and executing each.
func runRepl(cfg *config.Config, store *cache.Store) int {
	fmt.Println("Ember REPL")
	fmt.Println("Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			// liner.ErrPromptAborted on Ctrl+C, io.EOF on Ctrl+D.
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			return 0
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		chunk, errs := compileSource(code, store)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, red(e.Error()))
			}
			continue
		}

		if cfg.Debug.Disassemble {
			chunk.Disassemble(os.Stdout)
		}

		result, err := vm.New().Run(chunk)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(fmt.Sprintf("Runtime error: %v", err)))
			continue
		}
		fmt.Println(blue(result.String()))
		ln.AppendHistory(code)
	}
}
