// Package main implements the uniqueptr CLI tool.
//
// The uniqueptr tool exercises the pointer-handle runtime from the
// command line. It can:
//
//  1. Link a reference-counted tree and walk it (demo)
//  2. Run a deliberately sloppy workload and print the leak report (leaks)
//  3. Report the runtime version (version)
//
// Usage:
//
//	uniqueptr demo -nodes 8 -verbose
//	uniqueptr leaks -json
//	uniqueptr version
//
// Flags may also be provided through the environment or a config file;
// see the goconfig conventions.
//
// This is the CLI entry point for the handle runtime.
package main

import (
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	json "github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kolkov/uniqueptr/binarytree"
	"github.com/kolkov/uniqueptr/conscell"
	"github.com/kolkov/uniqueptr/internal/ptr/addrfmt"
	"github.com/kolkov/uniqueptr/ptr"
)

// Config carries the flags shared by the subcommands.
type Config struct {
	Nodes   int  `usage:"number of nodes the demo links into the tree"`
	Leaks   int  `usage:"number of allocations the leaks command abandons"`
	JSON    bool `usage:"emit reports as JSON"`
	Color   bool `usage:"render addresses with ANSI colors"`
	Verbose bool `usage:"log every handle operation"`
}

func main() {
	command := "help"
	if len(os.Args) > 1 {
		command = os.Args[1]
		// The flag parser must not see the subcommand.
		os.Args = append(os.Args[:1], os.Args[2:]...)
	}

	c := Config{
		Nodes: 6,
		Leaks: 3,
	}
	goconfig.Read(&c)

	switch command {
	case "demo":
		demoCommand(c)
	case "leaks":
		leaksCommand(c)
	case "version", "--version", "-v":
		versionCommand(c)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`uniqueptr - Pointer Handle Runtime Tool

USAGE:
    uniqueptr <command> [flags]

COMMANDS:
    demo       Link a reference-counted tree and walk it
    leaks      Run a sloppy workload and print the leak report
    version    Show version information
    help       Show this help message

FLAGS:
    -nodes     Number of nodes the demo links into the tree (default 6)
    -leaks     Number of allocations the leaks command abandons (default 3)
    -json      Emit reports as JSON
    -color     Render addresses with ANSI colors
    -verbose   Log every handle operation

EXAMPLES:
    # Link a larger tree and log every operation
    uniqueptr demo -nodes 12 -verbose

    # Abandon five allocations and dump the report as JSON
    uniqueptr leaks -leaks 5 -json

    # Show the runtime version
    uniqueptr version

ABOUT:
    uniqueptr is a manually-managed, reference-counted pointer handle
    for self-referential data structures: trees whose nodes point back
    at their parents, lists whose cells share counters down the chain.
    The handles track every allocation they make, so an allocation no
    handle ever released can be named after the fact.

    The runtime is single-threaded by contract and runs on top of the
    ordinary collected heap: freeing a handle drops its pointer and
    lets the garbage collector do the reclamation.

FOR MORE INFORMATION:
    Repository: https://github.com/kolkov/uniqueptr

`)
}

// demoCommand links a tree of generated payloads, walks it in value
// order, then releases the builder's handles and reports what the links
// alone keep alive.
func demoCommand(c Config) {
	logger := newLogger(c.Verbose)
	defer logger.Sync() //nolint:errcheck // stderr sink

	if c.Nodes < 1 {
		fmt.Fprintln(os.Stderr, "Error: -nodes must be at least 1")
		os.Exit(1)
	}

	fmt.Printf("linking %d nodes\n", c.Nodes)

	root := binarytree.New(binarytree.Str(uuid.NewString()[:8]))
	logger.Info("root created",
		zap.String("value", root.Item().Text()),
		zap.Uint64("refs", root.Refs()),
		zap.Uintptr("addr", root.Addr()),
	)

	nodes := []*binarytree.Node{root}
	for i := 1; i < c.Nodes; i++ {
		node := binarytree.New(binarytree.Str(uuid.NewString()[:8]))
		root.SubtreeInsertAfter(node)
		nodes = append(nodes, node)
		logger.Info("node linked",
			zap.String("value", node.Item().Text()),
			zap.Uint64("refs", node.Refs()),
			zap.Uint64("root_refs", root.Refs()),
			zap.Int("depth", node.Depth()),
		)
	}

	// Successor wraps around at the last node, so the walk is bounded
	// by the number of nodes instead of by identity.
	fmt.Print("in-order walk: ")
	walker := root.SubtreeFirst()
	for i := 0; i < len(nodes); i++ {
		fmt.Printf("%s ", walker.Item())
		walker = walker.Successor()
	}
	fmt.Println()

	list := conscell.Nil()
	for _, node := range nodes {
		list.Push(conscell.Sym(node.Item().Text()))
	}
	fmt.Printf("as a cons list: %s\n", list)

	for i := len(nodes) - 1; i >= 0; i-- {
		nodes[i].Dealloc()
	}
	logger.Info("builder released its handles", zap.Uint64("root_refs", root.Refs()))

	fmt.Printf("root %s settled at refs=%d\n", renderAddr(root.Addr(), c.Color), root.Refs())
}

// leaksCommand abandons a handful of allocations on purpose and prints
// the report that names them.
func leaksCommand(c Config) {
	logger := newLogger(c.Verbose)
	defer logger.Sync() //nolint:errcheck // stderr sink

	if c.Leaks < 0 {
		fmt.Fprintln(os.Stderr, "Error: -leaks must not be negative")
		os.Exit(1)
	}

	ptr.EnableLeakTracking()
	defer ptr.DisableLeakTracking()

	// One allocation handled correctly, to show releases are forgotten.
	kept := ptr.From(uuid.NewString())
	kept.Dealloc(true)
	kept.Dealloc(true)
	logger.Info("released one allocation cleanly", zap.Int("live", ptr.LiveCount()))

	for i := 0; i < c.Leaks; i++ {
		leaked := ptr.From(uuid.NewString())
		logger.Info("abandoning allocation",
			zap.String("addr", renderAddr(leaked.Addr(), c.Color)),
			zap.Uint64("refs", leaked.Refs()),
		)
	}

	if c.JSON {
		if err := ptr.WriteLeakJSON(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
	} else {
		ptr.WriteLeakReport(os.Stdout)
	}

	if live := ptr.LiveCount(); live > 0 {
		fmt.Fprintf(os.Stderr, "Found %d live allocation(s)\n", live)
		os.Exit(1)
	}
}

// versionCommand reports the runtime version, plain or as JSON.
func versionCommand(c Config) {
	info := ptr.GetInfo()
	if c.JSON {
		if err := json.MarshalWrite(os.Stdout, info); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
		return
	}
	fmt.Printf("uniqueptr version %s (%s)\n", info.Version, info.Model)
}

// newLogger builds the operation logger: a development logger when
// verbose, a no-op logger otherwise.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// renderAddr formats an address, honoring the color flag.
func renderAddr(addr uintptr, color bool) string {
	if color {
		return addrfmt.Addr(addr)
	}
	return fmt.Sprintf("0x%016x", uint64(addr))
}
