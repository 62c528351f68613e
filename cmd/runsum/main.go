// Command runsum wraps commands and test suites, capturing their full
// output to a log file and emitting a one-line structured summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/deixis/runsum"
	"github.com/deixis/runsum/internal/config"
	"github.com/deixis/runsum/internal/detect"
	runsummcp "github.com/deixis/runsum/internal/mcp"
	"github.com/deixis/runsum/internal/record"
	"github.com/deixis/runsum/internal/report"
	"github.com/deixis/runsum/internal/runner"
	"github.com/deixis/runsum/internal/workflow"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("runsum: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "run":
		os.Exit(runMain(args))
	case "test":
		os.Exit(testMain(args))
	case "mcp":
		if err := mcpMain(args); err != nil {
			log.Fatal(err)
		}
	case "version":
		fmt.Println(runsum.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "runsum: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: runsum <command> [flags] [args]

Commands:
  run         Run a command, capture its output, print a summary record
  test        Run the project's test suite with runner auto-detection
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

runsum's exit code mirrors the wrapped command's exit code; a usage or
detection error exits 1 with an error record on stderr.

Use "runsum <command> -h" for command-specific flags.`)
}

// --- run ---

func runMain(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	label := fs.String("label", "cmd", "log file label; the log is written as <label>.log")
	logDir := fs.String("log-dir", "", "override the configured log directory")
	jsonFlag := fs.Bool("json", false, "also print the full result as JSON")
	_ = fs.Parse(args)

	command := fs.Args()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine(*logDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, record.RenderError(err.Error()))
		return 1
	}

	rr, err := eng.RunCommand(ctx, command, *label)
	if err != nil {
		fmt.Fprintln(os.Stderr, record.RenderError(err.Error()))
		return 1
	}

	emit(rr, *jsonFlag)
	return rr.ExitCode
}

// --- test ---

func testMain(args []string) int {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	runnerFlag := fs.String("runner", "auto", "test runner: pytest, jest, go, cargo or auto")
	logDir := fs.String("log-dir", "", "override the configured log directory")
	jsonFlag := fs.Bool("json", false, "also print the full result as JSON")
	_ = fs.Parse(args)

	kind, err := detect.ParseKind(*runnerFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, record.RenderError(err.Error()))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine(*logDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, record.RenderError(err.Error()))
		return 1
	}

	rr, err := eng.RunTests(ctx, fs.Args(), kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, record.RenderError(err.Error()))
		return 1
	}

	emit(rr, *jsonFlag)
	return rr.ExitCode
}

// emit prints the single-line record, optionally followed by the full
// result as JSON for callers that want every field.
func emit(rr *report.RunResult, asJSON bool) {
	fmt.Println(record.Render(rr))
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rr)
	}
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(runsummcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	workspace, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining workspace: %w", err)
	}

	loaded, err := config.Load(workspace)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := report.NewLRUStore(5, report.NewDiskStore())
	r := &runner.Runner{LogDir: loaded.LogDir()}

	server := runsummcp.NewServer(loaded.Config, r, store, workspace)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- shared ---

func newEngine(logDirOverride string) (*workflow.Engine, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining workspace: %w", err)
	}

	loaded, err := config.Load(workspace)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logDir := loaded.LogDir()
	if logDirOverride != "" {
		logDir = logDirOverride
	}

	return &workflow.Engine{
		Config:    loaded.Config,
		Runner:    &runner.Runner{LogDir: logDir},
		Workspace: workspace,
	}, nil
}
