// Package cmd implements the CLI command structure for simpletodo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/simpletodo/internal/config"
	"github.com/nibzard/simpletodo/internal/export"
	"github.com/nibzard/simpletodo/internal/logging"
	"github.com/nibzard/simpletodo/internal/todo"
	"github.com/nibzard/simpletodo/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the simpletodo CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand, or a bare file path, opens the editor.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "log":
		return logCommand(cfg, remainingArgs)
	case "config":
		return configCommand(remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return tuiCommand(ctx, cfg, append([]string{subcommand}, remainingArgs...))
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the editor, loading the given file or cfg.OpenFile.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simpletodo tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	startup := cfg.OpenFile
	if len(remaining) == 1 {
		startup = remaining[0]
	}

	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	runLog, err := logging.NewRunLogger(cfg.LogDir, cfg.WorkDir, logOptions(cfg))
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer runLog.Close()

	logger := runLog.Logger
	logger.Info("starting editor", "version", Version, "work_dir", cfg.WorkDir, "file", startup)

	opts := []ui.Option{}
	if startup != "" {
		opts = append(opts, ui.WithStartupFile(startup))
	}
	if err := ui.RunTUI(ctx, cfg, todo.NewList(), logger, opts...); err != nil {
		logger.Error("editor stopped", "err", err)
		return err
	}
	logger.Info("editor closed")
	return nil
}

// lsCommand prints the tasks of a file, one per line.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simpletodo ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pending := fs.Bool("pending", false, "Only show tasks that are not done")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := fileArg(cfg, fs.Args(), 1)
	if err != nil {
		return err
	}
	tasks, err := todo.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	printed := 0
	for _, t := range tasks {
		if *pending && t.Done {
			continue
		}
		printTask(stdout, t)
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(stdout, "No tasks found.")
	}
	return nil
}

// exportCommand renders a task file as JSON or PDF.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simpletodo export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "", "Export format (json|pdf); default from the output extension")
	title := fs.String("title", "", "Document title (default: file name)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 2 {
		return fmt.Errorf("usage: %s export [-format json|pdf] <file> <out>", config.AppName)
	}
	path, err := fileArg(cfg, remaining[:1], 1)
	if err != nil {
		return err
	}
	out := remaining[1]

	var f export.Format
	if *format != "" {
		if f, err = export.ParseFormat(*format); err != nil {
			return err
		}
	}

	list := todo.NewList()
	if err := list.Load(path); err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	docTitle := *title
	if docTitle == "" {
		docTitle = ui.AppTitle + " - " + filepath.Base(list.Path())
	}
	if err := export.ToFile(out, f, docTitle, list.Tasks()); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	fmt.Fprintf(stdout, "Exported %d tasks to %s\n", list.Len(), out)
	return nil
}

// logCommand prints the latest run log of the working directory.
func logCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simpletodo log", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pathOnly := fs.Bool("path", false, "Only print the log file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}
	if *pathOnly {
		fmt.Fprintln(stdout, logPath)
		return nil
	}
	return logging.CopyLog(stdout, logPath)
}

// configCommand prints an example configuration file.
func configCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	fmt.Fprint(stdout, config.ExampleConfig())
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "%s version %s\n", config.AppName, Version)
	return nil
}

// fileArg resolves the task file argument, falling back to cfg.OpenFile.
func fileArg(cfg *config.Config, args []string, max int) (string, error) {
	if len(args) > max {
		return "", fmt.Errorf("unexpected arguments: %v", args[max:])
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.OpenFile != "" {
		return cfg.OpenFile, nil
	}
	return "", fmt.Errorf("no task file given")
}

func logOptions(cfg *config.Config) logging.Options {
	return logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
		Prefix:     config.AppName,
	}
}

func printTask(w io.Writer, t todo.Task) {
	check := "[ ]"
	if t.Done {
		check = "[x]"
	}
	fmt.Fprintf(w, "%s %s %s\n", check, t.Date, t.Name)
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Simple ToDo - a terminal task list editor")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  simpletodo [options] [command] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]     Open the editor (default command)")
	fmt.Fprintln(w, "  ls [file]      Print the tasks of a file")
	fmt.Fprintln(w, "  export <file> <out>")
	fmt.Fprintln(w, "                 Write a file as JSON or PDF")
	fmt.Fprintln(w, "  log            Print the latest run log")
	fmt.Fprintln(w, "  config         Print an example config file")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -pending    Only show tasks that are not done")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        json or pdf (default: from the output extension)")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        Document title (default: file name)")
}
