// Command migrate applies and authors the schema migrations under
// app.migrations_path.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"github.com/jewelry-erp/backend/internal/infrastructure/logger"
	"github.com/jewelry-erp/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

// command is one CLI verb. Offline commands only touch the migrations
// directory and never connect to the database.
type command struct {
	args    string
	help    string
	offline func(dir string, args []string) error
	online  func(m *migration.Migrator, args []string) error
}

var commands = map[string]command{
	"up":   {help: "Apply all pending migrations", online: func(m *migration.Migrator, _ []string) error { return m.Up() }},
	"down": {help: "Roll back all migrations", online: func(m *migration.Migrator, _ []string) error { return m.Down() }},
	"steps": {args: "<n>", help: "Apply n migrations (negative rolls back)", online: func(m *migration.Migrator, args []string) error {
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	}},
	"force": {args: "<version>", help: "Record version as applied without running it", online: func(m *migration.Migrator, args []string) error {
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		return m.Force(v)
	}},
	"version": {help: "Show the applied version and dirty flag", online: printVersion},
	"status":  {help: "List migrations on disk with their applied state", online: printStatus},
	"create":  {args: "<name>", help: "Create an empty up/down migration pair", offline: create},
	"list":    {help: "List migrations on disk", offline: list},
}

// order fixes the usage listing; map iteration is random.
var order = []string{"up", "down", "steps", "version", "status", "force", "create", "list"}

func main() {
	dir := flag.String("path", "", "Path to migrations directory (default: app.migrations_path)")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cmd, *dir, args, log); err != nil {
		log.Error("Migration command failed", zap.String("command", name), zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cmd command, dir string, args []string, log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if dir == "" {
		dir = cfg.App.MigrationsPath
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}
	log.Debug("Using migrations directory", zap.String("path", dir))

	if cmd.offline != nil {
		return cmd.offline(dir, args)
	}
	m, err := migration.Open(cfg.Database, dir, log)
	if err != nil {
		return err
	}
	return errors.Join(cmd.online(m, args), m.Close())
}

func create(dir string, args []string) error {
	if len(args) == 0 {
		return errors.New("migration name required")
	}
	mf, err := migration.CreateMigration(dir, args[0])
	if err != nil {
		return err
	}
	fmt.Println(mf.UpPath)
	fmt.Println(mf.DownPath)
	return nil
}

func list(dir string, _ []string) error {
	entries, err := migration.ListMigrations(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%06d  %s\n", e.Version, e.Name)
	}
	return nil
}

func printVersion(m *migration.Migrator, _ []string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	fmt.Printf("version: %d\ndirty:   %t\n", version, dirty)
	return nil
}

func printStatus(m *migration.Migrator, _ []string) error {
	entries, dirty, err := m.Status()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
	for _, e := range entries {
		fmt.Fprintf(w, "%06d\t%s\t%t\n", e.Version, e.Name, e.Applied)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if dirty {
		fmt.Println("\nschema is dirty: fix the failed migration, then run force <version>")
	}
	return nil
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return n, nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage: migrate [flags] <command> [arguments]\n\nCommands:")
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	for _, name := range order {
		c := commands[name]
		fmt.Fprintf(w, "  %s %s\t%s\n", name, c.args, c.help)
	}
	_ = w.Flush()
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
	fmt.Fprintln(out, "\nDatabase settings come from config.toml, .env and JEWELRY_DATABASE_* variables.")
}
