package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"findex/internal/database"
)

const (
	// Default timeout for database operations
	defaultTimeout = 30 * time.Second
	// Default database directory path
	defaultDatabaseDir = "/data"
)

func main() {
	dbFlag := flag.String("db", "", "operate on this database file only")
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}
	command := flag.Arg(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	dbPaths := discoverDatabases(*dbFlag)
	if len(dbPaths) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no %s databases found\n", database.DBSuffix)
		fmt.Fprintln(os.Stderr, "Set DATABASE_DIR or pass -db explicitly")
		os.Exit(1)
	}

	ok := true
	for _, path := range dbPaths {
		if !runCommand(ctx, command, path) {
			ok = false
		}
	}
	if !ok {
		os.Exit(1)
	}
}

func discoverDatabases(dbFlag string) []string {
	if dbFlag != "" {
		return database.Discover([]string{dbFlag})
	}
	databaseDir := os.Getenv("DATABASE_DIR")
	if databaseDir == "" {
		databaseDir = defaultDatabaseDir
	}
	return database.Discover([]string{databaseDir})
}

func runCommand(ctx context.Context, command, path string) bool {
	db, err := database.New(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open %s: %v\n", path, err)
		return false
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", path, err)
		}
	}()

	switch command {
	case "vacuum":
		return vacuum(db, path)
	case "status":
		return showStatus(ctx, db, path)
	case "meta":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: meta requires a key argument")
			return false
		}
		return showMeta(ctx, db, path, flag.Arg(1))
	case "get":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: get requires a path argument")
			return false
		}
		return showRecord(ctx, db, path, flag.Arg(1))
	default:
		// Allowlist before echoing user input back
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitizeCommand(command))
		printUsage()
		return false
	}
}

// sanitizeCommand returns a safe representation of a command string for
// display, replacing anything outside [a-zA-Z0-9_-] with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage() {
	fmt.Println("Index Database Maintenance")
	fmt.Println("")
	fmt.Println("Usage: findexdbtool [-db file] <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  vacuum      - Reclaim unused space in the database file")
	fmt.Println("  status      - Print record count and last index run")
	fmt.Println("  meta <key>  - Print one metadata value")
	fmt.Println("  get <path>  - Print the indexed record for one path")
	fmt.Println("")
	fmt.Println("Environment:")
	fmt.Printf("  DATABASE_DIR - Directory to search for databases (default: %s)\n", defaultDatabaseDir)
}

func vacuum(db *database.Database, path string) bool {
	before := fileSize(path)
	if err := db.Vacuum(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: vacuum of %s failed: %v\n", path, err)
		return false
	}
	after := fileSize(path)
	fmt.Printf("%s: vacuumed, %d -> %d bytes\n", path, before, after)
	return true
}

func showStatus(ctx context.Context, db *database.Database, path string) bool {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stats, err := db.Stats(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading stats from %s: %v\n", path, err)
		return false
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  Records:       %d\n", stats.TotalRecords)
	if stats.LastIndexed != "" {
		fmt.Printf("  Last indexed:  %s\n", stats.LastIndexed)
	}
	if stats.IndexDuration != "" {
		fmt.Printf("  Last duration: %s\n", stats.IndexDuration)
	}
	fmt.Printf("  File size:     %d bytes\n", fileSize(path))
	return true
}

func showMeta(ctx context.Context, db *database.Database, path, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	value, err := db.GetMeta(ctx, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading %q from %s: %v\n", key, path, err)
		return false
	}
	if value == "" {
		fmt.Printf("%s: %s is not set\n", path, key)
		return true
	}
	fmt.Printf("%s: %s = %s\n", path, key, value)
	return true
}

func showRecord(ctx context.Context, db *database.Database, path, recordPath string) bool {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec, err := db.GetRecord(ctx, recordPath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fmt.Printf("%s: no record for %s\n", path, recordPath)
			return true
		}
		fmt.Fprintf(os.Stderr, "Error: reading record from %s: %v\n", path, err)
		return false
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  Path:  %s\n", rec.Path)
	fmt.Printf("  Name:  %s\n", rec.Name)
	if rec.MTime != nil {
		fmt.Printf("  MTime: %s\n", time.Unix(0, int64(*rec.MTime*1e9)).UTC().Format(time.RFC3339))
	}
	if rec.Size != nil {
		fmt.Printf("  Size:  %d bytes\n", *rec.Size)
	}
	return true
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
