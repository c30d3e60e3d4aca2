package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	AddFiles(ctx context.Context, paths []string) error
	List(ctx context.Context) error
	Remove(ctx context.Context, fileArg string) error
	Retry(ctx context.Context, fileArg string) error
	Ranges(ctx context.Context, fileArg string) error
	AddRange(ctx context.Context, fileArg string) error
	EditRange(ctx context.Context, fileArg, rangeArg string, fields []string) error
	RemoveRange(ctx context.Context, fileArg, rangeArg string) error
	Thumb(ctx context.Context, fileArg string) error
	Papers(ctx context.Context) error
	Status(ctx context.Context) error
	Next(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the wizard.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current wizard stage (from statusFn) and accepts:
//
//	help                          — show available commands
//	add <path> [path...]          — add local files (starts uploads)
//	ls | files                    — list draft files
//	rm <n>                        — remove an uploaded file
//	retry <n>                     — retry a failed upload
//	ranges <n>                    — show a file's page ranges
//	addrange <n>                  — append a range to a file
//	editrange <n> <r> k=v [k=v..] — edit a range (pages, paper, orient, ...)
//	rmrange <n> <r>               — remove a range (asks for confirmation)
//	thumb <n>                     — fetch a file's thumbnail
//	papers                        — list purchasable paper variants
//	status                        — show draft readiness
//	next                          — advance to the next wizard stage
//	exit | quit                   — leave the program
//
// Errors returned by command handlers are printed here so that handlers can
// stay focused on their own logic.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	report := func(err error) {
		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}

	for {
		printlnFn(fmt.Sprintf("pd %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: add, ls, rm, retry, ranges, addrange, editrange, rmrange, thumb, papers, status, next, exit")

		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <path> [path...]")
				continue
			}
			report(a.AddFiles(ctx, args))

		case "ls", "files":
			report(a.List(ctx))

		case "rm":
			if len(args) != 1 {
				printlnFn("Usage: rm <file#>")
				continue
			}
			report(a.Remove(ctx, args[0]))

		case "retry":
			if len(args) != 1 {
				printlnFn("Usage: retry <file#>")
				continue
			}
			report(a.Retry(ctx, args[0]))

		case "ranges":
			if len(args) != 1 {
				printlnFn("Usage: ranges <file#>")
				continue
			}
			report(a.Ranges(ctx, args[0]))

		case "addrange":
			if len(args) != 1 {
				printlnFn("Usage: addrange <file#>")
				continue
			}
			report(a.AddRange(ctx, args[0]))

		case "editrange":
			if len(args) < 3 {
				printlnFn("Usage: editrange <file#> <range#> field=value [field=value...]")
				continue
			}
			report(a.EditRange(ctx, args[0], args[1], args[2:]))

		case "rmrange":
			if len(args) != 2 {
				printlnFn("Usage: rmrange <file#> <range#>")
				continue
			}
			report(a.RemoveRange(ctx, args[0], args[1]))

		case "thumb":
			if len(args) != 1 {
				printlnFn("Usage: thumb <file#>")
				continue
			}
			report(a.Thumb(ctx, args[0]))

		case "papers":
			report(a.Papers(ctx))

		case "status":
			report(a.Status(ctx))

		case "next":
			report(a.Next(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
