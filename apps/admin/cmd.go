package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/selfcare/core"
	"github.com/trezcool/selfcare/core/exam"
)

// Output formats
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
	errNoDB = errors.New("migrate needs a database storage engine")
)

type commandLine struct {
	db       *sql.DB
	examSvc  exam.ServiceInterface
	validate *validator.Validate
	out      io.Writer
}

func newCommandLine(db *sql.DB, examSvc exam.ServiceInterface, out io.Writer) *commandLine {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	exam.InitValidators(validate, translator)

	return &commandLine{
		db:       db,
		examSvc:  examSvc,
		validate: validate,
		out:      out,
	}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command against the database")
	fmt.Fprintln(cli.out, "  list -profile PROFILE [-archived] [-format table|json|yaml] - list the exam applications of a profile")
	fmt.Fprintln(cli.out, "  export -profile PROFILE [-format json|yaml] - dump the full history of a profile")
	fmt.Fprintln(cli.out, "  archive -profile PROFILE -id ID - move an application to the archive")
	fmt.Fprintln(cli.out, "  seed -profile PROFILE - add a few demo applications")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
	listProfile := listCmd.String("profile", "", "The profile owning the applications.")
	listArchived := listCmd.Bool("archived", false, "List archived applications instead of active ones.")
	listFormat := listCmd.String("format", "", "Output format: table, json or yaml. Defaults to table on a terminal, json otherwise.")

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportProfile := exportCmd.String("profile", "", "The profile to export.")
	exportFormat := exportCmd.String("format", formatJSON, "Output format: json or yaml.")

	archiveCmd := flag.NewFlagSet("archive", flag.ContinueOnError)
	archiveProfile := archiveCmd.String("profile", "", "The profile owning the application.")
	archiveID := archiveCmd.String("id", "", "The application to archive.")

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedProfile := seedCmd.String("profile", "", "The profile to seed.")

	for _, cmd := range []*flag.FlagSet{listCmd, exportCmd, archiveCmd, seedCmd} {
		cmd.SetOutput(cli.out)
	}

	ctx := context.Background()

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *listProfile == "" || !oneOf(*listFormat, "", formatTable, formatJSON, formatYAML) {
			listCmd.Usage()
			return errHelp
		}
		return cli.list(ctx, *listProfile, *listArchived, *listFormat)

	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportProfile == "" || !oneOf(*exportFormat, formatJSON, formatYAML) {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(ctx, *exportProfile, *exportFormat)

	case "archive":
		if err := archiveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *archiveProfile == "" || *archiveID == "" {
			archiveCmd.Usage()
			return errHelp
		}
		return cli.archive(ctx, *archiveProfile, *archiveID)

	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedProfile == "" {
			seedCmd.Usage()
			return errHelp
		}
		return cli.seed(ctx, *seedProfile)

	default:
		cli.printUsage()
		return errHelp
	}
}

// outputFormat resolves an empty format from where stdout goes.
func (cli *commandLine) outputFormat(format string) string {
	if format != "" {
		return format
	}
	fd := -1
	if f, ok := cli.out.(*os.File); ok {
		fd = int(f.Fd())
	}
	if isTerminalFunc(fd) {
		return formatTable
	}
	return formatJSON
}

func oneOf(s string, values ...string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
