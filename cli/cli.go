package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"flatrec/ds"
	"flatrec/flat/fdiag"
	"flatrec/flat/fschema"
	"flatrec/flat/ftag"
	"flatrec/logger"
	"flatrec/metrics"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	Args struct {
		Schema    string `arg:"--schema,env:FLATREC_SCHEMA" help:"path to the schema definition file" placeholder:"schemas.yaml"`
		LogLevel  string `arg:"--log-level" default:"warn" help:"debug, info, warn or error"`
		LogFormat string `arg:"--log-format" default:"console" help:"console or json"`
		Metrics   bool   `help:"print decoding counters to stderr when done"`

		Convert     *ConvertCmd     `arg:"subcommand:convert" help:"re-encode records, optionally as JSON"`
		Identify    *IdentifyCmd    `arg:"subcommand:identify" help:"prefix every record with its type tag"`
		Reconstruct *ReconstructCmd `arg:"subcommand:reconstruct" help:"decode tagged records and print them grouped by type"`
		Keys        *KeysCmd        `arg:"subcommand:keys" help:"print the key of every record"`
		View        *ViewCmd        `arg:"subcommand:view" help:"browse records interactively"`
	}
	Input struct {
		Tag    string `arg:"required" help:"record type tag from the schema file"`
		From   string `default:"-" help:"path to the source file, - for stdin" placeholder:"in.csv"`
		Header bool   `help:"the first line is a header"`
	}
	Output struct {
		To    string `default:"-" help:"path to the destination file, - for stdout" placeholder:"out.csv"`
		Force bool   `help:"overwrite the destination file"`
	}
	ConvertCmd struct {
		Input
		Output
		OutHeader      bool   `arg:"--out-header" help:"write a header line"`
		IncludeSkipped bool   `arg:"--include-skipped" help:"write skipped fields too"`
		Delimiter      string `help:"output delimiter, defaults to the schema's"`
		JSON           bool   `arg:"--json" help:"write one JSON object per record"`
	}
	IdentifyCmd struct {
		Input
		Output
	}
	ReconstructCmd struct {
		From string `default:"-" help:"path to a file of tagged records, - for stdin" placeholder:"tagged.txt"`
		JSON bool   `arg:"--json" help:"write JSON instead of tables"`
	}
	KeysCmd struct {
		Input
		Fields []string `help:"fields making up the key, defaults to the schema's key fields"`
	}
	ViewCmd struct {
		Input
		PageSize int `arg:"--page-size" default:"20" help:"records per page"`
	}

	// Env is what every command runs against.
	Env struct {
		Registry *ftag.Registry
		Logger   *zap.Logger
		Stdin    io.Reader
		Stdout   io.Writer
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Typed records from flat files.\n",
			"A CLI utility to decode delimited lines into typed records described by a",
			"YAML schema file, and to write them back as delimited text or JSON.",
		},
		"\n",
	)
	des += "\n"
	return des
}

// NewEnv loads the schema file and builds the registry every command needs.
func NewEnv(schemaPath string, l *zap.Logger) (Env, error) {
	if schemaPath == "" {
		return Env{}, errors.New("NewEnv error: --schema is required")
	}
	definitions, err := fschema.LoadDefinitions(schemaPath)
	if err != nil {
		return Env{}, errors.Wrap(err, "NewEnv error")
	}
	schemas, err := definitions.BuildAll()
	if err != nil {
		return Env{}, errors.Wrap(err, "NewEnv error")
	}

	registry := ftag.NewRegistry(fdiag.New(fdiag.WithLogger(l)))
	err = registry.Register(schemas...)
	if err != nil {
		return Env{}, errors.Wrap(err, "NewEnv error")
	}
	for _, schema := range schemas {
		l.Debug("schema loaded",
			zap.String("path", schemaPath),
			zap.String("tag", schema.Tag()),
			zap.String("fields", ds.DumpJSON(schema.Fields())),
		)
	}
	return Env{
		Registry: registry,
		Logger:   l,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
	}, nil
}

func Run(args Args, env Env) error {
	switch {
	case args.Convert != nil:
		return RunConvert(env, *args.Convert)
	case args.Identify != nil:
		return RunIdentify(env, *args.Identify)
	case args.Reconstruct != nil:
		return RunReconstruct(env, *args.Reconstruct)
	case args.Keys != nil:
		return RunKeys(env, *args.Keys)
	case args.View != nil:
		return RunView(env, *args.View)
	}
	return errors.New("Run error: no command given")
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	if parser.Subcommand() == nil {
		parser.Fail("missing command")
	}

	l, err := logger.NewLogger(args.LogFormat, args.LogLevel)
	if err != nil {
		parser.Fail(err.Error())
	}
	defer func() { _ = l.Sync() }()

	if args.Metrics {
		metrics.RegisterDecodeMetrics()
	}

	env, err := NewEnv(args.Schema, l)
	if err == nil {
		err = Run(args, env)
	}
	if args.Metrics {
		PrintMetrics(os.Stderr)
	}
	if err != nil {
		l.Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		_ = l.Sync()
		os.Exit(1)
	}
}
