package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pivotkit/pivotkit/internal/buildinfo"
	"github.com/pivotkit/pivotkit/internal/jobspec"
	"github.com/pivotkit/pivotkit/internal/render"
	"github.com/pivotkit/pivotkit/internal/source"
	"github.com/pivotkit/pivotkit/pkg/crosstab"
	"github.com/pivotkit/pivotkit/pkg/pivot"
	"github.com/pivotkit/pivotkit/pkg/visualize"
)

var (
	version    = "dev"
	commitHash = "n/a"
	buildDate  = "<unknown>"
)

func main() {
	var specPath, inputPath, format, query, output string
	var verbosity int
	var showVersion bool

	flag.StringVar(&specPath, "spec", "", "Path to the YAML pivot job spec.")
	flag.StringVar(&inputPath, "input", "", "Path to the record source (CSV, JSON/NDJSON or SQLite file).")
	flag.StringVar(&format, "format", "", "Record source format (csv, json, sqlite); detected from the file extension when empty.")
	flag.StringVar(&query, "query", "", "SELECT statement for SQLite sources.")
	flag.StringVar(&output, "output", "table", "Output format: table, tsv, dot or mermaid.")
	flag.IntVar(&verbosity, "v", 0, "Log verbosity level.")
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit.")
	flag.Parse()

	buildInfo := buildinfo.BuildInfo{Version: version, CommitHash: commitHash, BuildDate: buildDate}
	if showVersion {
		fmt.Println(buildInfo.String())
		return
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity)) //nolint:gosec
	zc.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	zl, err := zc.Build(zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	log := zapr.NewLogger(zl).WithName("pivotkit").WithValues("run-id", uuid.New().String())

	log.Info(fmt.Sprintf("starting pivotkit %s", buildInfo.String()))

	if specPath == "" || inputPath == "" {
		log.Info("both -spec and -input are required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(log, specPath, inputPath, format, query, output); err != nil {
		log.Error(err, "pivot job failed")
		os.Exit(1)
	}
}

func run(log logr.Logger, specPath, inputPath, format, query, output string) error {
	spec, err := jobspec.Load(specPath)
	if err != nil {
		return err
	}

	records, err := loadRecords(inputPath, format, query)
	if err != nil {
		return err
	}
	log.V(1).Info("records loaded", "input", inputPath, "count", len(records))

	res, err := pivot.Pivot(records, spec.Dimensions[0].Classifier(),
		pivot.WithName(spec.Dimensions[0].Name), pivot.WithLogger(log))
	if err != nil {
		return err
	}
	res, err = res.Pivot(spec.Dimensions[1].Classifier(),
		pivot.WithName(spec.Dimensions[1].Name))
	if err != nil {
		return err
	}
	log.V(1).Info("pivot chain evaluated", "keys", res.Len())

	switch output {
	case "dot":
		g := visualize.BuildGraph(res, spec.Label)
		fmt.Print((&visualize.DotGenerator{}).Generate(g))
		return nil
	case "mermaid":
		g := visualize.BuildGraph(res, spec.Label)
		fmt.Print((&visualize.MermaidGenerator{}).Generate(g))
		return nil
	}

	table, err := crosstab.Build(res, spec.Label,
		crosstab.WithAggregators(spec.Aggregators()), crosstab.WithLogger(log))
	if err != nil {
		return err
	}

	switch output {
	case "tsv":
		fmt.Print(render.TSV(table))
	case "table":
		fmt.Print(render.Table(table))
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
	return nil
}

func loadRecords(path, format, query string) ([]pivot.Record, error) {
	f := source.Format(format)
	if format == "" {
		detected, err := source.Detect(path)
		if err != nil {
			return nil, err
		}
		f = detected
	}

	switch f {
	case source.FormatCSV:
		return source.FromCSV(path)
	case source.FormatJSON:
		return source.FromJSON(path)
	case source.FormatSQLite:
		if query == "" {
			return nil, fmt.Errorf("SQLite sources need a -query")
		}
		return source.FromSQLite(path, query)
	default:
		return nil, fmt.Errorf("unknown record format %q", f)
	}
}
