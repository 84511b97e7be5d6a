// fluentdb runs a raw SQL template against a database and prints the shaped
// result as JSON.
//
//	fluentdb -c database.yaml -p :id=5 -s first 'SELECT * FROM users WHERE id = :id'
//	fluentdb --driver sqlite3 --dsn ./app.db -s by:id 'SELECT id, name FROM users'
//	fluentdb --driver sqlite3 --dsn ./app.db --exec 'DELETE FROM sessions'
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	fluentdb "github.com/biyonik/go-fluent-db"
)

type command struct {
	config  string
	backend string
	driver  string
	dsn     string
	params  []string
	shape   string
	exec    bool
	debug   bool
}

// shape names one of the Fetch* result forms; field is set for the keyed ones.
type shape struct {
	kind  string
	field string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var cmd command
	flags := pflag.NewFlagSet("fluentdb", pflag.ContinueOnError)
	flags.StringVarP(&cmd.config, "config", "c", "", "YAML config file")
	flags.StringVar(&cmd.backend, "backend", "", "placeholder backend: literal or bound")
	flags.StringVar(&cmd.driver, "driver", "", "database/sql driver name (mysql, pgx, postgres, sqlite3)")
	flags.StringVar(&cmd.dsn, "dsn", "", "data source name, overrides the config")
	flags.StringArrayVarP(&cmd.params, "param", "p", nil, "parameter as :token=value (repeatable)")
	flags.StringVarP(&cmd.shape, "shape", "s", "array", "array|lists|first|value|keyvalue|by:<field>|group:<field>|of:<field>")
	flags.BoolVar(&cmd.exec, "exec", false, "execute as a statement and print affected rows")
	flags.BoolVar(&cmd.debug, "debug", false, "log every statement")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() != 1 {
		return errors.New("expected exactly one SQL template argument")
	}
	template := flags.Arg(0)

	params := fluentdb.Params{}
	for _, p := range cmd.params {
		token, value, err := parseParam(p)
		if err != nil {
			return err
		}
		params[token] = value
	}

	sh, err := parseShape(cmd.shape)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := cmd.open(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	q := db.Query(template).WithParams(params)

	var out any
	if cmd.exec {
		result, err := q.Execute(ctx)
		if err != nil {
			return err
		}
		affected, _ := result.RowsAffected()
		out = map[string]int64{"rows_affected": affected}
	} else {
		out, err = fetch(ctx, q, sh)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (c *command) open(logger *zap.Logger) (*fluentdb.DB, error) {
	cfg := fluentdb.DefaultConfig()
	if c.config != "" {
		loaded, err := fluentdb.LoadConfig(c.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.backend != "" {
		cfg.Backend = c.backend
	}
	if c.driver != "" {
		cfg.Driver = c.driver
	}
	if c.debug {
		cfg.Debug = true
	}

	if c.dsn == "" {
		return fluentdb.Open(cfg, fluentdb.WithLogger(logger))
	}

	backend, err := fluentdb.BackendByName(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return fluentdb.Connect(cfg.DriverName(), c.dsn,
		fluentdb.WithBackend(backend),
		fluentdb.WithTablePrefix(cfg.Prefix),
		fluentdb.WithDebug(cfg.Debug),
		fluentdb.WithLogger(logger),
	)
}

func fetch(ctx context.Context, q *fluentdb.Query, sh shape) (any, error) {
	switch sh.kind {
	case "array":
		return q.FetchArray(ctx)
	case "lists":
		return q.FetchLists(ctx)
	case "first":
		return q.FetchFirst(ctx)
	case "value":
		return q.FetchValue(ctx)
	case "keyvalue":
		return q.FetchKeyValue(ctx)
	case "by":
		return q.FetchArrayByKey(ctx, sh.field)
	case "group":
		return q.FetchByGroup(ctx, sh.field)
	case "of":
		return q.FetchArrayOf(ctx, sh.field)
	}
	return nil, fmt.Errorf("unknown shape %q", sh.kind)
}

// parseParam splits ":token=value". NULL becomes nil and integers are sent as int64.
func parseParam(s string) (string, any, error) {
	token, value, ok := strings.Cut(s, "=")
	if !ok || token == "" {
		return "", nil, fmt.Errorf("invalid param %q, want :token=value", s)
	}
	if value == "NULL" {
		return token, nil, nil
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return token, n, nil
	}
	return token, value, nil
}

func parseShape(s string) (shape, error) {
	kind, field, keyed := strings.Cut(s, ":")
	switch kind {
	case "array", "lists", "first", "value", "keyvalue":
		if keyed {
			return shape{}, fmt.Errorf("shape %q takes no field", kind)
		}
		return shape{kind: kind}, nil
	case "by", "group", "of":
		if field == "" {
			return shape{}, fmt.Errorf("shape %q needs a field, e.g. %s:id", kind, kind)
		}
		return shape{kind: kind, field: field}, nil
	}
	return shape{}, fmt.Errorf("unknown shape %q", s)
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}
