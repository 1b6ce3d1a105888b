package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/MichValwin/JWT-listing/internal/pkg/config"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/tokenlist"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/entity"
)

var errUnparseable = errors.New("unparseable token")

type row struct {
	Name          string             `json:"name,omitempty"`
	Token         string             `json:"token"`
	Introspection *jwt.Introspection `json:"introspection"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tokeninspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", config.Path(), "Path to the yaml config (env CONFIG_PATH)")
	token := fs.String("token", "", "Inspect this token instead of minting the configured roster")
	outputJSON := fs.Bool("json", false, "Output as JSON")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	rows, err := collect(*configPath, strings.TrimSpace(*token))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *outputJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	printTable(stdout, rows)
	return 0
}

func collect(configPath, token string) ([]row, error) {
	inspector := jwt.NewIntrospector(nil)

	if token != "" {
		in := inspector.Introspect(token)
		if in == nil {
			return nil, errUnparseable
		}
		return []row{{Token: token, Introspection: in}}, nil
	}

	cfg, err := config.NewViper(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	defer cfg.Close()

	signer, err := jwt.NewSymmetric(jwt.Config{
		Secret:    []byte(cfg.GetString("jwt.secret")),
		Algorithm: jwt.Algorithm(strings.ToUpper(strings.TrimSpace(cfg.GetString("jwt.algorithm")))),
		TTL:       cfg.GetSecond("jwt.ttl_seconds"),
	})
	if err != nil {
		return nil, err
	}

	ids, err := tokenlist.LoadRoster(cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := signer.IssueBatch(ids)
	if err != nil {
		return nil, err
	}

	return lo.Map(tokens, func(t jwt.NamedToken, _ int) row {
		return row{Name: t.Name, Token: t.Token, Introspection: inspector.Introspect(t.Token)}
	}), nil
}

func printTable(w io.Writer, rows []row) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tCLAIMS\tEXPIRY")
	for _, r := range rows {
		status := lo.Ternary(r.Introspection.IsExpired, entity.StatusExpired, entity.StatusValid)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			lo.Ternary(r.Name == "", "-", r.Name),
			status,
			entity.Summary(r.Introspection.Claims),
			entity.Expiry(r.Introspection),
		)
	}
	tw.Flush()

	for _, r := range rows {
		fmt.Fprintf(w, "\n%s:\n%s\n", lo.Ternary(r.Name == "", "token", r.Name), r.Token)
	}
}
