package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/exprfront/foundation/core/log"
	"github.com/msto63/exprfront/internal/parsesvc"
	coreGrpc "github.com/msto63/exprfront/pkg/core/grpc"
)

var (
	parseExpr    string
	parseOutput  string
	parseRemote  string
	parseNoTrees bool
	parseTimeout time.Duration
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse source and print statements and diagnostics",
	Long: `Parse a source file, stdin ('-') or an inline expression.

Each statement is printed with its tree, followed by all diagnostics.
The exit status is 1 when any diagnostic was reported.

Examples:
  exprfront parse program.expr
  echo 'let x = 1;' | exprfront parse -
  exprfront parse --expr 'f(a, b: 2);' -o json
  exprfront parse --remote localhost:9300 program.expr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "expr", "e", "", "parse this text instead of a file")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "output format: text, json or yaml (default from config)")
	parseCmd.Flags().StringVar(&parseRemote, "remote", "", "address of a running parse service")
	parseCmd.Flags().BoolVar(&parseNoTrees, "no-trees", false, "omit tree dumps in text output")
	parseCmd.Flags().DurationVar(&parseTimeout, "timeout", 10*time.Second, "timeout for remote parsing")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd.InOrStdin(), args, parseExpr)
	if err != nil {
		return err
	}

	var r report
	if parseRemote != "" {
		r, err = parseRemotely(cmd.Context(), source)
	} else {
		r, err = parseLocally(cmd.Context(), source)
	}
	if err != nil {
		return err
	}

	if err := r.write(cmd.OutOrStdout(), outputFormat(parseOutput), !parseNoTrees); err != nil {
		return err
	}
	if len(r.diagnostics) > 0 {
		return errDiagnostics
	}
	return nil
}

func parseLocally(ctx context.Context, source string) (report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	prog, err := newEngine().ParseAll(ctx, source)
	if err != nil {
		return report{}, err
	}
	return reportFromProgram(prog), nil
}

func parseRemotely(ctx context.Context, source string) (report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := coreGrpc.DialWithTimeout(parseRemote, parseTimeout)
	if err != nil {
		return report{}, err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, parseTimeout)
	defer cancel()

	result, err := parsesvc.NewClient(conn).Parse(ctx, source)
	if err != nil {
		return report{}, err
	}
	logger.Debug("remote parse finished", mdwlog.Fields{
		"remote":     parseRemote,
		"request_id": result["request_id"],
	})
	return reportFromMap(result), nil
}
