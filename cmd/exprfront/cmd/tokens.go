package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/exprfront/foundation/exprlang"
	"github.com/msto63/exprfront/internal/tui"
)

var (
	tokensExpr   string
	tokensOutput string
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Dump the token stream and scan errors",
	Long: `Tokenize a source file, stdin ('-') or an inline expression and
print one token per line as line:column Type(value).

Examples:
  exprfront tokens --expr 'let x = 1 + 2;'
  exprfront tokens program.expr -o yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().StringVarP(&tokensExpr, "expr", "e", "", "tokenize this text instead of a file")
	tokensCmd.Flags().StringVarP(&tokensOutput, "output", "o", "", "output format: text, json or yaml (default from config)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd.InOrStdin(), args, tokensExpr)
	if err != nil {
		return err
	}

	tokens, scanErrs, err := newEngine().Tokenize(source)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format := outputFormat(tokensOutput); format {
	case "json":
		err = writeJSON(w, exprlang.TokenStreamMap(tokens, scanErrs))
	case "yaml":
		err = writeYAML(w, exprlang.TokenStreamMap(tokens, scanErrs))
	case "text":
		for _, tok := range tokens {
			fmt.Fprintf(w, "%s %s\n", tui.PositionStyle.Render(fmt.Sprintf("%d:%d", tok.Line, tok.Column)), tok)
		}
		for _, scanErr := range scanErrs {
			fmt.Fprintln(w, tui.ScanErrorStyle.Render("✗ "+scanErr.Error()))
		}
	default:
		err = fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
	if err != nil {
		return err
	}

	if len(scanErrs) > 0 {
		return errDiagnostics
	}
	return nil
}
