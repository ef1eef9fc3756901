package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/exprfront/foundation/exprlang"
	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
	"github.com/msto63/exprfront/internal/tui"
)

// diagnosticView is the part of a diagnostic the text renderer needs
type diagnosticView struct {
	kind    string
	message string
	line    int
	column  int
}

// report is a parse result from either the local engine or a remote service
type report struct {
	statements  []string
	trees       []string
	diagnostics []diagnosticView
	data        map[string]interface{}
}

func reportFromProgram(prog *exprlang.Program) report {
	r := report{data: prog.ToMap()}
	for _, stmt := range prog.Statements {
		r.statements = append(r.statements, stmt.String())
		r.trees = append(r.trees, mdwast.Dump(stmt))
	}
	for _, d := range prog.Diagnostics {
		r.diagnostics = append(r.diagnostics, diagnosticView{
			kind:    d.Kind.String(),
			message: d.Message,
			line:    d.Line,
			column:  d.Column,
		})
	}
	return r
}

// reportFromMap rebuilds a report from an encoded program. Tree dumps are
// not part of the encoding.
func reportFromMap(m map[string]interface{}) report {
	r := report{data: m}
	rendered, _ := m["rendered"].([]interface{})
	for _, s := range rendered {
		if text, ok := s.(string); ok {
			r.statements = append(r.statements, text)
		}
	}
	diags, _ := m["diagnostics"].([]interface{})
	for _, entry := range diags {
		d, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		view := diagnosticView{}
		view.kind, _ = d["kind"].(string)
		view.message, _ = d["message"].(string)
		if line, ok := d["line"].(float64); ok {
			view.line = int(line)
		}
		if column, ok := d["column"].(float64); ok {
			view.column = int(column)
		}
		r.diagnostics = append(r.diagnostics, view)
	}
	return r
}

// write prints the report in the given format: text, json or yaml
func (r report) write(w io.Writer, format string, showTrees bool) error {
	switch format {
	case "json":
		return writeJSON(w, r.data)
	case "yaml":
		return writeYAML(w, r.data)
	case "text", "":
		for i, stmt := range r.statements {
			tree := ""
			if showTrees && i < len(r.trees) {
				tree = r.trees[i]
			}
			fmt.Fprintln(w, tui.RenderStatement(stmt, tree))
		}
		for _, d := range r.diagnostics {
			fmt.Fprintln(w, tui.RenderDiagnostic(d.kind, d.message, d.line, d.column))
		}
		fmt.Fprintln(w, tui.RenderSummary(len(r.statements), len(r.diagnostics)))
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// readSource returns the inline expression, the named file or stdin for "-"
func readSource(stdin io.Reader, args []string, inline string) (string, error) {
	switch {
	case inline != "" && len(args) > 0:
		return "", fmt.Errorf("use either --expr or a file argument, not both")
	case inline != "":
		return inline, nil
	case len(args) == 0:
		return "", fmt.Errorf("no input: pass a file, '-' for stdin or --expr")
	case args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// outputFormat resolves the --output flag against the configured default
func outputFormat(flag string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	return appConfig.Output.Format
}
