// Package main is a thin host binary around the expression library: it
// evaluates one expression per invocation, or reads expressions line by line
// from stdin when no argument is given.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lemonberrylabs/evalexpr/pkg/builtin"
	"github.com/lemonberrylabs/evalexpr/pkg/expr"
	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "evalexpr [expression]",
	Short: "Evaluate an expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ")"
	rootCmd.SetVersionTemplate("evalexpr version {{.Version}}\n")

	rootCmd.Flags().String("vars", "", "YAML file with a mapping of variable bindings")
	rootCmd.Flags().Bool("json", false, "Print the result as JSON")
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := builtin.NewConfiguration()

	if varsFile, _ := cmd.Flags().GetString("vars"); varsFile != "" {
		if err := loadVariables(varsFile, cfg); err != nil {
			return err
		}
	}

	asJSON, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		return evalOne(args[0], cfg, asJSON)
	}

	// REPL mode: one expression per line, errors don't end the session.
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := evalOne(line, cfg, asJSON); err != nil {
			log.Printf("error: %v", err)
		}
	}
	return scanner.Err()
}

func evalOne(input string, cfg expr.Configuration, asJSON bool) error {
	result, err := expr.EvalWith(input, cfg)
	if err != nil {
		return err
	}

	if asJSON {
		b, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}
	fmt.Println(result.String())
	return nil
}

// loadVariables reads a YAML mapping and binds each top-level key as a
// variable.
func loadVariables(path string, cfg *expr.MapConfiguration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading variables file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing variables file: %w", err)
	}

	for name, v := range raw {
		val, err := types.FromGo(v)
		if err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
		cfg.SetVariable(name, val)
	}
	return nil
}
