package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopydoclint/internal/logging"
	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	packs      bool
}

const (
	formatText = "text"
	formatJSON = "json"
)

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

// packInfo represents a rule pack in JSON output.
type packInfo struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Rules       map[string]packRule `json:"rules"`
}

type packRule struct {
	Enabled  *bool   `json:"enabled,omitempty"`
	Severity *string `json:"severity,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity, and whether they support auto-fixing.

With --packs, list the rule packs that 'gopydoclint init --pack' can
start a configuration from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch flags.format {
			case formatJSON:
				if flags.packs {
					return writeJSON(out, packInfos())
				}
				return writeJSON(out, ruleInfos(lint.DefaultRegistry))
			case formatText:
				if flags.packs {
					listPacks(out)
					return nil
				}
				listRules(out, lint.DefaultRegistry, config.RuleFormat(flags.ruleFormat))
				return nil
			default:
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", formatText,
		"output format: text, json")
	cmd.Flags().BoolVar(&flags.packs, "packs", false, "list rule packs instead of rules")

	return cmd
}

func listRules(out io.Writer, registry *lint.Registry, ruleFormat config.RuleFormat) {
	logger := logging.NewWithWriter(out, "info")

	ruleList := registry.Rules()
	if len(ruleList) == 0 {
		logger.Info("no rules registered")
		return
	}

	logger.Info("available rules")
	for _, rule := range ruleList {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}

		keyvals := []any{
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description(),
		}
		if !rule.DefaultEnabled() {
			keyvals = append(keyvals, "default", "off")
		}
		if aliases := registry.Aliases(rule.ID()); len(aliases) > 0 {
			keyvals = append(keyvals, logging.FieldAliases, strings.Join(aliases, ","))
		}

		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()), keyvals...)
	}
}

func listPacks(out io.Writer) {
	logger := logging.NewWithWriter(out, "info")
	logger.Info("available packs")
	for _, pack := range rules.Packs() {
		logger.Info(pack.Name,
			logging.FieldDescription, pack.Description,
			"rules", len(pack.Rules),
		)
	}
}

func ruleInfos(registry *lint.Registry) []ruleInfo {
	ruleList := registry.Rules()
	infos := make([]ruleInfo, 0, len(ruleList))
	for _, rule := range ruleList {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Fixable:     rule.CanFix(),
			Tags:        rule.Tags(),
			Aliases:     registry.Aliases(rule.ID()),
		})
	}
	return infos
}

func packInfos() []packInfo {
	packs := rules.Packs()
	infos := make([]packInfo, 0, len(packs))
	for _, pack := range packs {
		packRules := make(map[string]packRule, len(pack.Rules))
		for id, rc := range pack.Rules {
			packRules[id] = packRule{Enabled: rc.Enabled, Severity: rc.Severity}
		}
		infos = append(infos, packInfo{Name: pack.Name, Description: pack.Description, Rules: packRules})
	}
	return infos
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
