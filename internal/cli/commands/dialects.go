package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapmigrate/internal/cli/config"
	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects [names...]",
		Short: "List the supported SQL dialects",
		Long: `List registered dialects with their aliases, identifier quoting and
capabilities. Names may be dialect names or aliases.`,
		Example: `  # All dialects
  leapmigrate dialects

  # One dialect, as JSON
  leapmigrate dialects pg -o json`,
		RunE: runDialects,
	}
}

// DialectInfo describes one dialect in JSON output.
type DialectInfo struct {
	Name                 string   `json:"name"`
	Aliases              []string `json:"aliases"`
	Quote                string   `json:"quote"`
	DefaultSchema        string   `json:"default_schema,omitempty"`
	SupportsSchemas      bool     `json:"supports_schemas"`
	SupportsSequences    bool     `json:"supports_sequences"`
	SupportsDescriptions bool     `json:"supports_descriptions"`
	Features             []string `json:"features"`
}

func runDialects(cmd *cobra.Command, args []string) error {
	mode, err := output.ParseMode(outputFlag(cmd))
	if err != nil {
		return err
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	gens := generator.All()
	if len(args) > 0 {
		gens = gens[:0:0]
		for _, name := range args {
			g, err := generator.Resolve(name)
			if err != nil {
				return err
			}
			gens = append(gens, g)
		}
	}

	infos := make([]DialectInfo, 0, len(gens))
	for _, g := range gens {
		infos = append(infos, dialectInfo(g))
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}
	renderDialectTable(r, infos)
	return nil
}

// outputFlag returns the configured output mode, falling back to --output
// so dialects works without a project configuration.
func outputFlag(cmd *cobra.Command) string {
	if cfg := config.FromContext(cmd.Context()); cfg != nil {
		return cfg.OutputFormat
	}
	if f := cmd.Flags().Lookup("output"); f != nil {
		return f.Value.String()
	}
	return ""
}

func dialectInfo(g *generator.Generator) DialectInfo {
	cfg := g.Config()
	quoteEnd := cfg.Identifiers.QuoteEnd
	if quoteEnd == "" {
		quoteEnd = cfg.Identifiers.Quote
	}

	title := cases.Title(language.English)
	features := make([]string, 0)
	for _, f := range g.SupportedFeatures() {
		features = append(features, title.String(strings.ReplaceAll(string(f), "_", " ")))
	}

	aliases := g.Aliases()
	if aliases == nil {
		aliases = []string{}
	}
	return DialectInfo{
		Name:                 g.Name(),
		Aliases:              aliases,
		Quote:                cfg.Identifiers.Quote + quoteEnd,
		DefaultSchema:        cfg.DefaultSchema,
		SupportsSchemas:      cfg.SupportsSchemas,
		SupportsSequences:    cfg.SupportsSequences,
		SupportsDescriptions: cfg.SupportsDescriptions,
		Features:             features,
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderDialectTable(r *output.Renderer, infos []DialectInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Aliases", "Quote", "Default schema", "Schemas", "Sequences", "Descriptions", "Features"})
	for _, info := range infos {
		t.AppendRow(table.Row{
			info.Name,
			strings.Join(info.Aliases, ", "),
			info.Quote,
			info.DefaultSchema,
			yesNo(info.SupportsSchemas),
			yesNo(info.SupportsSequences),
			yesNo(info.SupportsDescriptions),
			strings.Join(info.Features, ", "),
		})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Dialects"))
		r.Println("")
		t.RenderMarkdown()
		return
	}
	r.Header(1, "Dialects")
	t.Render()
}
