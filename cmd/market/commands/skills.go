package commands

import (
	"ezodus-market/internal/market"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(skillsCmd)
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Lists which skills are looked up for each profession and where.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		templates, err := cfg.Templates()
		if err != nil {
			return err
		}

		professions := table.NewWriter()
		professions.SetOutputMirror(cmd.OutOrStdout())
		professions.SetStyle(table.StyleRounded)
		professions.AppendHeader(table.Row{"Profession", "Skills"})
		for _, p := range market.Professions() {
			var names []string
			for _, skill := range market.ApplicableSkills(p) {
				names = append(names, skill.String())
			}
			professions.AppendRow(table.Row{p.Name(), strings.Join(names, ", ")})
		}
		professions.Render()

		urls := table.NewWriter()
		urls.SetOutputMirror(cmd.OutOrStdout())
		urls.SetStyle(table.StyleRounded)
		urls.AppendHeader(table.Row{"Skill", "Highscores"})
		for _, skill := range market.Skills() {
			urls.AppendRow(table.Row{skill.String(), templates[skill]})
		}
		urls.Render()

		return nil
	},
}
