package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/nexusriot/anacreon/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect the settings records",
}

var settingsListCmd = &cobra.Command{
	Use:       "list <businesses|categories|users|integrations>",
	Short:     "Print a settings collection as a table",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"businesses", "categories", "users", "integrations"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSettings(cmd.OutOrStdout(), args[0], settings.NewSeededStores())
	},
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
}

func listSettings(w io.Writer, kind string, stores settings.Stores) error {
	var (
		header []string
		rows   [][]string
	)
	switch kind {
	case "businesses":
		header = []string{"ID", "Name", "Description", "Status", "Created"}
		for _, b := range stores.Businesses.List() {
			rows = append(rows, []string{strconv.Itoa(b.ID), b.Name, b.Description, status(b.IsActive), humanize.Time(b.CreatedOn)})
		}
	case "categories":
		header = []string{"ID", "Name", "Description", "Status"}
		for _, c := range stores.Categories.List() {
			rows = append(rows, []string{strconv.Itoa(c.ID), c.Name, c.Description, status(c.IsActive)})
		}
	case "users":
		header = []string{"ID", "Username", "Email", "Role", "Status"}
		for _, u := range settings.Users() {
			rows = append(rows, []string{strconv.Itoa(u.ID), u.Username, u.Email, u.Role, status(u.IsActive)})
		}
	case "integrations":
		header = []string{"ID", "Name", "Status"}
		for _, i := range settings.Integrations() {
			rows = append(rows, []string{i.ID, i.Name, i.Status})
		}
	default:
		return fmt.Errorf("unknown collection %q", kind)
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func status(active bool) string {
	if active {
		return color.GreenString("active")
	}
	return color.HiBlackString("inactive")
}
