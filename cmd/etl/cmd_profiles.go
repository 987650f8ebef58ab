package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wind-stats-etl/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the available profiles",
	Long:  `Show every profile with its speed buckets, wind roses and input files.`,
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, name := range profile.Names() {
		p, err := profile.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n  %s\n", p.Name, p.Description)
		fmt.Fprintf(out, "  speed [%s]: %s\n", p.Speed.Unit, strings.Join(p.Speed.Labels, " | "))

		roses := make([]string, 0, len(p.Roses))
		for _, r := range p.Roses {
			roses = append(roses, fmt.Sprintf("%s (%d sectors)", r.Name, r.Scheme.Sectors))
		}
		if len(roses) > 0 {
			fmt.Fprintf(out, "  roses: %s\n", strings.Join(roses, ", "))
		}

		for _, st := range p.Stations {
			files := make([]string, 0, len(st.Mean)+len(st.Extreme))
			for _, ds := range st.Mean {
				files = append(files, ds.File)
			}
			for _, ds := range st.Extreme {
				files = append(files, ds.File)
			}
			fmt.Fprintf(out, "  %s: %s\n", st.Kind, strings.Join(files, ", "))
		}
		fmt.Fprintln(out)
	}
	return nil
}
