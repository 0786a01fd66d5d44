package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vouchjs/pkg/buildinfo"
)

type infoResult struct {
	Name       string   `json:"name"`
	Registries []string `json:"registries"`
	Version    string   `json:"version"`
	Commit     string   `json:"commit"`
}

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the extension name and the registries it serves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEnv(cmd, func(ctx context.Context, e *env) error {
				res := infoResult{
					Name:       e.ext.Name(),
					Registries: e.ext.Registries(),
					Version:    buildinfo.Version,
					Commit:     buildinfo.Commit,
				}
				return c.write(cmd.OutOrStdout(), res, func(w io.Writer) {
					printKeyValue(w, "Extension", res.Name)
					printList(w, "Registries", res.Registries)
					printKeyValue(w, "Version", res.Version+" ("+res.Commit+")")
				})
			})
		},
	}
}
