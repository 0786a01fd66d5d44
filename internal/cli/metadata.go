package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vouchjs/pkg/deps"
)

// metadataCommand creates the metadata command.
func (c *CLI) metadataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <package> [version]",
		Short: "Locate a package version on the registry",
		Long: `Print the registry page and tarball URL of a package version.
Without a version, the latest published version is used.`,
		Example: `  vouch-js metadata left-pad
  vouch-js metadata left-pad 1.3.0
  vouch-js metadata left-pad@1.3.0`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version := deps.ParsePackageSpec(args[0])
			if len(args) == 2 {
				name, version = args[0], args[1]
			}

			return c.withEnv(cmd, func(ctx context.Context, e *env) error {
				res, err := e.ext.RegistriesPackageMetadata(ctx, name, version)
				if err != nil {
					return err
				}
				return c.write(cmd.OutOrStdout(), res, func(w io.Writer) {
					for _, m := range res {
						printHeading(w, name, m.PackageVersion)
						printKeyValue(w, "Registry", m.RegistryHost)
						printKeyValue(w, "Page", StyleLink.Render(m.HumanURL.String()))
						printKeyValue(w, "Tarball", StyleLink.Render(m.ArtifactURL.String()))
						printKeyValue(w, "Primary", strconv.FormatBool(m.IsPrimary))
					}
				})
			})
		},
	}
}
