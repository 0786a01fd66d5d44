package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vouchjs/pkg/errors"
)

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var dev bool

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "List the dependencies recorded in the nearest package-lock.json",
		Long: `Search dir (default: the current directory) and then each parent directory
for a package-lock.json, stopping at the first directory that has one, and
list the dependencies it records.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", dir)
			}

			var extArgs []string
			if dev {
				extArgs = append(extArgs, "--dev")
			}

			return c.withEnv(cmd, func(ctx context.Context, e *env) error {
				prog := newProgress(loggerFromContext(ctx))
				res, err := e.ext.IdentifyFileDefinedDependencies(ctx, abs, extArgs)
				if err != nil {
					return err
				}
				prog.done("Scanned %d %s", len(res), plural(len(res), "manifest", "manifests"))

				return c.write(cmd.OutOrStdout(), res, func(w io.Writer) {
					if len(res) == 0 {
						printInfo(w, "No package-lock.json found from %s", abs)
						return
					}
					for _, r := range res {
						printHeading(w, r.Path, "")
						printDetail(w, "registry %s", r.RegistryHost)
						printDependencies(w, r.Dependencies)
					}
				})
			})
		},
	}

	cmd.Flags().BoolVar(&dev, "dev", false, "include dev dependencies")
	return cmd
}
