package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vouchjs/pkg/deps"
	"github.com/matzehuels/vouchjs/pkg/errors"
)

// depsCommand creates the deps command.
func (c *CLI) depsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deps <package>[@version] [-- extension-args...]",
		Short: "List the packages a published npm package pulls in",
		Long: `List every package installed alongside a published npm package.

npm resolves the package into a scratch lockfile; dev dependencies are left
out. Without a version, npm picks one and the package's own version is read
back from the lockfile.`,
		Example: `  vouch-js deps express
  vouch-js deps @types/node@20.1.0 --format json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "requires a package name")
			}
			if len(args) > 1 && cmd.ArgsLenAtDash() != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "extension arguments must follow --")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version := deps.ParsePackageSpec(args[0])
			return c.withEnv(cmd, func(ctx context.Context, e *env) error {
				prog := newProgress(loggerFromContext(ctx))
				sp := newSpinner(ctx, cmd.ErrOrStderr(), "Resolving "+args[0]+" with npm...").start()
				res, err := e.ext.IdentifyPackageDependencies(ctx, name, version, args[1:])
				sp.stop()
				if err != nil {
					return err
				}
				prog.done("Resolved %d dependencies of %s", len(res[0].Dependencies), name)

				return c.write(cmd.OutOrStdout(), res, func(w io.Writer) {
					for _, r := range res {
						printHeading(w, name, r.PackageVersion.String())
						printDetail(w, "registry %s", r.RegistryHost)
						printDependencies(w, r.Dependencies)
					}
				})
			})
		},
	}
}
