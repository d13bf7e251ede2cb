package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"mapconf/internal/mapping"
)

const automapShortDescription = `Suggest mappings of source fields to JSON paths`
const automapLongDescription = `Command "automap"

Match the fields of the source sample with the leaf paths
of the JSON structure by name and print the suggestions.
Confident matches are accepted, the others are listed
with their best candidates.

With --write, the session is saved as a mapping file
that can be reviewed and passed to "validate" or "run".
`

func automapCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "automap <source-file> <structure.json>",
		Short: automapShortDescription,
		Long:  automapLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := fileTypeFlag(cmd)
			if err != nil {
				return err
			}

			src, err := root.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc, err := root.ReadFile(args[1])
			if err != nil {
				return err
			}

			s := root.NewSession()
			if _, err := s.LoadSource(filepath.Base(args[0]), src, ft); err != nil {
				return err
			}

			if _, err := s.LoadStructure(filepath.Base(args[1]), doc); err != nil {
				return err
			}

			if dest, _ := cmd.Flags().GetString("destination"); dest != "" {
				s.SetDestination(dest)
			}

			res, err := s.AutoMap()
			if err != nil {
				return err
			}

			printAutoMap(cmd.OutOrStdout(), res)

			if out, _ := cmd.Flags().GetString("write"); out != "" {
				if err := mapping.WriteFile(s.Export(), root.config.Path(out)); err != nil {
					return err
				}

				root.logger.Infof(`Mapping file "%s" written.`, out)
			}

			return nil
		},
	}

	cmd.Flags().StringP("type", "t", "", "source file type: CSV, XML or FLAT")
	cmd.Flags().String("destination", "", "destination name stored in the written mapping file")
	cmd.Flags().StringP("write", "w", "", "write the suggestions to a mapping file")

	return cmd
}

const validateShortDescription = `Validate a mapping file`
const validateLongDescription = `Command "validate"

Load the mapping file with its source sample and JSON structure
and check that every mapping references known fields and paths,
that no destination is used twice
and that the fixed-width fields do not overlap.
`

func validateCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <mapping.yaml>",
		Short: validateShortDescription,
		Long:  validateLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := root.ImportSession(args[0])
			if err != nil {
				return err
			}

			diags := s.Validate()

			printDiagnostics(cmd.OutOrStdout(), diags)

			if diags.HasErrors() {
				return fmt.Errorf("mapping is invalid, %d errors found", len(diags.Errors))
			}

			root.logger.Infof("Mapping is valid, %d entries.", s.Mappings().Len())

			return nil
		},
	}
}
