package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mapconf/internal/wizard"
)

const saveShortDescription = `Save a mapping file on the backend`
const saveLongDescription = `Command "save"

Upload the source sample of the mapping file,
store the complete mappings on the backend
and ask it to generate the JSON output.
The id of the saved mapping is printed.
`

func saveCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "save <mapping.yaml>",
		Short: saveShortDescription,
		Long:  saveLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := root.ImportSession(args[0])
			if err != nil {
				return err
			}

			id, err := root.save(s)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)

			return nil
		},
	}
}

const generateShortDescription = `Generate the JSON output of the last mapping`

func generateCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: generateShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := root.GetClient().GenerateJSON(root.ctx)
			if err != nil {
				return err
			}

			root.logger.Infof("Generation requested: %s", answer)

			return nil
		},
	}
}

const resultsShortDescription = `Print the generated JSON output`
const resultsLongDescription = `Command "results"

Fetch the JSON generated from the last saved mapping.
If the backend has none yet, the generation is requested first.
`

func resultsCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: resultsShortDescription,
		Long:  resultsLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("file")

			raw, err := root.GetClient().FetchOutput(root.ctx, name)
			if err != nil {
				return err
			}

			return root.writeOutput(cmd, wizard.NewOutput(raw))
		},
	}

	cmd.Flags().String("file", wizard.DefaultOutputFile, "name of the generated file")
	cmd.Flags().StringP("output", "o", "", "write the JSON to a file")

	return cmd
}

const runShortDescription = `Run the whole wizard from a mapping file`
const runLongDescription = `Command "run"

Run every step for the mapping file:
upload the source sample, store the JSON structure,
validate and save the mappings and fetch the generated JSON.
`

func runCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <mapping.yaml>",
		Short: runShortDescription,
		Long:  runLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := root.ImportSession(args[0])
			if err != nil {
				return err
			}

			if diags := s.Validate(); diags.HasErrors() {
				printDiagnostics(cmd.OutOrStdout(), diags)
				return fmt.Errorf("mapping is invalid, %d errors found", len(diags.Errors))
			}

			if _, err := s.PushStructure(root.ctx, s.Destination()); err != nil {
				// A structure without a JSON sample is already stored on the backend
				if !errors.Is(err, wizard.ErrStepNotReady) {
					return err
				}

				root.logger.Debugf("Structure not pushed: %s", err)
			}

			if _, err := root.save(s); err != nil {
				return err
			}

			out, err := s.Results(root.ctx)
			if err != nil {
				return err
			}

			return root.writeOutput(cmd, out)
		},
	}

	cmd.Flags().StringP("output", "o", "", "write the JSON to a file")

	return cmd
}

// save uploads the source sample, if any, and saves the mappings.
func (root *rootCommand) save(s *wizard.Session) (int64, error) {
	if s.Sample() != nil {
		if _, err := s.UploadSource(root.ctx); err != nil {
			return 0, err
		}
	}

	return s.Save(root.ctx)
}

// writeOutput prints the JSON or writes it to the --output file.
func (root *rootCommand) writeOutput(cmd *cobra.Command, out *wizard.Output) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), out.JSON+"\n")
		return err
	}

	if err := os.WriteFile(root.config.Path(path), []byte(out.JSON+"\n"), 0o644); err != nil {
		return fmt.Errorf("cannot write file \"%s\": %w", path, err)
	}

	root.logger.Infof(`Written %d records to "%s".`, out.Records, path)

	return nil
}
