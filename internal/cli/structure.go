package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

const uploadShortDescription = `Upload a source sample to the backend`
const uploadLongDescription = `Command "upload"

Upload the sample file to the conversion backend
and print the file id it was stored under.
Fixed-width samples are refused while their detected fields overlap.
`

func uploadCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: uploadShortDescription,
		Long:  uploadLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := fileTypeFlag(cmd)
			if err != nil {
				return err
			}

			data, err := root.ReadFile(args[0])
			if err != nil {
				return err
			}

			s := root.NewSession()
			if _, err := s.LoadSource(filepath.Base(args[0]), data, ft); err != nil {
				return err
			}

			id, err := s.UploadSource(root.ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)

			if details, _ := cmd.Flags().GetBool("details"); details && id > 0 {
				lines, err := root.GetClient().FileDetails(root.ctx, id)
				if err != nil {
					return err
				}

				table := newTable(cmd.OutOrStdout(), "line", "status", "content")
				for _, l := range lines {
					table.Append([]string{strconv.Itoa(l.NrLines), l.Statut, l.ContentFile})
				}

				table.Render()
			}

			return nil
		},
	}

	cmd.Flags().StringP("type", "t", "", "file type: CSV, XML or FLAT")
	cmd.Flags().Bool("details", false, "print the lines stored by the backend")

	return cmd
}

const structureShortDescription = `Manage JSON structures stored on the backend`

func structureCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure",
		Short: structureShortDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		structurePushCommand(root),
		structurePullCommand(root),
		structureDestinationsCommand(root),
		structureKeysCommand(root),
	)

	return cmd
}

func structurePushCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <file.json>",
		Short: "Store a JSON structure with its line types and positions",
		Long: `Command "structure push"

Extract the leaf paths of the JSON document, give every path
a default position range and store the document
under the destination name on the backend.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, _ := cmd.Flags().GetString("destination")

			data, err := root.ReadFile(args[0])
			if err != nil {
				return err
			}

			if legacy, _ := cmd.Flags().GetBool("legacy"); legacy {
				answer, err := root.GetClient().UploadStructureLegacy(root.ctx, filepath.Base(args[0]), data, dest)
				if err != nil {
					return err
				}

				root.logger.Infof(`Uploaded structure to destination "%s": %s`, dest, answer)

				return nil
			}

			s := root.NewSession()
			if _, err := s.LoadStructure(filepath.Base(args[0]), data); err != nil {
				return err
			}

			if err := s.DefaultPositions(); err != nil {
				return err
			}

			answer, err := s.PushStructure(root.ctx, dest)
			if err != nil {
				return err
			}

			root.logger.Debugf("Backend answer: %s", answer)

			return nil
		},
	}

	cmd.Flags().String("destination", "", "destination name")
	cmd.Flags().Bool("legacy", false, "upload the document only, without positions and line types")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

func structurePullCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull <destination>",
		Short: "Print the structure stored for a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := root.NewSession().PullStructure(root.ctx, args[0])
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}

			printPaths(cmd.OutOrStdout(), entries)

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print paths as JSON")

	return cmd
}

func structureDestinationsCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "destinations",
		Short: "List destinations stored on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := root.NewSession().Destinations(root.ctx)
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}

func structureKeysCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <destination>",
		Short: "List the keys of a structure uploaded without positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := root.GetClient().StructureKeys(root.ctx, args[0])
			if err != nil {
				return err
			}

			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}

			return nil
		},
	}
}
