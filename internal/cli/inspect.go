package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"mapconf/internal/source"
)

const pathsShortDescription = `List leaf paths of a JSON document`
const pathsLongDescription = `Command "paths"

List every leaf of the JSON document with its path,
a short example value and the default line type.
Array elements are merged into a single "[*]" path.
`

func pathsCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <file.json>",
		Short: pathsShortDescription,
		Long:  pathsLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := root.ReadFile(args[0])
			if err != nil {
				return err
			}

			entries, err := root.config.Extractor().Parse(filepath.Base(args[0]), data)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}

			printPaths(cmd.OutOrStdout(), entries)
			root.logger.Debugf("Found %d paths.", len(entries))

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print paths as JSON")

	return cmd
}

const segmentsShortDescription = `Detect fields of a fixed-width file`
const segmentsLongDescription = `Command "segments"

Split the first line of a fixed-width file
into fields at spaces and tabs
and suggest a name for each of them.
Lines without any segment get four equal synthetic fields.
`

func segmentsCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments <file>",
		Short: segmentsShortDescription,
		Long:  segmentsLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := root.ReadFile(args[0])
			if err != nil {
				return err
			}

			sample, err := source.Load(filepath.Base(args[0]), data, source.FLAT, root.config.Detector())
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), sample.Segments)
			}

			printSegments(cmd.OutOrStdout(), sample.Segments, sample.FirstLine())

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print fields as JSON")

	return cmd
}

const fieldsShortDescription = `List source fields of a sample file`
const fieldsLongDescription = `Command "fields"

Print the field names of a sample file:
the header of a CSV file, the element names of an XML file,
or the detected fields of a fixed-width file.
The file type is detected from the extension unless --type is set.
`

func fieldsCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields <file>",
		Short: fieldsShortDescription,
		Long:  fieldsLongDescription,
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

			sample, err := source.Load(filepath.Base(args[0]), data, ft, root.config.Detector())
			if err != nil {
				return err
			}

			root.logger.Infof("%s file, %s, %s", sample.Type, sample.Encoding, sample.HumanSize())

			for _, f := range sample.Fields {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}

			return nil
		},
	}

	cmd.Flags().StringP("type", "t", "", "file type: CSV, XML or FLAT")

	return cmd
}

// fileTypeFlag parses the --type flag, an empty value means auto-detection.
func fileTypeFlag(cmd *cobra.Command) (source.FileType, error) {
	value, _ := cmd.Flags().GetString("type")
	if value == "" {
		return "", nil
	}

	return source.ParseFileType(value)
}
