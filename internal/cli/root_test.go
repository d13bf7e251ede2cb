package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapconf/internal/flatfile"
	"mapconf/internal/mapping"
	"mapconf/internal/structure"
)

const (
	testURL    = "http://backend.test"
	flatSample = "Alexandre 35  Paris\nMaria     41  Lyon\n"
	jsonSample = `{"person": {"last_name": "Doe", "age": 30, "first_name": "Jo"}, "id": 7}`
)

type testRoot struct {
	*rootCommand
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	mock   *httpmock.MockTransport
}

func newTestRootCommand(t *testing.T) *testRoot {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	mock := httpmock.NewMockTransport()

	root := NewRootCommand(bytes.NewReader(nil), stdout, stderr)
	root.transport = mock

	return &testRoot{rootCommand: root, dir: t.TempDir(), stdout: stdout, stderr: stderr, mock: mock}
}

// run executes the command in the test working dir against the mocked backend.
func (r *testRoot) run(args ...string) int {
	args = append(args, "--api-url", testURL, "--working-dir", r.dir, "--retries", "0")
	r.cmd.SetArgs(args)

	return r.Execute()
}

func (r *testRoot) writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(r.dir, name), []byte(content), 0o600))
}

func TestRootSubCommands(t *testing.T) {
	t.Parallel()
	root := newTestRootCommand(t)

	var names []string
	for _, cmd := range root.cmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Equal(t, []string{
		"automap",
		"fields",
		"generate",
		"paths",
		"results",
		"run",
		"save",
		"segments",
		"structure",
		"upload",
		"validate",
	}, names)
}

func TestRootCmdPersistentFlags(t *testing.T) {
	t.Parallel()
	root := newTestRootCommand(t)

	var names []string
	root.cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		names = append(names, flag.Name)
	})

	assert.Equal(t, []string{
		"api-url",
		"log-file",
		"max-depth",
		"naming",
		"preview-length",
		"retries",
		"timeout",
		"verbose",
		"working-dir",
	}, names)
}

func TestRootInvalidConfig(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "person.json", jsonSample)

	assert.Equal(t, 1, root.run("paths", "person.json", "--max-depth", "0"))
	assert.Contains(t, root.stderr.String(), `invalid max-depth: value "0" failed "gte" validation`)
	assert.Empty(t, root.stdout.String())
}

func TestRootLogFile(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "person.json", jsonSample)

	assert.Equal(t, 0, root.run("paths", "person.json", "--log-file", "mapconf.log", "--verbose"))

	content, err := os.ReadFile(filepath.Join(root.dir, "mapconf.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"Found 4 paths."`)
	assert.Contains(t, root.stdout.String(), "DEBUG\tFound 4 paths.")
}

func TestPathsCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "person.json", jsonSample)

	assert.Equal(t, 0, root.run("paths", "person.json"))
	out := root.stdout.String()
	assert.Contains(t, out, "person.last_name")
	assert.Contains(t, out, "Doe")
	assert.Contains(t, out, "line type")
}

func TestPathsCommand_JSON(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "person.json", jsonSample)

	require.Equal(t, 0, root.run("paths", "person.json", "--json"))

	var entries []structure.JSONPathEntry
	require.NoError(t, json.Unmarshal(root.stdout.Bytes(), &entries))
	assert.Equal(t,
		[]string{"person.last_name", "person.age", "person.first_name", "id"},
		structure.Paths(entries),
	)
}

func TestPathsCommand_InvalidJSON(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "broken.json", `{"a": `)

	assert.Equal(t, 1, root.run("paths", "broken.json"))
	assert.Contains(t, root.stderr.String(), `invalid JSON in "broken.json"`)
}

func TestSegmentsCommand_JSON(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.txt", flatSample)

	require.Equal(t, 0, root.run("segments", "people.txt", "--json"))

	var fields []flatfile.FieldDefinition
	require.NoError(t, json.Unmarshal(root.stdout.Bytes(), &fields))
	require.Len(t, fields, 3)
	assert.Equal(t, "last_name", fields[0].Name)
	assert.Equal(t, 1, fields[0].Start)
	assert.Equal(t, 9, fields[0].End)
	assert.Equal(t, "age", fields[1].Name)
	assert.Equal(t, 11, fields[1].Start)
	assert.Equal(t, 12, fields[1].End)
}

func TestSegmentsCommand_Positional(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.txt", flatSample)

	require.Equal(t, 0, root.run("segments", "people.txt", "--naming", "positional"))
	assert.Contains(t, root.stdout.String(), flatfile.Placeholder(1))
	assert.Contains(t, root.stdout.String(), "Alexandre")
}

func TestFieldsCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.csv", "id,name,city\n1,Jo,Paris\n")

	require.Equal(t, 0, root.run("fields", "people.csv"))
	assert.Contains(t, root.stdout.String(), "CSV file, utf-8")
	assert.Contains(t, root.stdout.String(), "id\nname\ncity\n")
}

func TestFieldsCommand_UnknownType(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.csv", "id\n")

	assert.Equal(t, 1, root.run("fields", "people.csv", "--type", "json"))
	assert.Contains(t, root.stderr.String(), `unknown file type "json"`)
}

func TestAutomapCommand_Write(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.txt", flatSample)
	root.writeFile(t, "person.json", jsonSample)

	require.Equal(t, 0, root.run("automap", "people.txt", "person.json", "--destination", "people", "-w", "mapping.yaml"))
	assert.Contains(t, root.stdout.String(), "last_name -> person.last_name")

	mf, err := mapping.LoadFile(filepath.Join(root.dir, "mapping.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "people", mf.Destination.Name)
	assert.Equal(t, "person.json", mf.Destination.File)
	assert.Equal(t, "people.txt", mf.Source.File)
	assert.Len(t, mf.Mappings, 3)
}

func TestValidateCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.txt", flatSample)
	root.writeFile(t, "person.json", jsonSample)
	root.writeFile(t, "mapping.yaml", `
source:
  file: people.txt
destination:
  name: people
  file: person.json
mappings:
  - source: age
    destination: person.age
`)

	assert.Equal(t, 0, root.run("validate", "mapping.yaml"))
	assert.Contains(t, root.stdout.String(), "Mapping is valid, 1 entries.")
}

func TestValidateCommand_Invalid(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.txt", flatSample)
	root.writeFile(t, "person.json", jsonSample)
	root.writeFile(t, "mapping.yaml", `
source:
  file: people.txt
destination:
  name: people
  file: person.json
mappings:
  - source: age
    destination: person.agee
`)

	assert.Equal(t, 1, root.run("validate", "mapping.yaml"))
	assert.Contains(t, root.stdout.String(), "destination_not_found")
	assert.Contains(t, root.stdout.String(), "did you mean: person.age")
	assert.Contains(t, root.stderr.String(), "mapping is invalid, 1 errors found")
}

func TestUploadCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.txt", flatSample)
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/files/upload", httpmock.NewStringResponder(200, `{"id": 42}`))
	root.mock.RegisterResponder(http.MethodGet, testURL+"/file-details/42",
		httpmock.NewJsonResponderOrPanic(200, []map[string]any{{"id": 1, "nrLines": 1, "contentFile": "Alexandre 35  Paris", "statut": "TR"}}))

	require.Equal(t, 0, root.run("upload", "people.txt", "--details"))
	assert.Contains(t, root.stdout.String(), "42\n")
	assert.Contains(t, root.stdout.String(), "Alexandre 35  Paris")
	assert.Equal(t, 2, root.mock.GetTotalCallCount())
}

func TestStructurePushCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "person.json", jsonSample)
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/json-keys/saveKeys-withPosition", httpmock.NewStringResponder(200, "saved"))

	require.Equal(t, 0, root.run("structure", "push", "person.json", "--destination", "people"))
	assert.Contains(t, root.stdout.String(), `Pushed 4 paths to destination "people".`)
	assert.Equal(t, 1, root.mock.GetTotalCallCount())
}

func TestStructurePushCommand_Legacy(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "person.json", jsonSample)
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/json-structure/upload", httpmock.NewStringResponder(200, "uploaded"))

	require.Equal(t, 0, root.run("structure", "push", "person.json", "--destination", "people", "--legacy"))
	assert.Contains(t, root.stdout.String(), `Uploaded structure to destination "people": uploaded`)
}

func TestStructurePushCommand_MissingDestination(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "person.json", jsonSample)

	assert.Equal(t, 1, root.run("structure", "push", "person.json"))
	assert.Equal(t, 0, root.mock.GetTotalCallCount())
}

func TestStructurePullCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.mock.RegisterResponderWithQuery(http.MethodGet, testURL+"/api/json-keys/getByDestination", "fileDestination=people",
		httpmock.NewJsonResponderOrPanic(200, []map[string]any{
			{"id": 1, "keyPath": "person.age", "fileDestination": "people", "start_position": 1, "end_position": 10, "typeLigne": "02"},
		}))

	require.Equal(t, 0, root.run("structure", "pull", "people"))
	assert.Contains(t, root.stdout.String(), "person.age")
}

func TestStructurePullCommand_NotFound(t *testing.T) {
	root := newTestRootCommand(t)
	root.mock.RegisterResponder(http.MethodGet, testURL+"/api/json-keys/getByDestination", httpmock.NewStringResponder(404, "unknown destination"))

	assert.Equal(t, 1, root.run("structure", "pull", "nope"))
	assert.Contains(t, root.stderr.String(), "unknown destination")
	assert.Equal(t, 1, root.mock.GetTotalCallCount())
}

func TestStructureDestinationsCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.mock.RegisterResponder(http.MethodGet, testURL+"/api/json-keys/getAllDestinations",
		httpmock.NewJsonResponderOrPanic(200, []string{"people", "orders"}))

	require.Equal(t, 0, root.run("structure", "destinations"))
	assert.Equal(t, "people\norders\n", root.stdout.String())
}

func TestGenerateCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/output/jsonFile", httpmock.NewStringResponder(200, "done"))

	require.Equal(t, 0, root.run("generate"))
	assert.Contains(t, root.stdout.String(), "Generation requested: done")
}

func TestResultsCommand_Output(t *testing.T) {
	root := newTestRootCommand(t)
	root.mock.RegisterResponder(http.MethodGet, testURL+"/api/output/last-mapping",
		httpmock.NewStringResponder(200, `{"id": 1, "contentMapper": "[{\"age\":\"35\"}]"}`))

	require.Equal(t, 0, root.run("results", "-o", "out.json"))

	content, err := os.ReadFile(filepath.Join(root.dir, "out.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"age\": \"35\"\n  }\n]\n", string(content))
	assert.Contains(t, root.stdout.String(), `Written 1 records to "out.json".`)
}

func TestRunCommand(t *testing.T) {
	root := newTestRootCommand(t)
	root.writeFile(t, "people.txt", flatSample)
	root.writeFile(t, "person.json", jsonSample)
	root.writeFile(t, "mapping.yaml", `
source:
  file: people.txt
destination:
  name: people
  file: person.json
mappings:
  - source: age
    destination: person.age
`)

	var saved []map[string]any
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/json-keys/saveKeys-withPosition", httpmock.NewStringResponder(200, "saved"))
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/files/upload", httpmock.NewStringResponder(200, `{"id": 42}`))
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/mapping/save-map",
		httpmock.NewStringResponder(200, `{"id": 9, "fileDestinqtionJson": "people"}`))
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/conf-map/save_confmap", func(req *http.Request) (*http.Response, error) {
		_ = json.NewDecoder(req.Body).Decode(&saved)
		return httpmock.NewStringResponse(200, `[]`), nil
	})
	root.mock.RegisterResponder(http.MethodPost, testURL+"/api/output/jsonFile", httpmock.NewStringResponder(200, "generated"))
	root.mock.RegisterResponder(http.MethodGet, testURL+"/api/output/last-mapping",
		httpmock.NewStringResponder(200, `{"id": 1, "contentMapper": "[{\"age\":\"35\"},{\"age\":\"41\"}]"}`))

	require.Equal(t, 0, root.run("run", "mapping.yaml"), root.stderr.String())

	require.Len(t, saved, 1)
	assert.Equal(t, "age", saved[0]["keySource"])
	assert.Equal(t, "person.age", saved[0]["keyDistination"])
	assert.Equal(t, float64(42), saved[0]["fileDetailId"])
	assert.Equal(t, float64(9), saved[0]["configMappingId"])

	assert.Contains(t, root.stdout.String(), "[\n  {\n    \"age\": \"35\"\n  },\n  {\n    \"age\": \"41\"\n  }\n]\n")

	calls := root.mock.GetCallCountInfo()
	assert.Equal(t, 1, calls["POST "+testURL+"/api/json-keys/saveKeys-withPosition"])
	assert.Equal(t, 1, calls["POST "+testURL+"/api/output/jsonFile"])
}
