package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/report"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/pkg/logger"
)

const validCart = `Product name,Price,Quantity
Mollis consequat,9.00,2
Tvoluptatem,10.32,1
Scelerisque lacinia,18.90,1
Consectetur adipiscing,28.72,10
Condimentum aliquet,13.90,1
`

const invalidCart = `Product name,Price,Quantity
Mollis consequat,9.00,2
Tvoluptatem,10.32,-1
`

// testEnv is a workspace with a config file pointing at temp directories.
type testEnv struct {
	root       string
	configPath string
}

func newTestEnv(t *testing.T, extra string) *testEnv {
	t.Helper()
	t.Cleanup(func() { logger.Set(nil) })

	root := t.TempDir()
	configPath := filepath.Join(root, "config.yaml")
	content := fmt.Sprintf(`input_dir: %s
output_dir: %s
input_archive_dir: %s
output_archive_dir: %s
output_name_format: "{original}"
log_level: error
%s`,
		filepath.Join(root, "input"),
		filepath.Join(root, "output"),
		filepath.Join(root, "input_archive"),
		filepath.Join(root, "output_archive"),
		extra)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	return &testEnv{root: root, configPath: configPath}
}

func (e *testEnv) path(parts ...string) string {
	return filepath.Join(append([]string{e.root}, parts...)...)
}

func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := e.path(name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (e *testEnv) run(args ...string) (string, error) {
	c := NewRootCmd()
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))
	c.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := c.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	c := NewRootCmd()
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetArgs([]string{"version"})

	require.NoError(t, c.Execute())
	assert.Contains(t, out.String(), "Cart Parser")
	assert.Contains(t, out.String(), "Version:    "+Version)
}

func TestRootCmdHasPersistentFlags(t *testing.T) {
	c := NewRootCmd()

	assert.NotNil(t, c.PersistentFlags().Lookup("config"))
	assert.NotNil(t, c.PersistentFlags().Lookup("verbose"))
}

func TestValidateCmdValid(t *testing.T) {
	env := newTestEnv(t, "")
	path := env.writeFile(t, "cart.csv", validCart)

	out, err := env.run("validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, path+": valid")
}

func TestValidateCmdInvalid(t *testing.T) {
	env := newTestEnv(t, "")
	path := env.writeFile(t, "cart.csv", invalidCart)

	out, err := env.run("validate", path)

	assert.ErrorIs(t, err, cartparser.ErrValidationFailed)
	assert.Contains(t, out, "Validation completed with 1 error(s)")
	assert.Contains(t, out, `[CELL] row 2, column 2: Expected cell to be a positive number but received "-1".`)
}

func TestValidateCmdMissingFile(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run("validate", env.path("missing.csv"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateCmdRequiresArgs(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run("validate")

	assert.Error(t, err)
}

func TestParseCmdJSON(t *testing.T) {
	env := newTestEnv(t, "")
	path := env.writeFile(t, "cart.csv", validCart)

	out, err := env.run("parse", path)

	require.NoError(t, err)
	var result types.ParseResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Items, 5)
	assert.InDelta(t, 348.32, result.Total, 1e-9)
}

func TestParseCmdFormatFlag(t *testing.T) {
	env := newTestEnv(t, "")
	path := env.writeFile(t, "cart.csv", validCart)

	out, err := env.run("parse", path, "--format", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "name: Mollis consequat")
}

func TestParseCmdConfigFormat(t *testing.T) {
	env := newTestEnv(t, "output_format: xml\n")
	path := env.writeFile(t, "cart.csv", validCart)

	out, err := env.run("parse", path)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
}

func TestParseCmdInvalidCart(t *testing.T) {
	env := newTestEnv(t, "")
	path := env.writeFile(t, "cart.csv", invalidCart)

	_, err := env.run("parse", path)

	assert.ErrorIs(t, err, cartparser.ErrValidationFailed)
	assert.EqualError(t, err, "Validation failed!")
}

func TestParseCmdXLSXRequiresOutput(t *testing.T) {
	env := newTestEnv(t, "")
	path := env.writeFile(t, "cart.csv", validCart)

	_, err := env.run("parse", path, "--format", "xlsx")

	assert.ErrorContains(t, err, "requires --output")
}

func TestParseCmdReadsWorkbook(t *testing.T) {
	env := newTestEnv(t, "")
	workbook := env.path("cart.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Product name", "Price", "Quantity"},
		{"Mollis consequat", "9.00", "2"},
	}
	for i, row := range rows {
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &row))
	}
	require.NoError(t, f.SaveAs(workbook))
	require.NoError(t, f.Close())
	output := env.path("cart.json")

	_, err := env.run("parse", workbook, "-o", output)

	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var result types.ParseResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.InDelta(t, 18.0, result.Total, 1e-9)
}

func TestProcessCmd(t *testing.T) {
	env := newTestEnv(t, "")
	env.writeFile(t, filepath.Join("input", "good.csv"), validCart)
	env.writeFile(t, filepath.Join("input", "bad.csv"), invalidCart)

	out, err := env.run("process")

	require.NoError(t, err)
	assert.Contains(t, out, "✓ good.csv")
	assert.Contains(t, out, "✗ bad.csv: Validation failed!")
	assert.Contains(t, out, "Successful:      1")
	assert.Contains(t, out, "Errors:          1")
	assert.Contains(t, out, "Grand total:     348.32")

	assert.FileExists(t, env.path("output", "good.json"))
	assert.FileExists(t, env.path("input_archive", "good.csv"))
	assert.FileExists(t, env.path("output_archive", "good.json"))
	assert.FileExists(t, env.path("input", "bad.csv"))

	logs, err := filepath.Glob(env.path("output", "error_log_*.txt"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	summaries, err := filepath.Glob(env.path("output", "processing_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestProcessCmdStopOnError(t *testing.T) {
	env := newTestEnv(t, "continue_on_error: false\nmax_concurrency: 1\n")
	env.writeFile(t, filepath.Join("input", "a.csv"), invalidCart)
	env.writeFile(t, filepath.Join("input", "b.csv"), validCart)

	out, err := env.run("process")

	assert.ErrorIs(t, err, errProcessingStopped)
	assert.Contains(t, out, "✗ a.csv")
	assert.NotContains(t, out, "✓ b.csv")
}

func TestProcessCmdNoFiles(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.run("process")

	require.NoError(t, err)
	assert.Contains(t, out, "No cart files found")
}

func TestProcessCmdSingleFile(t *testing.T) {
	env := newTestEnv(t, "output_format: csv\narchive_on_success: false\n")
	path := env.writeFile(t, "elsewhere.csv", validCart)

	_, err := env.run("process", "--file", path)

	require.NoError(t, err)
	assert.FileExists(t, env.path("output", "elsewhere.csv"))
	assert.FileExists(t, path)
}

func TestWriteReportFile(t *testing.T) {
	dir := t.TempDir()
	result := &types.ParseResult{
		Items: []types.LineItem{{ID: "id-1", Name: "Mollis consequat", Price: 9, Quantity: 2}},
		Total: 18,
	}

	path := filepath.Join(dir, "cart.yaml")
	require.NoError(t, writeReportFile(path, result, report.FormatYAML))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "total: 18")

	failed := filepath.Join(dir, "cart.pdf")
	err = writeReportFile(failed, result, report.Format("pdf"))
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
	assert.NoFileExists(t, failed)

	err = writeReportFile(filepath.Join(dir, "missing", "cart.json"), result, report.FormatJSON)
	assert.ErrorContains(t, err, "failed to create output file")
}

func TestParseCmdOutputErrorFailsCommand(t *testing.T) {
	env := newTestEnv(t, "")
	path := env.writeFile(t, "cart.csv", validCart)

	_, err := env.run("parse", path, "-o", env.path("missing", "cart.json"))

	assert.ErrorContains(t, err, "failed to create output file")
}
