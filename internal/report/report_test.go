package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

func sampleResult() *types.ParseResult {
	return &types.ParseResult{
		Items: []types.LineItem{
			{ID: "id-1", Name: "Mollis consequat", Price: 9, Quantity: 2},
			{ID: "id-2", Name: "Tvoluptatem", Price: 10.5, Quantity: 1},
		},
		Total: 28.5,
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "YAML", " xml ", "csv", "xlsx"} {
		f, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(name)), string(f))
	}

	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".json", FormatJSON.Extension())
	assert.Equal(t, ".xlsx", FormatXLSX.Extension())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResult(), FormatJSON))

	var decoded types.ParseResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleResult(), decoded)
	assert.Contains(t, buf.String(), `"total": 28.5`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResult(), FormatYAML))

	var decoded types.ParseResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleResult(), decoded)
	assert.Contains(t, buf.String(), "name: Mollis consequat")
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResult(), FormatXML))

	assert.Contains(t, buf.String(), "<cart>")
	assert.Contains(t, buf.String(), "<total>28.5</total>")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResult(), FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,price,quantity", lines[0])
	assert.Equal(t, "id-1,Mollis consequat,9,2", lines[1])
	assert.Equal(t, "id-2,Tvoluptatem,10.5,1", lines[2])
}

func TestWriteCSVEmptyCart(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, &types.ParseResult{}, FormatCSV))

	assert.Equal(t, "id,name,price,quantity\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResult(), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"ID", "Product name", "Price", "Quantity", "Subtotal"}, rows[0])
	assert.Equal(t, "Mollis consequat", rows[1][1])
	assert.Equal(t, "18", rows[1][4])
	assert.Equal(t, "Total", rows[3][1])
	assert.Equal(t, "28.5", rows[3][4])
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, sampleResult(), Format("pdf"))

	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Zero(t, buf.Len())
}
