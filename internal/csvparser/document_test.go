package csvparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsBlankLinesButKeepsPositions(t *testing.T) {
	content := "Product name,Price,Quantity\n" +
		"\t\tMollis consequat,9.00,2\n" +
		"\n" +
		"   Tvoluptatem,10.32,1   \n"

	doc := Parse(content)

	assert.Equal(t, "Product name,Price,Quantity", doc.Header)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, Row{Index: 1, Line: "Mollis consequat,9.00,2"}, doc.Rows[0])
	assert.Equal(t, Row{Index: 3, Line: "Tvoluptatem,10.32,1"}, doc.Rows[1])
}

func TestParseEmptyContent(t *testing.T) {
	doc := Parse("")

	assert.Equal(t, "", doc.Header)
	assert.Empty(t, doc.Rows)
}

func TestParseHandlesCRLF(t *testing.T) {
	doc := Parse("Product name,Price,Quantity\r\nA,1,2\r\n")

	assert.Equal(t, "Product name,Price,Quantity", doc.Header)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "A,1,2", doc.Rows[0].Line)
}

func TestRowCellsAreNotTrimmed(t *testing.T) {
	row := Row{Index: 1, Line: "A , 1,2"}

	assert.Equal(t, []string{"A ", " 1", "2"}, row.Cells())
	assert.Equal(t, []string{"A", "1", "2"}, TrimCells(row.Cells()))
}

func TestSplitCellsHasNoQuoting(t *testing.T) {
	assert.Equal(t, []string{`"a`, ` b"`, "1"}, SplitCells(`"a, b",1`))
}

func TestJoinCells(t *testing.T) {
	assert.Equal(t, "Product name,Price,Quantity", JoinCells([]string{"Product name", "Price", "Quantity"}))
}
