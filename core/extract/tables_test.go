package extract

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesNoTables(t *testing.T) {
	got, err := Tables("<p>no tables here</p>", "1", zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestTablesWithHeaderRow(t *testing.T) {
	markup := `<table>
		<tr><th>Name</th><th>Role</th></tr>
		<tr><td>Ada</td><td>Engineer</td></tr>
		<tr><td>Grace</td><td>Admiral</td></tr>
	</table>`

	got, err := Tables(markup, "1", zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, got, 1)

	table := got[0]
	assert.Equal(t, []string{"Name", "Role"}, table.Headers)
	assert.Equal(t, [][]string{{"Ada", "Engineer"}, {"Grace", "Admiral"}}, table.Data)
	assert.Equal(t, [2]int{2, 2}, table.Shape)
}

func TestTablesHeaderlessGetsPositionalColumns(t *testing.T) {
	markup := `<table>
		<tr><td>a</td><td>b</td><td>c</td></tr>
		<tr><td>d</td><td>e</td><td>f</td></tr>
	</table>`

	got, err := Tables(markup, "1", zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, got, 1)

	table := got[0]
	assert.Equal(t, []string{"0", "1", "2"}, table.Headers)
	assert.Len(t, table.Data, 2)
	assert.Equal(t, [2]int{2, 3}, table.Shape)
}

func TestTablesRaggedRowsPreserved(t *testing.T) {
	markup := `<table>
		<tr><th>A</th><th>B</th></tr>
		<tr><td>1</td></tr>
		<tr><td>2</td><td>3</td><td>4</td></tr>
	</table>`

	got, err := Tables(markup, "1", zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, [][]string{{"1"}, {"2", "3", "4"}}, got[0].Data)
	assert.Equal(t, [2]int{2, 2}, got[0].Shape)
}

func TestTablesMalformedTableSkipped(t *testing.T) {
	markup := `<table></table>
	<table><tr><th>X</th></tr><tr><td>1</td></tr></table>`

	got, err := Tables(markup, "1", zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"X"}, got[0].Headers)
}

func TestTablesCellsTrimmed(t *testing.T) {
	markup := `<table><tr><th> Name </th></tr><tr><td>
		Ada
	</td></tr></table>`

	got, err := Tables(markup, "1", zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Name"}, got[0].Headers)
	assert.Equal(t, [][]string{{"Ada"}}, got[0].Data)
}
