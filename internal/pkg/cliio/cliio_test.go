// Copyright 2026 Peter Edge
//
// All rights reserved.

package cliio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for input, want := range map[string]Format{
		"table": FormatTable,
		"CSV":   FormatCSV,
		"Json":  FormatJSON,
	} {
		format, err := ParseFormat(input)
		require.NoError(t, err)
		require.Equal(t, want, format)
	}
	_, err := ParseFormat("yaml")
	require.ErrorContains(t, err, `unknown format "yaml"`)
}

func TestWrite(t *testing.T) {
	t.Parallel()
	table := Table{
		Headers: []string{"SYMBOL", "QUANTITY"},
		Rows: [][]string{
			{"ARGX", "1"},
			{"GEO", "1000"},
		},
		Totals: []string{"TOTAL", "1001"},
	}
	type row struct {
		Symbol   string `json:"symbol"`
		Quantity int    `json:"quantity"`
	}
	objects := []row{{Symbol: "ARGX", Quantity: 1}, {Symbol: "GEO", Quantity: 1000}}

	var buffer bytes.Buffer
	require.NoError(t, Write(&buffer, FormatTable, table, objects))
	require.Equal(
		t,
		"SYMBOL  QUANTITY\n"+
			"ARGX    1\n"+
			"GEO     1000\n"+
			"        \n"+
			"TOTAL   1001\n",
		buffer.String(),
	)

	buffer.Reset()
	require.NoError(t, Write(&buffer, FormatCSV, table, objects))
	require.Equal(t, "SYMBOL,QUANTITY\nARGX,1\nGEO,1000\n", buffer.String())

	buffer.Reset()
	require.NoError(t, Write(&buffer, FormatJSON, table, objects))
	require.Equal(t, "{\"symbol\":\"ARGX\",\"quantity\":1}\n{\"symbol\":\"GEO\",\"quantity\":1000}\n", buffer.String())

	require.Error(t, Write(&buffer, Format("xml"), table, objects))
}

func TestWriteTableWithoutTotals(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	require.NoError(t, WriteTable(&buffer, Table{Headers: []string{"A", "B"}, Rows: [][]string{{"x", "y"}}}))
	require.Equal(t, "A  B\nx  y\n", buffer.String())
}
