// Copyright 2026 Peter Edge
//
// All rights reserved.

package xmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testDocument = `<?xml version="1.0" encoding="UTF-8"?>
<FlexQueryResponse queryName="test">
  <FlexStatements count="2">
    <FlexStatement accountId="U1">
      <Trades>
        <Trade symbol="A" blank="" />
        <Trade symbol="B" />
      </Trades>
    </FlexStatement>
    <FlexStatement accountId="U2">
      <Trades>
        <Trade symbol="C" />
      </Trades>
    </FlexStatement>
  </FlexStatements>
</FlexQueryResponse>
`

func TestParse(t *testing.T) {
	t.Parallel()
	root, err := Parse([]byte(testDocument))
	require.NoError(t, err)
	require.Equal(t, "FlexQueryResponse", root.Name())
	require.Len(t, root.Children(), 1)

	statements := root.Descendants("FlexStatement")
	require.Len(t, statements, 2)
	accountID, ok := statements[1].Attr("accountId")
	require.True(t, ok)
	require.Equal(t, "U2", accountID)

	// Descendants are returned in document order across the whole subtree.
	trades := root.Descendants("Trade")
	require.Len(t, trades, 3)
	var symbols []string
	for _, trade := range trades {
		symbol, ok := trade.Attr("symbol")
		require.True(t, ok)
		symbols = append(symbols, symbol)
	}
	require.Equal(t, []string{"A", "B", "C"}, symbols)
	require.Len(t, statements[0].Descendants("Trade"), 2)
	require.Empty(t, trades[0].Descendants("Trade"))
}

func TestChildrenCopy(t *testing.T) {
	t.Parallel()
	root, err := Parse([]byte(testDocument))
	require.NoError(t, err)
	statementsElement := root.Children()[0]
	children := statementsElement.Children()
	require.Len(t, children, 2)
	children[0] = nil
	children = statementsElement.Children()
	require.Len(t, children, 2)
	require.NotNil(t, children[0])
	require.Equal(t, "FlexStatement", children[0].Name())
	require.Len(t, root.Descendants("FlexStatement"), 2)
}

func TestAttr(t *testing.T) {
	t.Parallel()
	root, err := Parse([]byte(`<Trade symbol="A" blank="" />`))
	require.NoError(t, err)
	value, ok := root.Attr("blank")
	require.True(t, ok)
	require.Empty(t, value)
	_, ok = root.Attr("missing")
	require.False(t, ok)
	// Attribute lookup is case-sensitive.
	_, ok = root.Attr("Symbol")
	require.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"",
		"   ",
		"<a>",
		"<a></b>",
		"<a/><b/>",
	} {
		_, err := Parse([]byte(input))
		require.Error(t, err, input)
	}
}
