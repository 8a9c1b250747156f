// Copyright 2026 Peter Edge
//
// All rights reserved.

package protoio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestMessagesJSON(t *testing.T) {
	t.Parallel()
	messages := newTestMessages(t)
	var buffer bytes.Buffer
	require.NoError(t, WriteMessagesJSON(&buffer, messages...))
	require.Equal(t, 2, strings.Count(buffer.String(), "\n"))
	read, err := ReadMessagesJSON(&buffer, newStruct)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(messages, read, protocmp.Transform()))
}

func TestMessagesJSONFile(t *testing.T) {
	t.Parallel()
	messages := newTestMessages(t)
	filePath := filepath.Join(t.TempDir(), "trades.json")
	require.NoError(t, WriteMessagesJSONFile(filePath, messages...))
	read, err := ReadMessagesJSONFile(filePath, newStruct)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(messages, read, protocmp.Transform()))

	_, err = ReadMessagesJSONFile(filepath.Join(t.TempDir(), "missing.json"), newStruct)
	require.Error(t, err)
}

func TestReadMessagesJSONSkipsBlankLines(t *testing.T) {
	t.Parallel()
	read, err := ReadMessagesJSON(strings.NewReader("\n{\"symbol\":\"ARGX\"}\n\n  \n"), newStruct)
	require.NoError(t, err)
	require.Len(t, read, 1)
	require.Equal(t, "ARGX", read[0].GetFields()["symbol"].GetStringValue())

	_, err = ReadMessagesJSON(strings.NewReader("{\"symbol\":"), newStruct)
	require.Error(t, err)
}

func newTestMessages(t *testing.T) []*structpb.Struct {
	t.Helper()
	first, err := structpb.NewStruct(map[string]any{"symbol": "ARGX", "quantity": 1})
	require.NoError(t, err)
	second, err := structpb.NewStruct(map[string]any{"symbol": "GEO", "quantity": 1000})
	require.NoError(t, err)
	return []*structpb.Struct{first, second}
}

func newStruct() *structpb.Struct {
	return &structpb.Struct{}
}
