// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package protoio provides functions for reading and writing proto messages as
// newline-separated JSON.
package protoio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// maxLineSize is the largest single JSON message ReadMessagesJSON accepts.
const maxLineSize = 16 * 1024 * 1024

// WriteMessagesJSON writes proto messages as newline-separated JSON to the writer.
func WriteMessagesJSON[M proto.Message](writer io.Writer, messages ...M) error {
	for _, message := range messages {
		data, err := protojsonMarshal(message)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		if _, err := writer.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// ReadMessagesJSON reads newline-separated JSON proto messages from the reader.
// Blank lines are skipped.
func ReadMessagesJSON[M proto.Message](reader io.Reader, newMessage func() M) ([]M, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(nil, maxLineSize)
	var messages []M
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		message := newMessage()
		if err := protojsonUnmarshal(line, message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// WriteMessagesJSONFile writes proto messages as newline-separated JSON to a file.
func WriteMessagesJSONFile[M proto.Message](filePath string, messages ...M) (retErr error) {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer func() {
		retErr = errors.Join(retErr, file.Close())
	}()
	bufferedWriter := bufio.NewWriter(file)
	if err := WriteMessagesJSON(bufferedWriter, messages...); err != nil {
		return err
	}
	return bufferedWriter.Flush()
}

// ReadMessagesJSONFile reads newline-separated JSON proto messages from a file.
func ReadMessagesJSONFile[M proto.Message](filePath string, newMessage func() M) (_ []M, retErr error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		retErr = errors.Join(retErr, file.Close())
	}()
	return ReadMessagesJSON(file, newMessage)
}

// *** PRIVATE ***

// protojsonMarshal marshals a proto message to JSON using proto field names.
func protojsonMarshal(message proto.Message) ([]byte, error) {
	return (protojson.MarshalOptions{UseProtoNames: true}).Marshal(message)
}

// protojsonUnmarshal unmarshals JSON data into a proto message.
func protojsonUnmarshal(data []byte, message proto.Message) error {
	return (protojson.UnmarshalOptions{}).Unmarshal(data, message)
}
