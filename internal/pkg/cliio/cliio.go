// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package cliio provides output formatting for CLI commands (table, CSV, JSON).
package cliio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Format represents the output format for CLI commands.
type Format string

const (
	// FormatTable is the default table output format.
	FormatTable Format = "table"
	// FormatCSV is the CSV output format.
	FormatCSV Format = "csv"
	// FormatJSON is the JSON output format.
	FormatJSON Format = "json"
)

// ParseFormat parses a string into a Format, returning an error for unknown formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q, must be one of: table, csv, json", s)
	}
}

// Table is tabular output.
type Table struct {
	Headers []string
	Rows    [][]string
	// Totals is an optional row written after the data rows in table format.
	Totals []string
}

// Write writes the output in the given format.
//
// Table and CSV output is written from table. JSON output writes objects,
// one per line.
func Write[O any](writer io.Writer, format Format, table Table, objects []O) error {
	switch format {
	case FormatTable:
		return WriteTable(writer, table)
	case FormatCSV:
		return WriteCSV(writer, table)
	case FormatJSON:
		return WriteJSON(writer, objects...)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteTable writes the table to the writer using tabwriter for aligned columns.
//
// If the table has totals, they are written after a blank line through the
// same tabwriter so columns align between data and totals.
func WriteTable(writer io.Writer, table Table) error {
	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	if err := writeTabLine(tw, table.Headers); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := writeTabLine(tw, row); err != nil {
			return err
		}
	}
	if len(table.Totals) > 0 {
		// Tabs preserve column alignment on the blank line.
		if err := writeTabLine(tw, make([]string, len(table.Headers))); err != nil {
			return err
		}
		if err := writeTabLine(tw, table.Totals); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteCSV writes the headers and rows of the table as CSV records. Totals are not written.
func WriteCSV(writer io.Writer, table Table) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(table.Headers); err != nil {
		return err
	}
	if err := csvWriter.WriteAll(table.Rows); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteJSON writes objects as JSON with newlines between each object.
func WriteJSON[O any](writer io.Writer, objects ...O) error {
	encoder := json.NewEncoder(writer)
	for _, object := range objects {
		if err := encoder.Encode(object); err != nil {
			return err
		}
	}
	return nil
}

// *** PRIVATE ***

func writeTabLine(writer io.Writer, values []string) error {
	_, err := fmt.Fprintln(writer, strings.Join(values, "\t"))
	return err
}
