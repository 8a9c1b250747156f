// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexquery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bufdev/ibflex/internal/pkg/backoff"
	"github.com/bufdev/ibflex/internal/standard/xtime"
	"github.com/stretchr/testify/require"
)

const testStatement = `<FlexQueryResponse queryName="test" type="AF"><FlexStatements count="0" /></FlexQueryResponse>`

var testRetryPolicy = backoff.Policy{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     time.Millisecond,
}

func TestDownload(t *testing.T) {
	t.Parallel()
	server := newTestServer(t, 0)
	client := newTestClient(server)
	data, err := client.Download(
		context.Background(),
		"secret token",
		"123",
		xtime.Date{Year: 2025, Month: time.April, Day: 1},
		xtime.Date{Year: 2025, Month: time.April, Day: 25},
	)
	require.NoError(t, err)
	require.Equal(t, testStatement, string(data))

	requests := server.getRequests()
	require.Len(t, requests, 2)
	sendRequest := requests[0]
	require.Equal(t, "/SendRequest", sendRequest.path)
	require.Equal(t, "Java", sendRequest.userAgent)
	require.Equal(t, "secret token", sendRequest.query.Get("t"))
	require.Equal(t, "123", sendRequest.query.Get("q"))
	require.Equal(t, "20250401", sendRequest.query.Get("fd"))
	require.Equal(t, "20250425", sendRequest.query.Get("td"))
	require.Equal(t, "3", sendRequest.query.Get("v"))
	getStatement := requests[1]
	require.Equal(t, "/GetStatement", getStatement.path)
	require.Equal(t, "REF1", getStatement.query.Get("q"))
}

func TestDownloadWithoutDates(t *testing.T) {
	t.Parallel()
	server := newTestServer(t, 0)
	_, err := newTestClient(server).Download(context.Background(), "token", "123", xtime.Date{}, xtime.Date{})
	require.NoError(t, err)
	sendRequest := server.getRequests()[0]
	require.False(t, sendRequest.query.Has("fd"))
	require.False(t, sendRequest.query.Has("td"))
}

func TestDownloadRetriesWhileGenerating(t *testing.T) {
	t.Parallel()
	server := newTestServer(t, 2)
	data, err := newTestClient(server).Download(context.Background(), "token", "123", xtime.Date{}, xtime.Date{})
	require.NoError(t, err)
	require.Equal(t, testStatement, string(data))
	// One SendRequest, two pending GetStatements, one final GetStatement.
	require.Len(t, server.getRequests(), 4)
}

func TestDownloadRetriesExhausted(t *testing.T) {
	t.Parallel()
	server := newTestServer(t, 10)
	_, err := newTestClient(server).Download(context.Background(), "token", "123", xtime.Date{}, xtime.Date{})
	var flexError *Error
	require.True(t, errors.As(err, &flexError))
	require.Equal(t, "1019", flexError.Code)
	require.True(t, flexError.Retryable())
	require.ErrorContains(t, err, "failed after 3 attempts")
}

func TestDownloadSendRequestError(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	server := httptest.NewServer(
		http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			writeFlexStatementResponse(writer, "Fail", "", "1012", "Token has expired.")
		}),
	)
	t.Cleanup(server.Close)
	client := NewClient(
		slog.New(slog.DiscardHandler),
		ClientWithBaseURL(server.URL+"/"),
		ClientWithHTTPClient(server.Client()),
		ClientWithRetryPolicy(testRetryPolicy),
	)
	_, err := client.Download(context.Background(), "token", "123", xtime.Date{}, xtime.Date{})
	var flexError *Error
	require.True(t, errors.As(err, &flexError))
	require.Equal(t, "1012", flexError.Code)
	require.Equal(t, "Token has expired.", flexError.Message)
	require.False(t, flexError.Retryable())
	// Non-retryable errors are not retried.
	require.Equal(t, int32(1), calls.Load())
}

func TestDownloadHTTPError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(
		http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			http.Error(writer, "unavailable", http.StatusServiceUnavailable)
		}),
	)
	t.Cleanup(server.Close)
	client := NewClient(
		slog.New(slog.DiscardHandler),
		ClientWithBaseURL(server.URL),
		ClientWithRetryPolicy(testRetryPolicy),
	)
	_, err := client.Download(context.Background(), "token", "123", xtime.Date{}, xtime.Date{})
	require.ErrorContains(t, err, "unexpected status 503")
}

func TestDownloadInvalidArguments(t *testing.T) {
	t.Parallel()
	client := NewClient(slog.New(slog.DiscardHandler), ClientWithBaseURL("http://127.0.0.1:0"))
	ctx := context.Background()
	date := xtime.Date{Year: 2025, Month: time.April, Day: 25}
	_, err := client.Download(ctx, "", "123", xtime.Date{}, xtime.Date{})
	require.ErrorContains(t, err, "token is required")
	_, err = client.Download(ctx, "token", "", xtime.Date{}, xtime.Date{})
	require.ErrorContains(t, err, "query ID is required")
	_, err = client.Download(ctx, "token", "123", date, xtime.Date{})
	require.ErrorContains(t, err, "both be set")
	_, err = client.Download(ctx, "token", "123", date, date.AddDays(-1))
	require.ErrorContains(t, err, "is before")
}

type testRequest struct {
	path      string
	userAgent string
	query     url.Values
}

type testServer struct {
	*httptest.Server

	lock     sync.Mutex
	requests []testRequest
	// pending is the number of GetStatement calls that report the statement
	// as still generating.
	pending int
}

func newTestServer(t *testing.T, pending int) *testServer {
	t.Helper()
	testServer := &testServer{pending: pending}
	testServer.Server = httptest.NewServer(http.HandlerFunc(testServer.handle))
	t.Cleanup(testServer.Close)
	return testServer
}

func (s *testServer) handle(writer http.ResponseWriter, request *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.requests = append(
		s.requests,
		testRequest{
			path:      request.URL.Path,
			userAgent: request.UserAgent(),
			query:     request.URL.Query(),
		},
	)
	switch request.URL.Path {
	case "/SendRequest":
		writeFlexStatementResponse(writer, "Success", "REF1", "", "")
	case "/GetStatement":
		if s.pending > 0 {
			s.pending--
			writeFlexStatementResponse(writer, "Warn", "", "1019", "Statement generation in progress. Please try again shortly.")
			return
		}
		_, _ = fmt.Fprint(writer, testStatement)
	default:
		http.NotFound(writer, request)
	}
}

func (s *testServer) getRequests() []testRequest {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.requests
}

func newTestClient(server *testServer) Client {
	return NewClient(
		slog.New(slog.DiscardHandler),
		ClientWithBaseURL(server.URL),
		ClientWithHTTPClient(server.Client()),
		ClientWithRetryPolicy(testRetryPolicy),
	)
}

func writeFlexStatementResponse(writer http.ResponseWriter, status string, referenceCode string, errorCode string, errorMessage string) {
	_, _ = fmt.Fprintf(
		writer,
		`<FlexStatementResponse timestamp="25 April, 2025 08:00 PM EDT"><Status>%s</Status><ReferenceCode>%s</ReferenceCode><ErrorCode>%s</ErrorCode><ErrorMessage>%s</ErrorMessage></FlexStatementResponse>`,
		status,
		referenceCode,
		errorCode,
		errorMessage,
	)
}
