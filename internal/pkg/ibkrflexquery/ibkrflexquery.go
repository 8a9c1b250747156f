// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ibkrflexquery provides an API client for the IBKR Flex Query Web Service.
//
// The Flex Query Web Service is a two-step REST API:
//  1. SendRequest: Submits a query and returns a reference code.
//  2. GetStatement: Polls with the reference code until the XML statement is ready.
//
// Both endpoints require a Flex Web Service token for authentication and
// a "Java" User-Agent header. Both endpoints may return transient errors
// (e.g., 1001 server busy, 1019 statement generating) which are retried
// with exponential backoff.
//
// The client returns the raw statement XML. Decoding is left to the caller.
package ibkrflexquery

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bufdev/ibflex/internal/pkg/backoff"
	"github.com/bufdev/ibflex/internal/standard/xtime"
)

const (
	// DefaultBaseURL is the base URL of the IBKR Flex Web Service.
	DefaultBaseURL = "https://ndcdyn.interactivebrokers.com/AccountManagement/FlexWebService"
	// userAgent is the required User-Agent header for IBKR (IBKR expects "Java").
	userAgent = "Java"
	// apiVersion is the value of the v query parameter.
	apiVersion = "3"
)

// DefaultRetryPolicy is the retry policy used for each API call unless overridden.
var DefaultRetryPolicy = backoff.Policy{
	MaxAttempts:  10,
	InitialDelay: 2 * time.Second,
	MaxDelay:     30 * time.Second,
}

// Client is the interface for downloading Flex Query statements from IBKR.
type Client interface {
	// Download fetches the raw XML of a Flex Query statement.
	//
	// The token is the Flex Web Service token generated in the IBKR portal.
	// The queryID identifies which Flex Query to execute.
	// The fromDate and toDate optionally override the query's configured period.
	// Pass zero-value dates to use the query's default period.
	// If one is set, both must be set. Each request is limited to 365 days.
	Download(ctx context.Context, token string, queryID string, fromDate xtime.Date, toDate xtime.Date) ([]byte, error)
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*client)

// ClientWithHTTPClient sets the HTTP client.
//
// The default is http.DefaultClient.
func ClientWithHTTPClient(httpClient *http.Client) ClientOption {
	return func(client *client) {
		client.httpClient = httpClient
	}
}

// ClientWithBaseURL sets the base URL that the SendRequest and GetStatement
// endpoints are resolved against.
//
// The default is DefaultBaseURL.
func ClientWithBaseURL(baseURL string) ClientOption {
	return func(client *client) {
		client.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// ClientWithRetryPolicy sets the retry policy for each API call.
//
// The default is DefaultRetryPolicy.
func ClientWithRetryPolicy(retryPolicy backoff.Policy) ClientOption {
	return func(client *client) {
		client.retryPolicy = retryPolicy
	}
}

// NewClient creates a new Flex Query API client. The logger is required.
func NewClient(logger *slog.Logger, options ...ClientOption) Client {
	client := &client{
		httpClient:  http.DefaultClient,
		logger:      logger,
		baseURL:     DefaultBaseURL,
		retryPolicy: DefaultRetryPolicy,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Error is an error reported by the Flex Web Service in a FlexStatementResponse.
type Error struct {
	// Code is the IBKR error code, such as "1019".
	Code string
	// Message is the IBKR error message.
	Message string
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
}

// Retryable returns true if the error is transient.
func (e *Error) Retryable() bool {
	_, ok := retryableErrorCodes[e.Code]
	return ok
}

// *** PRIVATE ***

type client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	baseURL     string
	retryPolicy backoff.Policy
}

// flexStatementResponse is the XML response from the SendRequest endpoint, and
// from the GetStatement endpoint when the statement is not available.
type flexStatementResponse struct {
	XMLName       xml.Name `xml:"FlexStatementResponse"`
	Status        string   `xml:"Status"`
	ReferenceCode string   `xml:"ReferenceCode"`
	URL           string   `xml:"Url"`
	ErrorCode     string   `xml:"ErrorCode"`
	ErrorMessage  string   `xml:"ErrorMessage"`
}

// retryableErrorCodes are IBKR error codes that indicate a transient failure.
var retryableErrorCodes = map[string]struct{}{
	"1001": {}, // Statement could not be generated at this time.
	"1019": {}, // Statement is being generated, please try again shortly.
}

func (c *client) Download(ctx context.Context, token string, queryID string, fromDate xtime.Date, toDate xtime.Date) ([]byte, error) {
	if token == "" {
		return nil, errors.New("token is required")
	}
	if queryID == "" {
		return nil, errors.New("query ID is required")
	}
	// If one date is set, both must be set.
	if fromDate.IsZero() != toDate.IsZero() {
		return nil, errors.New("fromDate and toDate must both be set or both be zero")
	}
	if !fromDate.IsZero() && toDate.Before(fromDate) {
		return nil, fmt.Errorf("toDate %s is before fromDate %s", toDate, fromDate)
	}
	referenceCode, err := c.sendRequest(ctx, token, queryID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("sending flex query request: %w", err)
	}
	c.logger.Info("flex query request sent", "reference_code", referenceCode)
	data, err := c.getStatement(ctx, token, referenceCode)
	if err != nil {
		return nil, fmt.Errorf("getting flex query statement: %w", err)
	}
	return data, nil
}

// sendRequest initiates a Flex Query and returns the reference code.
func (c *client) sendRequest(ctx context.Context, token string, queryID string, fromDate xtime.Date, toDate xtime.Date) (string, error) {
	// Parameter order matches IBKR docs: t, q, [fd, td], v.
	parameters := [][2]string{{"t", token}, {"q", queryID}}
	if !fromDate.IsZero() {
		parameters = append(parameters, [2]string{"fd", fromDate.CompactString()}, [2]string{"td", toDate.CompactString()})
	}
	parameters = append(parameters, [2]string{"v", apiVersion})
	requestURL := c.endpointURL("SendRequest", parameters)
	return backoff.Retry(ctx, c.retryPolicy,
		func(ctx context.Context, attempt int) (string, bool, error) {
			if attempt > 0 {
				c.logger.Info("retrying send request", "attempt", attempt+1)
			}
			c.logger.Debug("send request", "query_id", queryID, "has_dates", !fromDate.IsZero())
			body, err := c.get(ctx, requestURL)
			if err != nil {
				return "", false, err
			}
			var response flexStatementResponse
			if err := xml.Unmarshal(body, &response); err != nil {
				return "", false, fmt.Errorf("parsing send response: %w", err)
			}
			if response.Status != "Success" {
				return "", c.checkRetryable(response), newError(response)
			}
			if response.ReferenceCode == "" {
				return "", false, errors.New("send response has no reference code")
			}
			return response.ReferenceCode, false, nil
		},
	)
}

// getStatement polls the GetStatement endpoint until the data is ready.
func (c *client) getStatement(ctx context.Context, token string, referenceCode string) ([]byte, error) {
	// Parameter order matches IBKR docs: t, q, v.
	requestURL := c.endpointURL("GetStatement", [][2]string{{"t", token}, {"q", referenceCode}, {"v", apiVersion}})
	return backoff.Retry(ctx, c.retryPolicy,
		func(ctx context.Context, attempt int) ([]byte, bool, error) {
			if attempt > 0 {
				c.logger.Info("waiting for flex query statement", "attempt", attempt+1)
			}
			body, err := c.get(ctx, requestURL)
			if err != nil {
				return nil, false, err
			}
			// A FlexStatementResponse means the statement is not ready or failed.
			if strings.HasPrefix(strings.TrimSpace(string(body)), "<FlexStatementResponse") {
				var response flexStatementResponse
				if err := xml.Unmarshal(body, &response); err != nil {
					return nil, false, fmt.Errorf("parsing get response: %w", err)
				}
				return nil, c.checkRetryable(response), newError(response)
			}
			return body, false, nil
		},
	)
}

func (c *client) get(ctx context.Context, requestURL string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	// IBKR requires the "Java" User-Agent header.
	request.Header.Set("User-Agent", userAgent)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(response.Body)
	if closeErr := response.Body.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", response.StatusCode, string(body))
	}
	return body, nil
}

func (c *client) checkRetryable(response flexStatementResponse) bool {
	_, retryable := retryableErrorCodes[response.ErrorCode]
	if retryable {
		c.logger.Warn("transient IBKR error, will retry", "code", response.ErrorCode, "message", response.ErrorMessage)
	}
	return retryable
}

func (c *client) endpointURL(endpoint string, parameters [][2]string) string {
	var builder strings.Builder
	builder.WriteString(c.baseURL)
	builder.WriteString("/")
	builder.WriteString(endpoint)
	for i, parameter := range parameters {
		if i == 0 {
			builder.WriteString("?")
		} else {
			builder.WriteString("&")
		}
		builder.WriteString(parameter[0])
		builder.WriteString("=")
		builder.WriteString(url.QueryEscape(parameter[1]))
	}
	return builder.String()
}

func newError(response flexStatementResponse) *Error {
	return &Error{
		Code:    response.ErrorCode,
		Message: response.ErrorMessage,
	}
}
