package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const connectErrorMessage = "Cannot connect to the server. Please try again later."

// SubmitResult is the confirmation returned by a successful admission.
type SubmitResult struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AdmissionNo string `json:"admissionNo"`
}

// envelope mirrors the server's response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []string        `json:"errors"`
}

// Client submits admission forms to the API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	schoolID   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSchoolID sets the school identifier attached to every submission.
func WithSchoolID(id string) Option {
	return func(c *Client) { c.schoolID = id }
}

// NewClient creates a client for the given API base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		schoolID:   "1",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitAdmission posts the flattened form as one multipart request: every
// scalar as a text part (dotted keys for groups), every attached document as
// a binary part, plus the school identifier. The response body is parsed as
// JSON even on failure statuses; a failure is turned into an error whose
// message is the most specific thing the server said.
func (c *Client) SubmitAdmission(ctx context.Context, form *Form) (*SubmitResult, error) {
	body, contentType, err := c.encode(form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/students/admissions", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(connectErrorMessage)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(connectErrorMessage)
	}

	var env envelope
	parseErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (parseErr == nil && !env.Success) {
		if parseErr != nil {
			return nil, fmt.Errorf("Server error (status %d)", resp.StatusCode)
		}
		return nil, errors.New(failureMessage(&env, resp.StatusCode))
	}
	if parseErr != nil {
		return nil, fmt.Errorf("Server error (status %d)", resp.StatusCode)
	}

	var result SubmitResult
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &result); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// failureMessage picks the most specific server-provided text: the message
// field, then the error field, then the joined field errors, then a generic
// status line.
func failureMessage(env *envelope, status int) string {
	if env.Message != "" {
		return env.Message
	}
	if env.Error != "" {
		return env.Error
	}
	if len(env.Errors) > 0 {
		return strings.Join(env.Errors, ", ")
	}
	return fmt.Sprintf("Server error (status %d)", status)
}

func (c *Client) encode(form *Form) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range form.Fields() {
		if err := writer.WriteField(field.Key, field.Value); err != nil {
			return nil, "", err
		}
	}

	for name, doc := range form.Documents() {
		part, err := writer.CreateFormFile(name, doc.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(doc.Data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.WriteField("schoolId", c.schoolID); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
