// Package client implements the Workday REST API client. Every call is
// authenticated with a short-lived access token supplied by the caller; the
// client itself holds no credentials.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"workday-mcp/internal/config"
)

const defaultTimeout = 30 * time.Second

// ErrWorkerNotFound is returned when a worker search yields no records.
var ErrWorkerNotFound = errors.New("no worker found in workday")

// APIError is a non-2xx response from the Workday API, with a human-readable
// message extracted from the response body when one is present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("workday api error %d", e.StatusCode)
}

// Client talks to the Workday REST API.
type Client struct {
	Workday    config.Workday
	HTTPClient *http.Client
}

// NewClient creates a Workday API client from the process configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		Workday:    cfg.Workday,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SearchWorker looks up a worker by identifier and returns the first match.
func (c *Client) SearchWorker(ctx context.Context, accessToken, workerID string) (*Worker, error) {
	searchURL := fmt.Sprintf("%s?search='%s'", c.Workday.WorkersURL(), workerID)

	var result struct {
		Data []Worker `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, searchURL, &result); err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("%w: id %s", ErrWorkerNotFound, workerID)
	}

	return &result.Data[0], nil
}

// LeaveBalances returns the worker's absence plan balances.
func (c *Client) LeaveBalances(ctx context.Context, accessToken, workdayID string) ([]AbsenceBalance, error) {
	u := c.Workday.AbsenceURL("/balances?worker=" + workdayID)

	var result struct {
		Data []AbsenceBalance `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// EligibleAbsenceTypes returns the absence types the worker may request.
func (c *Client) EligibleAbsenceTypes(ctx context.Context, accessToken, workdayID string) ([]AbsenceType, error) {
	u := c.Workday.AbsenceURL("/workers/" + workdayID + "/eligibleAbsenceTypes")

	var result struct {
		Data []AbsenceType `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// LeavesOfAbsence returns the worker's leave-of-absence events.
func (c *Client) LeavesOfAbsence(ctx context.Context, accessToken, workdayID string) ([]LeaveOfAbsence, error) {
	u := c.Workday.AbsenceURL("/workers/" + workdayID + "/leavesOfAbsence")

	var result struct {
		Data []LeaveOfAbsence `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// TimeOffDetails returns the worker's booked time off.
func (c *Client) TimeOffDetails(ctx context.Context, accessToken, workdayID string) ([]TimeOffDetail, error) {
	u := c.Workday.AbsenceURL("/workers/" + workdayID + "/timeOffDetails")

	var result struct {
		Data []TimeOffDetail `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// DirectReports returns the workers reporting to the given worker.
func (c *Client) DirectReports(ctx context.Context, accessToken, workdayID string) ([]DirectReport, error) {
	u := c.Workday.CommonURL("/workers/" + workdayID + "/directReports")

	var result struct {
		Data []DirectReport `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// InboxTasks returns the worker's pending inbox tasks.
func (c *Client) InboxTasks(ctx context.Context, accessToken, workdayID string) ([]InboxTask, error) {
	u := c.Workday.CommonURL("/workers/" + workdayID + "/inboxTasks")

	var result struct {
		Data []InboxTask `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// PaySlips returns the worker's recent pay slips.
func (c *Client) PaySlips(ctx context.Context, accessToken, workdayID string) ([]PaySlip, error) {
	u := c.Workday.CommonURL("/workers/" + workdayID + "/paySlips")

	var result struct {
		Data []PaySlip `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// TimeOffEntries returns the worker's time-off entries.
func (c *Client) TimeOffEntries(ctx context.Context, accessToken, workdayID string) ([]TimeOffEntry, error) {
	u := c.Workday.CommonURL("/workers/" + workdayID + "/timeOffEntries")

	var result struct {
		Data []TimeOffEntry `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// LearningAssignments returns the worker's required learning assignments from
// the Required_Learning custom report.
func (c *Client) LearningAssignments(ctx context.Context, accessToken, workdayID string) ([]LearningAssignment, error) {
	params := url.Values{}
	params.Set("Worker_s__for_Learning_Assignment!WID", workdayID)
	params.Set("format", "json")
	u := c.Workday.RequiredLearningReportURL() + "?" + params.Encode()

	var result struct {
		ReportEntry []LearningAssignment `json:"Report_Entry"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.ReportEntry, nil
}

// SearchLearningContent queries the learning catalog filtered by skills and
// topics.
func (c *Client) SearchLearningContent(ctx context.Context, accessToken string, skills, topics []string) ([]LearningContent, error) {
	params := url.Values{}
	for _, skill := range skills {
		params.Add("skills", skill)
	}
	for _, topic := range topics {
		params.Add("topics", topic)
	}
	u := c.Workday.LearningURL("/content")
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}

	var result struct {
		Data []LearningContent `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// Lessons returns the lessons of a learning content item.
func (c *Client) Lessons(ctx context.Context, accessToken, contentID string) ([]Lesson, error) {
	u := c.Workday.LearningURL("/content/" + contentID + "/lessons")

	var result struct {
		Data []Lesson `json:"data"`
	}
	if err := c.getJSON(ctx, accessToken, u, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// RequestTimeOff submits a time-off request for the worker. The call is a
// mutation and is never retried: a transport failure or timeout after the
// request was sent leaves the outcome unknown and is reported as-is.
func (c *Client) RequestTimeOff(ctx context.Context, accessToken, workdayID string, request TimeOffRequest) (*BookingResponse, error) {
	u := c.Workday.AbsenceURL("/workers/" + workdayID + "/requestTimeOff")

	body, err := c.postJSON(ctx, accessToken, u, request)
	if err != nil {
		return nil, err
	}

	response := &BookingResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, fmt.Errorf("failed to decode booking response: %w", err)
	}
	if err := json.Unmarshal(body, &response.Raw); err != nil {
		return nil, fmt.Errorf("failed to decode booking response: %w", err)
	}

	return response, nil
}

// ChangeBusinessTitle submits a business title change for the worker. Like
// RequestTimeOff this is a mutation and is never retried.
func (c *Client) ChangeBusinessTitle(ctx context.Context, accessToken, workdayID, proposedTitle string) (map[string]any, error) {
	u := c.Workday.CommonURL("/workers/" + workdayID + "/businessTitleChanges?type=me")

	body, err := c.postJSON(ctx, accessToken, u, map[string]string{"proposedBusinessTitle": proposedTitle})
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode title change response: %w", err)
	}

	return result, nil
}

func (c *Client) getJSON(ctx context.Context, accessToken, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	body, err := c.do(req, accessToken)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}

func (c *Client) postJSON(ctx context.Context, accessToken, u string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}

	return c.do(req, accessToken)
}

func (c *Client) do(req *http.Request, accessToken string) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// newAPIError extracts a message from a Workday error body, checking
// errors[0].error, then error, then message.
func newAPIError(status int, body []byte) *APIError {
	var parsed struct {
		Errors []struct {
			Error string `json:"error"`
		} `json:"errors"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}

	switch {
	case len(parsed.Errors) > 0 && parsed.Errors[0].Error != "":
		apiErr.Message = parsed.Errors[0].Error
	case parsed.Error != "":
		apiErr.Message = parsed.Error
	case parsed.Message != "":
		apiErr.Message = parsed.Message
	}

	return apiErr
}
