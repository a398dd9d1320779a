package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lockin/internal/api"
)

// ErrDaemonUnavailable reports that no daemon is listening on the configured
// bind address.
var ErrDaemonUnavailable = errors.New("daemon unavailable")

// Client drives a running daemon through its HTTP API.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for the daemon bound at the given address. The address
// may be a bare host:port; a scheme is added when missing.
func New(bind string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("daemon bind address required")
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, fmt.Errorf("parse bind address: %w", err)
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base: base,
		http: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// IsDaemonUnavailable reports whether err indicates the daemon is not
// reachable, as opposed to an API-level failure.
func IsDaemonUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.Is(err, ErrDaemonUnavailable) || errors.As(err, &opErr)
}

// Status fetches the daemon's runtime summary.
func (c *Client) Status(ctx context.Context) (api.DaemonStatus, error) {
	var payload api.StatusResponse
	if err := c.getJSON(ctx, "/api/status", nil, &payload); err != nil {
		return api.DaemonStatus{}, err
	}
	return payload.Status, nil
}

// Timer fetches the current countdown state.
func (c *Client) Timer(ctx context.Context) (api.TimerState, error) {
	var payload api.TimerResponse
	if err := c.getJSON(ctx, "/api/timer", nil, &payload); err != nil {
		return api.TimerState{}, err
	}
	return payload.Timer, nil
}

// TimerStart begins a countdown from an explicit duration or named preset.
func (c *Client) TimerStart(ctx context.Context, req api.TimerStartRequest) (api.TimerState, error) {
	var payload api.TimerResponse
	if err := c.postJSON(ctx, "/api/timer/start", req, &payload); err != nil {
		return api.TimerState{}, err
	}
	return payload.Timer, nil
}

// TimerPause suspends the countdown.
func (c *Client) TimerPause(ctx context.Context) (api.TimerState, error) {
	return c.timerCommand(ctx, "/api/timer/pause")
}

// TimerResume continues a paused countdown.
func (c *Client) TimerResume(ctx context.Context) (api.TimerState, error) {
	return c.timerCommand(ctx, "/api/timer/resume")
}

// TimerReset abandons the countdown without logging a session.
func (c *Client) TimerReset(ctx context.Context) (api.TimerState, error) {
	return c.timerCommand(ctx, "/api/timer/reset")
}

func (c *Client) timerCommand(ctx context.Context, path string) (api.TimerState, error) {
	var payload api.TimerResponse
	if err := c.postJSON(ctx, path, nil, &payload); err != nil {
		return api.TimerState{}, err
	}
	return payload.Timer, nil
}

// Presets lists the quick-start countdown presets.
func (c *Client) Presets(ctx context.Context) ([]api.Preset, error) {
	var payload api.PresetListResponse
	if err := c.getJSON(ctx, "/api/timer/presets", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Presets, nil
}

// Stats fetches aggregate study statistics over the last days.
func (c *Client) Stats(ctx context.Context, days int) (api.Stats, error) {
	values := url.Values{}
	if days > 0 {
		values.Set("days", strconv.Itoa(days))
	}
	var payload api.StatsResponse
	if err := c.getJSON(ctx, "/api/stats", values, &payload); err != nil {
		return api.Stats{}, err
	}
	return payload.Stats, nil
}

// Sessions fetches the most recent study sessions.
func (c *Client) Sessions(ctx context.Context, limit int) ([]api.Session, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var payload api.SessionListResponse
	if err := c.getJSON(ctx, "/api/sessions", values, &payload); err != nil {
		return nil, err
	}
	return payload.Sessions, nil
}

// Goal fetches goal progress for today.
func (c *Client) Goal(ctx context.Context) (api.Goal, error) {
	var payload api.GoalResponse
	if err := c.getJSON(ctx, "/api/goal", nil, &payload); err != nil {
		return api.Goal{}, err
	}
	return payload.Goal, nil
}

// Alarms lists all alarms.
func (c *Client) Alarms(ctx context.Context) ([]api.Alarm, error) {
	var payload api.AlarmListResponse
	if err := c.getJSON(ctx, "/api/alarms", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Alarms, nil
}

// AddAlarm creates an alarm at a 24-hour HH:MM time of day.
func (c *Client) AddAlarm(ctx context.Context, req api.AlarmCreateRequest) (api.Alarm, error) {
	var payload api.AlarmResponse
	if err := c.postJSON(ctx, "/api/alarms", req, &payload); err != nil {
		return api.Alarm{}, err
	}
	return payload.Alarm, nil
}

// RemoveAlarm deletes the alarm with the given id.
func (c *Client) RemoveAlarm(ctx context.Context, id int64) error {
	endpoint := c.resolve("/api/alarms/"+strconv.FormatInt(id, 10), nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ToggleAlarm flips the active flag on the alarm with the given id.
func (c *Client) ToggleAlarm(ctx context.Context, id int64) (api.Alarm, error) {
	var payload api.AlarmResponse
	if err := c.postJSON(ctx, "/api/alarms/"+strconv.FormatInt(id, 10)+"/toggle", nil, &payload); err != nil {
		return api.Alarm{}, err
	}
	return payload.Alarm, nil
}

// UploadDocument sends a local file to the daemon for extraction and storage.
func (c *Client) UploadDocument(ctx context.Context, path string) (api.DocumentResponse, error) {
	var empty api.DocumentResponse

	file, err := os.Open(path)
	if err != nil {
		return empty, fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return empty, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return empty, fmt.Errorf("read document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return empty, fmt.Errorf("finalize upload: %w", err)
	}

	endpoint := c.resolve("/api/documents", nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return empty, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var payload api.DocumentResponse
	if err := c.do(req, &payload); err != nil {
		return empty, err
	}
	return payload, nil
}

// Documents lists uploaded documents, newest first.
func (c *Client) Documents(ctx context.Context) ([]api.Document, error) {
	var payload api.DocumentListResponse
	if err := c.getJSON(ctx, "/api/documents", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Documents, nil
}

// Document fetches one document by id.
func (c *Client) Document(ctx context.Context, id int64) (api.Document, error) {
	var payload api.DocumentResponse
	if err := c.getJSON(ctx, "/api/documents/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return api.Document{}, err
	}
	return payload.Document, nil
}

// AnalyzeDocument runs AI analysis on the stored document and persists the
// result.
func (c *Client) AnalyzeDocument(ctx context.Context, id int64) (api.AnalysisResponse, error) {
	var payload api.AnalysisResponse
	if err := c.postJSON(ctx, "/api/documents/"+strconv.FormatInt(id, 10)+"/analyze", nil, &payload); err != nil {
		return api.AnalysisResponse{}, err
	}
	return payload, nil
}

// Chat sends a free-form message to the configured AI provider.
func (c *Client) Chat(ctx context.Context, message string) (api.ChatResponse, error) {
	var payload api.ChatResponse
	if err := c.postJSON(ctx, "/api/chat", api.ChatRequest{Message: message}, &payload); err != nil {
		return api.ChatResponse{}, err
	}
	return payload, nil
}

// Settings fetches the persisted application settings.
func (c *Client) Settings(ctx context.Context) (api.Settings, error) {
	var payload api.SettingsResponse
	if err := c.getJSON(ctx, "/api/settings", nil, &payload); err != nil {
		return api.Settings{}, err
	}
	return payload.Settings, nil
}

// SaveSettings overwrites the persisted application settings.
func (c *Client) SaveSettings(ctx context.Context, settings api.Settings) (api.Settings, error) {
	endpoint := c.resolve("/api/settings", nil)
	encoded, err := json.Marshal(settings)
	if err != nil {
		return api.Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return api.Settings{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var payload api.SettingsResponse
	if err := c.do(req, &payload); err != nil {
		return api.Settings{}, err
	}
	return payload.Settings, nil
}

func (c *Client) resolve(path string, values url.Values) string {
	ref := &url.URL{Path: path}
	if len(values) > 0 {
		ref.RawQuery = values.Encode()
	}
	return c.base.ResolveReference(ref).String()
}

func (c *Client) getJSON(ctx context.Context, path string, values url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path, values), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path, nil), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return fmt.Errorf("daemon: %s", payload.Error)
	}
	return fmt.Errorf("daemon returned status %d", resp.StatusCode)
}
