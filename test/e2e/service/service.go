package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/task-engine/api/v1"
)

const (
	apiV1TasksPath = "/api/v1/tasks"
	apiV1PoolPath  = "/api/v1/pool"
	healthPath     = "/health"
	metricsPath    = "/metrics"
)

// TaskEngineSvc is an HTTP client for the task-engine API.
type TaskEngineSvc struct {
	baseURL string
	client  *http.Client
}

func NewTaskEngineService(baseURL string, timeout time.Duration) *TaskEngineSvc {
	zap.S().Infow("initializing task engine client", "url", baseURL)
	return &TaskEngineSvc{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func (s *TaskEngineSvc) Health() error {
	return s.do(http.MethodGet, healthPath, nil, nil)
}

// Metrics returns the raw Prometheus exposition text.
func (s *TaskEngineSvc) Metrics() (string, error) {
	resp, err := s.client.Get(s.baseURL + metricsPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	return string(body), nil
}

func (s *TaskEngineSvc) SubmitSleep(name string, d time.Duration) (*v1.Task, error) {
	duration := d.String()
	return s.Submit(v1.CreateTaskRequest{Name: &name, Kind: v1.TaskKindSleep, Duration: &duration})
}

func (s *TaskEngineSvc) SubmitLog(name, message string) (*v1.Task, error) {
	return s.Submit(v1.CreateTaskRequest{Name: &name, Kind: v1.TaskKindLog, Message: &message})
}

func (s *TaskEngineSvc) Submit(req v1.CreateTaskRequest) (*v1.Task, error) {
	var task v1.Task
	if err := s.do(http.MethodPost, apiV1TasksPath, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskEngineSvc) GetTask(id uuid.UUID) (*v1.Task, error) {
	var task v1.Task
	if err := s.do(http.MethodGet, apiV1TasksPath+"/"+id.String(), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskEngineSvc) CancelTask(id uuid.UUID) (*v1.Task, error) {
	var task v1.Task
	if err := s.do(http.MethodDelete, apiV1TasksPath+"/"+id.String(), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskEngineSvc) ListTasks(states ...v1.TaskState) (*v1.TaskList, error) {
	path := apiV1TasksPath
	if len(states) > 0 {
		q := url.Values{}
		for _, st := range states {
			q.Add("state", string(st))
		}
		path += "?" + q.Encode()
	}

	var list v1.TaskList
	if err := s.do(http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *TaskEngineSvc) GetPool() (*v1.PoolStatus, error) {
	return s.poolCall(http.MethodGet, apiV1PoolPath)
}

func (s *TaskEngineSvc) RunPool() (*v1.PoolStatus, error) {
	return s.poolCall(http.MethodPost, apiV1PoolPath+"/run")
}

func (s *TaskEngineSvc) TerminatePool() (*v1.PoolStatus, error) {
	return s.poolCall(http.MethodPost, apiV1PoolPath+"/terminate")
}

func (s *TaskEngineSvc) ClearPool() (int, error) {
	var resp v1.ClearResponse
	if err := s.do(http.MethodPost, apiV1PoolPath+"/clear", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Dropped, nil
}

func (s *TaskEngineSvc) poolCall(method, path string) (*v1.PoolStatus, error) {
	var status v1.PoolStatus
	if err := s.do(method, path, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *TaskEngineSvc) do(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
