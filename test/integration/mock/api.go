package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RemoteMock is a fake remote action endpoint. It records every action it
// receives and answers loadData with a configurable body.
type RemoteMock struct {
	mu             sync.Mutex
	actions        []string
	payloads       map[string][]json.RawMessage
	loadDataStatus int
	loadDataBody   string
	postStatus     int
	mockUrl        string
}

// NewRemoteServer creates a remote mock that answers loadData with an empty snapshot.
func NewRemoteServer() *RemoteMock {
	r := &RemoteMock{}
	r.Reset()
	return r
}

// Start serves the mock on a random local port.
func (r *RemoteMock) Start() {
	server := httptest.NewServer(http.HandlerFunc(r.serve))
	r.mockUrl = server.URL
}

func (r *RemoteMock) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.Method == http.MethodGet {
		action := req.URL.Query().Get("action")
		r.actions = append(r.actions, action)
		w.WriteHeader(r.loadDataStatus)
		_, _ = w.Write([]byte(r.loadDataBody))
		return
	}

	body, _ := io.ReadAll(req.Body)
	var request struct {
		Action  string          `json:"action"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = json.Unmarshal(body, &request)

	r.actions = append(r.actions, request.Action)
	r.payloads[request.Action] = append(r.payloads[request.Action], request.Payload)

	w.WriteHeader(r.postStatus)
	if r.postStatus >= http.StatusBadRequest {
		_, _ = w.Write([]byte(`{"error":"remote unavailable"}`))
		return
	}
	_, _ = w.Write([]byte(`{"success":true}`))
}

// GetUrl returns the base URL of the mock.
func (r *RemoteMock) GetUrl() string {
	return r.mockUrl
}

// SetLoadData sets the status and raw body returned for loadData.
func (r *RemoteMock) SetLoadData(status int, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadDataStatus = status
	r.loadDataBody = body
}

// SetPostStatus sets the status returned for saveData and saveStatus.
func (r *RemoteMock) SetPostStatus(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postStatus = status
}

// Received returns how many times action was received.
func (r *RemoteMock) Received(action string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, a := range r.actions {
		if a == action {
			count++
		}
	}
	return count
}

// LastPayload returns the payload of the latest request for action.
func (r *RemoteMock) LastPayload(action string) (json.RawMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payloads := r.payloads[action]
	if len(payloads) == 0 {
		return nil, false
	}
	return payloads[len(payloads)-1], true
}

// Reset forgets received requests and restores the default replies.
func (r *RemoteMock) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
	r.payloads = map[string][]json.RawMessage{}
	r.loadDataStatus = http.StatusOK
	r.loadDataBody = `{"monthly_data":[],"month_status":[]}`
	r.postStatus = http.StatusOK
}
