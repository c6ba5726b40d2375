package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/dto"
)

const maxResponseBytes = 32 << 20

// httpRemote implements adapter.RemoteStore against a remote action endpoint.
type httpRemote struct {
	client  *http.Client
	baseURL string
}

// NewHTTPRemote creates a remote store that talks to the action endpoint at baseURL.
func NewHTTPRemote(baseURL string, timeout time.Duration) adapter.RemoteStore {
	return &httpRemote{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Load fetches the snapshot with GET ?action=loadData.
func (r *httpRemote) Load(ctx context.Context) (*entity.Snapshot, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	q := u.Query()
	q.Set("action", dto.ActionLoadData)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build load request: %w", err)
	}

	body, err := r.do(req)
	if err != nil {
		return nil, err
	}

	var response dto.LoadDataResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeMalformedResponse,
			"loadData response is not valid JSON",
			fmt.Errorf("%w: %v", domainerror.ErrMalformedResponse, err),
		)
	}
	return response.ToSnapshot(), nil
}

// SaveData posts the saveData action.
func (r *httpRemote) SaveData(ctx context.Context, records []entity.MonthlyRecord) error {
	return r.post(ctx, dto.ActionSaveData, dto.ToSaveDataRows(records))
}

// SaveStatus posts the saveStatus action.
func (r *httpRemote) SaveStatus(ctx context.Context, statuses []entity.MonthStatus) error {
	return r.post(ctx, dto.ActionSaveStatus, dto.ToSaveStatusRows(statuses))
}

func (r *httpRemote) post(ctx context.Context, action string, payload any) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", action, err)
	}
	body, err := json.Marshal(dto.ActionRequest{Action: action, Payload: rawPayload})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := r.do(req)
	if err != nil {
		return err
	}

	var response dto.ActionResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return domainerror.NewSyncError(
			domainerror.ErrCodeMalformedResponse,
			action+" response is not valid JSON",
			fmt.Errorf("%w: %v", domainerror.ErrMalformedResponse, err),
		)
	}
	if response.Error != "" || !response.Success {
		return domainerror.NewSyncError(
			domainerror.ErrCodeRemoteRejected,
			action+" rejected by remote: "+response.Error,
			domainerror.ErrRemoteRejected,
		)
	}
	return nil
}

// do sends req and returns the JSON object found in the body.
func (r *httpRemote) do(req *http.Request) ([]byte, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeRemoteUnavailable,
			"remote store unreachable",
			fmt.Errorf("%w: %v", domainerror.ErrRemoteUnavailable, err),
		)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeRemoteUnavailable,
			"failed to read remote response",
			fmt.Errorf("%w: %v", domainerror.ErrRemoteUnavailable, err),
		)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeRemoteUnavailable,
			fmt.Sprintf("remote store returned %d", resp.StatusCode),
			domainerror.ErrRemoteUnavailable,
		)
	}

	body, ok := dto.ExtractJSONObject(raw)
	if !ok {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeMalformedResponse,
			"remote response has no JSON object",
			domainerror.ErrMalformedResponse,
		)
	}
	return body, nil
}
