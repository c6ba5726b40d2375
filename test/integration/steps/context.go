// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kpi-tracker/backend/config"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/infra/dependency"
	"github.com/kpi-tracker/backend/internal/integration/gateway"
	"github.com/kpi-tracker/backend/internal/integration/persistence/model"
	"github.com/kpi-tracker/backend/test/integration/mock"
)

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	source   gateway.Source
}

type response struct {
	status  int
	headers http.Header
	body    any
}

var (
	serverInit     sync.Once
	testServerPort int
	testDB         *mock.Db
	testRedis      *redis.Client
	testRedisSrv   *miniredis.Miniredis
	testRemote     *mock.RemoteMock
	testInjector   *dependency.Injector
)

// InitializeTestSuite prepares the shared database, cache, remote and server.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		testServerPort = findAvailablePort()
		testDB = mock.NewDb(map[string]any{
			"monthly_data": &model.MonthlyRecordModel{},
			"month_status": &model.MonthStatusModel{},
		})
		testRedis, testRedisSrv = mock.NewRedis()
		testRemote = mock.NewRemoteServer()
		testRemote.Start()

		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("SYNC_MODE", dependency.SyncModeHTTP)
		_ = os.Setenv("SYNC_REMOTE_URL", testRemote.GetUrl())
		_ = os.Setenv("SYNC_TIMEOUT", "2s")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// State setup steps
	ctx.Given(`^the following records exist:$`, test.theFollowingRecordsExist)
	ctx.Given(`^month (\d+) of "([^"]*)" is locked$`, test.monthOfIsLocked)
	ctx.Given(`^the remote store fails to load$`, test.theRemoteStoreFailsToLoad)
	ctx.Given(`^the remote store answers loadData with:$`, test.theRemoteStoreAnswersLoadDataWith)
	ctx.Given(`^the remote store rejects writes$`, test.theRemoteStoreRejectsWrites)
	ctx.Given(`^the cache key "([^"]*)" holds:$`, test.theCacheKeyHolds)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^the record store is reloaded$`, test.theRecordStoreIsReloaded)
	ctx.When(`^the sync queue is flushed$`, test.theSyncQueueIsFlushed)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Sync assertion steps
	ctx.Then(`^the remote should have received (\d+) "([^"]*)" requests?$`, test.theRemoteShouldHaveReceived)
	ctx.Then(`^the cache key "([^"]*)" should contain "([^"]*)"$`, test.theCacheKeyShouldContain)
	ctx.Then(`^the record store should be loaded from "([^"]*)"$`, test.theRecordStoreShouldBeLoadedFrom)
	ctx.Then(`^the record store should hold (\d+) records?$`, test.theRecordStoreShouldHold)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.uri = fmt.Sprintf("http://localhost:%d", testServerPort)
	t.headers = make(map[string]string)
	t.response = nil
	t.source = ""

	// Leftover jobs are drained first so they cannot leak into this scenario.
	if testInjector != nil {
		testInjector.Worker.ProcessNow(context.Background())
		testInjector.Store.Replace(&entity.Snapshot{})
		testInjector.RateLimiter.Reset()
	}
	if err := testDB.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(testRedis); err != nil {
		return err
	}
	testRemote.Reset()
	return nil
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		catalog, err := config.LoadCatalog("")
		if err != nil {
			startErr = err
			return
		}

		// The sync worker is not started: scenarios flush the queue explicitly.
		testInjector, err = dependency.NewInjector(config.Load(), testDB.DbConn, testRedis, catalog)
		if err != nil {
			startErr = err
			return
		}
		engine := testInjector.Router.Setup("test")

		go func() {
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}
	if testInjector == nil {
		return errors.New("test server failed to start")
	}

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("test server did not become healthy")
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theFollowingRecordsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("records table needs a header and at least one row")
	}
	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}

		month, err := strconv.Atoi(values["month"])
		if err != nil {
			return fmt.Errorf("invalid month %q: %w", values["month"], err)
		}
		value, err := strconv.ParseFloat(values["value"], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", values["value"], err)
		}

		testInjector.Store.Upsert(entity.MonthlyRecord{
			EmployeeID: values["employee_id"],
			Month:      month,
			Category:   values["category"],
			Section:    entity.Section(values["section"]),
			Actual:     value,
		})
	}
	return nil
}

func (t *testContext) monthOfIsLocked(month int, section string) error {
	testInjector.Store.SetLock(entity.Section(section), month, true)
	return nil
}

func (t *testContext) theRemoteStoreFailsToLoad() error {
	testRemote.SetLoadData(http.StatusInternalServerError, "")
	return nil
}

func (t *testContext) theRemoteStoreAnswersLoadDataWith(body *godog.DocString) error {
	testRemote.SetLoadData(http.StatusOK, body.Content)
	return nil
}

func (t *testContext) theRemoteStoreRejectsWrites() error {
	testRemote.SetPostStatus(http.StatusInternalServerError)
	return nil
}

func (t *testContext) theCacheKeyHolds(key string, body *godog.DocString) error {
	return testRedisSrv.Set(dependency.CacheKeyPrefix+key, strings.TrimSpace(body.Content))
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(body.Content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) theRecordStoreIsReloaded() error {
	t.source = testInjector.Hydrate(context.Background())
	return nil
}

func (t *testContext) theSyncQueueIsFlushed() error {
	testInjector.Worker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	parent, last := field, ""
	if i := strings.LastIndex(field, "."); i >= 0 {
		parent, last = field[:i], field[i+1:]
	}
	container, ok := getFieldValue(body, parent).(map[string]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an object in response: %v", parent, body)
	}
	value, exists := container[last]
	if !exists {
		return fmt.Errorf("field '%s' not found in response", field)
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got '%v'", field, value)
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	actual := t.response.headers.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := testDB.Count(table, nil)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	count, err := testDB.Count(table, criteria)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theRemoteShouldHaveReceived(quantity int, action string) error {
	if got := testRemote.Received(action); got != quantity {
		return fmt.Errorf("expected remote to receive %d '%s' requests, got %d", quantity, action, got)
	}
	return nil
}

func (t *testContext) theCacheKeyShouldContain(key, expected string) error {
	value, err := testRedisSrv.Get(dependency.CacheKeyPrefix + key)
	if err != nil {
		return fmt.Errorf("cache key '%s': %w", key, err)
	}
	if !strings.Contains(value, expected) {
		return fmt.Errorf("cache key '%s' expected to contain '%s', got '%s'", key, expected, value)
	}
	return nil
}

func (t *testContext) theRecordStoreShouldBeLoadedFrom(source string) error {
	if string(t.source) != source {
		return fmt.Errorf("expected record store to be loaded from '%s', got '%s'", source, t.source)
	}
	return nil
}

func (t *testContext) theRecordStoreShouldHold(quantity int) error {
	if got := len(testInjector.Store.Snapshot().Records); got != quantity {
		return fmt.Errorf("expected %d records in the store, got %d", quantity, got)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
