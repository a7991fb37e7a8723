package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"trendboard/board"
	"trendboard/view"
)

// fakeUpstream 模拟产出快照JSON的上游，可随时切换为故障态
type fakeUpstream struct {
	srv  *httptest.Server
	hits int32
	fail atomic.Bool
	body atomic.Value // string
}

func newFakeUpstream(body string) *fakeUpstream {
	up := &fakeUpstream{}
	up.body.Store(body)
	up.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&up.hits, 1)
		if up.fail.Load() {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, up.body.Load().(string))
	}))
	return up
}

func (up *fakeUpstream) hitCount() int32 { return atomic.LoadInt32(&up.hits) }

func snapshotJSON(updateTime string) string {
	return fmt.Sprintf(`{
		"update_time": %q,
		"market_overview": {"total_stocks": 5000, "up_stocks": 3200, "avg_change": 1.5},
		"periods": {
			"5d": {
				"gainers": [{"name": "贵州茅台", "symbol": "600519", "price": 1688.0, "period_change": 12.5}],
				"losers": [{"name": "某某股份", "symbol": "000001", "price": 8.8, "period_change": -9.3}],
				"statistics": {"sample_size": 300, "avg_change": 0.8, "up_ratio": 55.0}
			},
			"10d": {
				"gainers": [{"name": "比亚迪", "symbol": "002594", "price": 250.0, "period_change": 20.1}],
				"losers": [],
				"statistics": {"sample_size": 280}
			}
		}
	}`, updateTime)
}

func updateTimeAgo(d time.Duration) string {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		loc = time.FixedZone("CST", 8*3600)
	}
	return time.Now().Add(-d).In(loc).Format("2006-01-02 15:04:05")
}

func newTestServer(t *testing.T, up *fakeUpstream) *httptest.Server {
	t.Helper()

	loader := board.NewLoader(up.srv.URL, 5*time.Second)
	b := board.New(loader, time.Hour)
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	NewHandlers(b, renderer, nil).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestBoardPageRendersSnapshot(t *testing.T) {
	up := newFakeUpstream(snapshotJSON(updateTimeAgo(time.Minute)))
	defer up.srv.Close()
	srv := newTestServer(t, up)

	status, body := get(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{"贵州茅台", "600519", "+12.5%", "某某股份", "-9.3%", "5日", "5,000"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, view.LoadErrorMessage) {
		t.Error("healthy page must not show the load error message")
	}
}

func TestStaleSnapshotFailureShowsErrorEverywhere(t *testing.T) {
	up := newFakeUpstream(snapshotJSON(updateTimeAgo(2 * time.Hour)))
	defer up.srv.Close()
	srv := newTestServer(t, up)

	// 首次访问加载成功，但快照本身已超过保鲜期
	status, body := get(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "600519") {
		t.Fatal("expected snapshot data on first visit")
	}

	// 上游故障后再次访问：保鲜检查触发重载并失败，
	// 四个区域统一展示错误信息，旧数据不再显示
	up.fail.Store(true)
	status, body = get(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got := strings.Count(body, view.LoadErrorMessage); got != 4 {
		t.Errorf("error message appears %d times, want 4", got)
	}
	if strings.Contains(body, "600519") {
		t.Error("prior data must not be visible alongside the error view")
	}
}

func TestTabSwitchDoesNotRefetch(t *testing.T) {
	up := newFakeUpstream(snapshotJSON(updateTimeAgo(time.Minute)))
	defer up.srv.Close()
	srv := newTestServer(t, up)

	get(t, srv.URL+"/")
	if up.hitCount() != 1 {
		t.Fatalf("upstream hits after first visit = %d", up.hitCount())
	}

	_, body := get(t, srv.URL+"/?period=10d")
	if !strings.Contains(body, "比亚迪") {
		t.Error("10d page missing its own gainers")
	}
	if !strings.Contains(body, "10日") {
		t.Error("10d page missing period badge")
	}

	_, body = get(t, srv.URL+"/?period=20d")
	if !strings.Contains(body, "暂无数据") {
		t.Error("absent period should render empty states")
	}
	if strings.Contains(body, view.LoadErrorMessage) {
		t.Error("absent period is not a load error")
	}

	if up.hitCount() != 1 {
		t.Errorf("tab switches triggered upstream fetches: hits = %d", up.hitCount())
	}
}

func TestUnknownPeriodFallsBackToDefault(t *testing.T) {
	up := newFakeUpstream(snapshotJSON(updateTimeAgo(time.Minute)))
	defer up.srv.Close()
	srv := newTestServer(t, up)

	_, body := get(t, srv.URL+"/?period=evil")
	if !strings.Contains(body, "贵州茅台") {
		t.Error("unknown period should fall back to the default period data")
	}
}

func TestSnapshotAPI(t *testing.T) {
	up := newFakeUpstream(snapshotJSON(updateTimeAgo(time.Minute)))
	defer up.srv.Close()
	srv := newTestServer(t, up)

	status, _ := get(t, srv.URL+"/api/snapshot")
	if status != http.StatusNotFound {
		t.Errorf("snapshot before any load: status = %d, want 404", status)
	}

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d", resp.StatusCode)
	}

	status, body := get(t, srv.URL+"/api/snapshot")
	if status != http.StatusOK {
		t.Fatalf("snapshot after refresh: status = %d", status)
	}
	var snap board.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Periods) != 2 {
		t.Errorf("snapshot periods = %d, want 2", len(snap.Periods))
	}
}

func TestRefreshFailure(t *testing.T) {
	up := newFakeUpstream(snapshotJSON(updateTimeAgo(time.Minute)))
	defer up.srv.Close()
	srv := newTestServer(t, up)

	up.fail.Store(true)
	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("refresh status = %d, want 502", resp.StatusCode)
	}
	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result["status"] != "failed" {
		t.Errorf("result = %v", result)
	}
}

func TestHealthEndpoint(t *testing.T) {
	up := newFakeUpstream(snapshotJSON(updateTimeAgo(time.Minute)))
	defer up.srv.Close()
	srv := newTestServer(t, up)

	status, body := get(t, srv.URL+"/api/health")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("body = %s", body)
	}
}
