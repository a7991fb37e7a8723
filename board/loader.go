package board

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Loader 读取一份完整快照
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// IsHTTPSource 判断数据源是否为网络地址
func IsHTTPSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// NewLoader 按数据源形态选择加载器：http(s) URL 走网络，其余视为本地文件路径
func NewLoader(source string, timeout time.Duration) Loader {
	if IsHTTPSource(source) {
		return NewHTTPLoader(source, timeout)
	}
	return &FileLoader{Path: strings.TrimPrefix(source, "file://")}
}

// HTTPLoader 通过一次HTTP GET拉取快照JSON，附带防缓存时间戳参数。
// 失败时不重试，由调用方决定错误展示。
type HTTPLoader struct {
	URL    string
	Client *http.Client
}

func NewHTTPLoader(rawURL string, timeout time.Duration) *HTTPLoader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPLoader{
		URL:    rawURL,
		Client: &http.Client{Timeout: timeout},
	}
}

func (l *HTTPLoader) Load(ctx context.Context) (*Snapshot, error) {
	u, err := url.Parse(l.URL)
	if err != nil {
		return nil, fmt.Errorf("快照地址无效: %w", err)
	}
	q := u.Query()
	q.Set("_t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求快照失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("请求快照失败: http %d", resp.StatusCode)
	}

	return decodeSnapshot(bodyReader(resp))
}

// bodyReader 按 Content-Type charset 转码，GBK系编码统一转为UTF-8
func bodyReader(resp *http.Response) io.Reader {
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		switch strings.ToLower(params["charset"]) {
		case "gbk", "gb2312":
			return transform.NewReader(resp.Body, simplifiedchinese.GBK.NewDecoder())
		case "gb18030":
			return transform.NewReader(resp.Body, simplifiedchinese.GB18030.NewDecoder())
		}
	}
	return resp.Body
}

// FileLoader 直接读取本地快照文件，批处理任务与服务同机部署时使用
type FileLoader struct {
	Path string
}

func (l *FileLoader) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("读取快照文件失败: %w", err)
	}
	defer f.Close()
	return decodeSnapshot(f)
}

func decodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("解析快照失败: %w", err)
	}
	return &snap, nil
}
