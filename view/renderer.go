package view

import (
	"bytes"
	"fmt"
	"html/template"

	lru "github.com/hashicorp/golang-lru/v2"

	"trendboard/board"
)

// renderCacheSize 快照版本 × 周期 的组合很小，缓存无需太大
const renderCacheSize = 16

// Renderer 渲染整页HTML，按 快照版本+周期+错误态 做LRU缓存。
// 快照整体替换后 update_time 变化，旧缓存项自然失效淘汰。
type Renderer struct {
	tmpl  *template.Template
	cache *lru.Cache[string, []byte]
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("board").Parse(boardTemplate)
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	cache, err := lru.New[string, []byte](renderCacheSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, cache: cache}, nil
}

// RenderPage 渲染指定周期的整页HTML
func (r *Renderer) RenderPage(snap *board.Snapshot, loadErr error, period string) ([]byte, error) {
	key := cacheKey(snap, loadErr, period)
	if page, ok := r.cache.Get(key); ok {
		return page, nil
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, BuildPage(snap, loadErr, period)); err != nil {
		return nil, err
	}
	page := buf.Bytes()
	r.cache.Add(key, page)
	return page, nil
}

func cacheKey(snap *board.Snapshot, loadErr error, period string) string {
	version := "none"
	if snap != nil {
		version = snap.UpdateTime
	}
	return fmt.Sprintf("%s|%s|%t", version, period, loadErr != nil)
}
