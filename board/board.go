package board

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Board 持有当前快照与加载错误状态，是页面渲染的唯一数据来源。
// 快照只会被整体替换；加载失败保留旧快照但置错误标记，
// 渲染层看到错误标记时无条件显示错误视图。
type Board struct {
	loader Loader
	maxAge time.Duration
	now    func() time.Time

	loadMu  sync.Mutex    // 串行化Load，避免并发重复拉取
	loadSeq atomic.Uint64 // 每次Load结束递增，供EnsureFresh去重

	mu       sync.RWMutex
	snapshot *Snapshot
	loadErr  error

	subMu sync.Mutex
	subs  []func(*Snapshot)
}

// New 创建Board。maxAge 为快照保鲜期，超过后 EnsureFresh 触发重载。
func New(loader Loader, maxAge time.Duration) *Board {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Board{
		loader: loader,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Load 拉取并整体替换快照。
// 失败时仅记录诊断日志并置错误标记，旧快照原样保留。
func (b *Board) Load(ctx context.Context) error {
	b.loadMu.Lock()
	defer b.loadMu.Unlock()
	return b.loadLocked(ctx)
}

// loadLocked 调用方必须持有 loadMu
func (b *Board) loadLocked(ctx context.Context) error {
	defer b.loadSeq.Add(1)

	snap, err := b.loader.Load(ctx)
	if err != nil {
		zap.L().Error("加载快照失败", zap.Error(err))
		b.mu.Lock()
		b.loadErr = err
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.snapshot = snap
	b.loadErr = nil
	b.mu.Unlock()

	zap.L().Info("快照已更新",
		zap.String("update_time", snap.UpdateTime),
		zap.Int("periods", len(snap.Periods)))

	b.notify(snap)
	return nil
}

// Current 返回当前快照与错误标记
func (b *Board) Current() (*Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot, b.loadErr
}

// Stale 判断快照是否超过保鲜期。
// 无快照视为过期；update_time 无法解析时不触发重载。
func (b *Board) Stale() bool {
	b.mu.RLock()
	snap := b.snapshot
	b.mu.RUnlock()

	if snap == nil {
		return true
	}
	t, err := ParseUpdateTime(snap.UpdateTime)
	if err != nil {
		return false
	}
	return b.now().Sub(t) > b.maxAge
}

// EnsureFresh 请求到达时的保鲜检查：超过保鲜期才重载，其余情况不发起任何请求。
// 并发请求同时命中过期快照时只拉取一次：等锁期间若已有请求完成加载
// （无论成败），本次直接放弃，不叠加重复拉取。
func (b *Board) EnsureFresh(ctx context.Context) {
	seq := b.loadSeq.Load()
	if !b.Stale() {
		return
	}

	b.loadMu.Lock()
	defer b.loadMu.Unlock()
	if b.loadSeq.Load() != seq {
		return
	}
	_ = b.loadLocked(ctx)
}

// OnUpdate 注册快照更新回调，每次成功替换后同步调用
func (b *Board) OnUpdate(fn func(*Snapshot)) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.subs = append(b.subs, fn)
}

func (b *Board) notify(snap *Snapshot) {
	b.subMu.Lock()
	subs := make([]func(*Snapshot), len(b.subs))
	copy(subs, b.subs)
	b.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
