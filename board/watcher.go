package board

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher 监听本地快照文件变化并触发重载。
// 监听所在目录而不是文件本身，兼容批处理任务的原子替换写入。
type Watcher struct {
	board *Board
	path  string
	fw    *fsnotify.Watcher
}

// NewWatcher 为本地文件数据源创建文件监听器
func NewWatcher(b *Board, path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{board: b, path: path, fw: fw}, nil
}

// Run 消费文件事件直到 ctx 结束。写入事件做短暂防抖后重载快照。
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()

	var debounce *time.Timer
	target := filepath.Clean(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, func() {
				zap.L().Info("快照文件已变化，触发重载", zap.String("path", w.path))
				_ = w.board.Load(context.Background())
			})
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			zap.L().Warn("文件监听出错", zap.Error(err))
		}
	}
}
