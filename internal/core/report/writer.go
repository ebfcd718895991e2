package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/weisyn/fullrbf/pkg/types"
)

// FileWriter 将页面写入输出目录
//
// 先写入同目录下的临时文件再重命名，读者不会看到写了一半的页面。
type FileWriter struct {
	root string
}

// NewFileWriter 创建以 root 为输出根目录的写入器
func NewFileWriter(root string) *FileWriter {
	return &FileWriter{root: root}
}

// WriteFile 写入 root/subdir/name，返回最终路径
func (w *FileWriter) WriteFile(subdir, name string, content []byte) (string, error) {
	dir := filepath.Join(w.root, subdir)
	path := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &types.WriteError{Path: dir, Err: err}
	}

	if err := writeAtomic(dir, path, content); err != nil {
		return "", &types.WriteError{Path: path, Err: err}
	}
	return path, nil
}

func writeAtomic(dir, path string, content []byte) (err error) {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
