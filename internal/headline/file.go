package headline

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type headlineFile struct {
	Headlines []string `yaml:"headlines"`
}

// FileSource 每次调用都重新读取 YAML 文件，改文件不需要重启
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Headlines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var f headlineFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrSourceUnavailable, s.path, err)
	}

	return Clean(f.Headlines), nil
}
