package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/zx06/xkeyring/internal/errors"
)

const fileName = "xkeyring.yaml"

// profile.format 允许的取值；空表示不覆盖。
var profileFormats = []string{"", "auto", "json", "yaml", "table", "csv"}

// searchPaths 按优先级返回默认配置位置：工作目录，然后 $HOME/.config/xkeyring。
func searchPaths(workDir, homeDir string) []string {
	var paths []string
	if workDir != "" {
		paths = append(paths, filepath.Join(workDir, fileName))
	}
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, ".config", "xkeyring", fileName))
	}
	return paths
}

// parseFile 严格解析：未知字段（例如拼错的键）视为配置错误。
func parseFile(path string, b []byte) (File, *errors.XError) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return File{}, errors.Wrap(errors.CodeCfgInvalid, "invalid config file", map[string]any{"path": path}, err)
	}
	if f.Profiles == nil {
		f.Profiles = map[string]Profile{}
	}
	for name, p := range f.Profiles {
		if !slices.Contains(profileFormats, p.Format) {
			return File{}, errors.New(errors.CodeCfgInvalid, "invalid profile format", map[string]any{
				"path": path, "profile": name, "format": p.Format,
			})
		}
	}
	return f, nil
}

func readFile(path string) (File, *errors.XError) {
	b, err := os.ReadFile(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return File{}, errors.New(errors.CodeCfgNotFound, "config file not found", map[string]any{"path": path})
	case err != nil:
		return File{}, errors.Wrap(errors.CodeCfgInvalid, "failed to read config file", map[string]any{"path": path}, err)
	}
	return parseFile(path, b)
}

// LoadConfig 加载配置文件，返回完整配置和配置文件路径。
// 显式 ConfigPath 必须存在；默认位置都不存在时返回空配置与空路径。
func LoadConfig(opts Options) (File, string, *errors.XError) {
	workDir, homeDir := opts.WorkDir, opts.HomeDir
	if workDir == "" {
		workDir, _ = os.Getwd()
	}
	if homeDir == "" {
		homeDir, _ = os.UserHomeDir()
	}

	if opts.ConfigPath != "" {
		path := opts.ConfigPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		f, xe := readFile(path)
		if xe != nil {
			return File{}, "", xe
		}
		return f, path, nil
	}

	for _, path := range searchPaths(workDir, homeDir) {
		f, xe := readFile(path)
		if xe == nil {
			return f, path, nil
		}
		if xe.Code != errors.CodeCfgNotFound {
			return File{}, "", xe
		}
	}
	return File{Profiles: map[string]Profile{}}, "", nil
}
