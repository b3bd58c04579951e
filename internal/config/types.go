package config

// File 表示 xkeyring.yaml 的配置结构。
// 约束：配置优先级为 CLI > ENV > Config。
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
	MCP      MCPConfig          `yaml:"mcp"`
}

// Profile 给一组凭据操作提供默认的 service/user 与输出格式。
type Profile struct {
	Description    string `yaml:"description"`
	Service        string `yaml:"service"`
	User           string `yaml:"user"`
	Format         string `yaml:"format"`
	AllowPlaintext bool   `yaml:"allow_plaintext"` // resolve 时允许明文值
}

type MCPConfig struct {
	Transport   string        `yaml:"transport"`    // stdio | streamable_http
	AllowReveal bool          `yaml:"allow_reveal"` // secret_get 是否返回明文
	HTTP        MCPHTTPConfig `yaml:"http"`
}

type MCPHTTPConfig struct {
	Addr                string `yaml:"addr"`
	AuthToken           string `yaml:"auth_token"` // 支持 keyring: 引用
	AllowPlaintextToken bool   `yaml:"allow_plaintext_token"`
}

type Resolved struct {
	ConfigPath  string
	ProfileName string
	Format      string
	Service     string // 为空表示调用方使用默认 service
	Profile     Profile
}

type Options struct {
	// ConfigPath: 若非空，则只读取该文件（不存在报错）。
	ConfigPath string

	// CLI
	CLIProfile    string
	CLIProfileSet bool
	CLIFormat     string
	CLIFormatSet  bool
	CLIService    string
	CLIServiceSet bool

	// ENV（由调用方注入，便于测试）
	EnvProfile string
	EnvFormat  string
	EnvService string

	// HomeDir 用于默认路径计算（为空则自动探测）。
	HomeDir string

	// WorkDir 用于默认路径（为空则使用进程当前工作目录）。
	WorkDir string
}
