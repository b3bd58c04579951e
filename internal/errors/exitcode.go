package errors

// ExitCode 是进程退出码（稳定契约）。
type ExitCode int

const (
	ExitOK ExitCode = 0

	// 2: 参数/配置错误
	ExitConfig ExitCode = 2

	// 3: 凭据后端不可用或调用失败
	ExitBackend ExitCode = 3

	// 4: 凭据不存在
	ExitNotFound ExitCode = 4

	// 5: 凭据内容不是合法文本
	ExitEncoding ExitCode = 5

	// 10: 内部错误
	ExitInternal ExitCode = 10
)

func ExitCodeFor(code Code) ExitCode {
	switch code {
	case CodeCfgNotFound, CodeCfgInvalid, CodePlaintextDenied:
		return ExitConfig
	case CodeBackendUnavailable, CodeBackendFailure:
		return ExitBackend
	case CodeSecretNotFound:
		return ExitNotFound
	case CodeInvalidEncoding:
		return ExitEncoding
	case CodeInternal:
		fallthrough
	default:
		return ExitInternal
	}
}
