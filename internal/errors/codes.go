package errors

// Code 是稳定错误码（字符串），供 AI/agent 与程序判断。
// 只增不改、不复用旧含义。
type Code string

const (
	// Config / args
	CodeCfgNotFound Code = "XKR_CFG_NOT_FOUND"
	CodeCfgInvalid  Code = "XKR_CFG_INVALID"

	// Keyring
	CodeSecretNotFound     Code = "XKR_SECRET_NOT_FOUND"
	CodeBackendUnavailable Code = "XKR_BACKEND_UNAVAILABLE"
	CodeBackendFailure     Code = "XKR_BACKEND_FAILURE"
	CodeInvalidEncoding    Code = "XKR_INVALID_ENCODING"

	// 明文密钥策略
	CodePlaintextDenied Code = "XKR_PLAINTEXT_DENIED"

	// Internal
	CodeInternal Code = "XKR_INTERNAL"
)

func AllCodes() []Code {
	return []Code{
		CodeCfgNotFound,
		CodeCfgInvalid,
		CodeSecretNotFound,
		CodeBackendUnavailable,
		CodeBackendFailure,
		CodeInvalidEncoding,
		CodePlaintextDenied,
		CodeInternal,
	}
}
