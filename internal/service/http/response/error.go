package response

import (
	"github.com/gin-gonic/gin"
	"github.com/reusedev/media-hub/internal/modules/errs"
)

var (
	ParamError = gin.H{"code": 10001, "message": "param error"}

	InternalError = gin.H{"code": 10002, "message": "internal error"}
)

// FromProcessingError maps pipeline failures to displayable payloads. The
// message is the actionable text the pipeline produced, never a stack trace.
func FromProcessingError(err error) gin.H {
	pe := errs.Normalize(err)
	return gin.H{
		"code":    codeForKind(pe.Kind),
		"kind":    string(pe.Kind),
		"message": pe.UserMessage(),
	}
}

func codeForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindValidationFailed:
		return 20001
	case errs.KindCompressionFailed:
		return 20002
	case errs.KindRatioRejected:
		return 20003
	case errs.KindPartialWrite:
		return 20004
	default:
		return 10002
	}
}
