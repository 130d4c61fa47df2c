package builder

import "github.com/pkg/errors"

var (
	// ErrInsufficientParameters 语句类型所需的片段不完整, 无法生成 SQL
	ErrInsufficientParameters = errors.New("insufficient parameters")
	// ErrOrRequiresArray "or" 键对应的值不是数组
	ErrOrRequiresArray = errors.New("or operator requires an array of options")
)
