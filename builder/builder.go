package builder

// Type 语句类型
type Type int

const (
	TypeUnknown Type = iota
	TypeSelect
	TypeInsert
	TypeUpdate
	TypeDelete
)

// Types 所有可用的语句类型
var Types = []Type{TypeSelect, TypeInsert, TypeUpdate, TypeDelete}

func (t Type) String() string {
	switch t {
	case TypeSelect:
		return "SELECT"
	case TypeInsert:
		return "INSERT"
	case TypeUpdate:
		return "UPDATE"
	case TypeDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// New 创建一个空语句
// 传入已有的语句时直接返回该语句, 方便 "包装或透传" 的调用方式
func New(src ...*Statement) *Statement {
	if len(src) > 0 && src[0] != nil {
		return src[0]
	}
	return &Statement{}
}
