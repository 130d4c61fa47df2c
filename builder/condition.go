package builder

import (
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/pkg/errors"
)

const (
	OpAnd = "AND"
	OpOr  = "OR"

	// orKey 属性 map 中的保留键, 它的值是一组用 OR 连接的条件
	orKey = "or"
)

// Criterion WHERE 条件树中的节点: Condition 或 Group
type Criterion interface {
	criterion()
}

// Condition 单个条件: `Attr` <op> <Value>
type Condition struct {
	Attr  string
	Value Value
}

// Group 一组条件, 用 Op 连接, 嵌套时使用小括号包裹
type Group struct {
	Op       string
	Criteria []Criterion
}

// invalidGroup "or" 的值不是数组, 在生成 SQL 时报错
type invalidGroup struct {
	value any
}

func (Condition) criterion()    {}
func (Group) criterion()        {}
func (invalidGroup) criterion() {}

// Cond 创建一个条件, v 的处理见 ValueOf
func Cond(attr string, v any) Condition {
	return Condition{Attr: attr, Value: ValueOf(v)}
}

// Op 使用指定运算符的条件: Op("age", ">=", 18) -> `age` >= '18'
func Op(attr, op string, v any) Condition {
	return Condition{Attr: attr, Value: Operator{Op: op, Value: v}}
}

// Like 模糊查询
func Like(attr string, v any) Condition {
	return Op(attr, "LIKE", v)
}

func NotEq(attr string, v any) Condition {
	return Op(attr, "!=", v)
}

func Gt(attr string, v any) Condition {
	return Op(attr, ">", v)
}

func Gte(attr string, v any) Condition {
	return Op(attr, ">=", v)
}

func Lt(attr string, v any) Condition {
	return Op(attr, "<", v)
}

func Lte(attr string, v any) Condition {
	return Op(attr, "<=", v)
}

// In v 可以是切片或子查询, 单个值按一个元素的列表处理
//
//	In("id", []int{1, 2}) -> `id` IN ('1', '2')
func In(attr string, v any) Condition {
	return Condition{Attr: attr, Value: inValue(v)}
}

func NotIn(attr string, v any) Condition {
	return Condition{Attr: attr, Value: Operator{Op: "NOT IN", Value: inValue(v)}}
}

func IsNull(attr string) Condition {
	return Condition{Attr: attr, Value: Null{}}
}

func IsNotNull(attr string) Condition {
	return Condition{Attr: attr, Value: Operator{Op: "IS NOT", Value: Null{}}}
}

func inValue(v any) Value {
	switch val := ValueOf(v).(type) {
	case List, Subquery:
		return val
	default:
		return List{v}
	}
}

// Or 组合多个条件, 使用 OR 连接
// 示例: Or(Attrs{{"id", 1}}, Cond("name", "test")) -> (`id` = '1' OR `name` = 'test')
func Or(items ...any) Group {
	return Group{Op: OpOr, Criteria: criteriaOf(items...)}
}

// And 组合多个条件, 使用 AND 连接
func And(items ...any) Group {
	return Group{Op: OpAnd, Criteria: criteriaOf(items...)}
}

func (g Group) operator() string {
	if strings.EqualFold(g.Op, OpOr) {
		return OpOr
	}
	return OpAnd
}

// criteriaOf 展开 Where/Or/And 的参数
// 支持 Criterion, Attr, Attrs, map[string]any 以及它们组成的切片
func criteriaOf(items ...any) []Criterion {
	var criteria []Criterion
	for _, item := range items {
		switch v := item.(type) {
		case nil:
		case Criterion:
			criteria = append(criteria, v)
		case Attr:
			criteria = append(criteria, criterionOf(v))
		case Attrs:
			criteria = append(criteria, slice.Map(v, func(_ int, a Attr) Criterion {
				return criterionOf(a)
			})...)
		case map[string]any:
			criteria = append(criteria, criteriaOf(attrsOf(v))...)
		case Json:
			criteria = append(criteria, criteriaOf(attrsOf(v))...)
		default:
			if seq, ok := sequence(item); ok {
				criteria = append(criteria, criteriaOf(seq...)...)
			}
		}
	}
	return criteria
}

func criterionOf(a Attr) Criterion {
	if a.Key != orKey {
		return Cond(a.Key, a.Value)
	}
	items, ok := sequence(a.Value)
	if !ok {
		return invalidGroup{value: a.Value}
	}
	return Group{Op: OpOr, Criteria: criteriaOf(items...)}
}

// compileWhereGroup 把条件列表编译为布尔表达式, 条目之间用 operator 连接
// 嵌套的 Group 用自己的运算符编译后加上小括号
func compileWhereGroup(criteria []Criterion, operator string) (string, error) {
	fragments := make([]string, 0, len(criteria))
	for _, c := range criteria {
		switch v := c.(type) {
		case Group:
			inner, err := compileWhereGroup(v.Criteria, v.operator())
			if err != nil {
				return "", err
			}
			fragments = append(fragments, "("+inner+")")
		case Condition:
			right, err := renderComparison(v.Value)
			if err != nil {
				return "", errors.Wrapf(err, "condition %s", v.Attr)
			}
			fragments = append(fragments, EscapeIdentifier(v.Attr)+" "+right)
		case invalidGroup:
			return "", errors.Wrapf(ErrOrRequiresArray, "got %T", v.value)
		}
	}
	return strings.Join(fragments, " "+operator+" "), nil
}

// compileSetList 生成赋值列表: `a` = 'x', `b` = MD5('y')
func compileSetList(entries Attrs) (string, error) {
	fragments := make([]string, 0, len(entries))
	for _, e := range entries {
		right, err := renderOperand(ValueOf(e.Value))
		if err != nil {
			return "", errors.Wrapf(err, "set %s", e.Key)
		}
		fragments = append(fragments, EscapeIdentifier(e.Key)+" = "+right)
	}
	return strings.Join(fragments, ", "), nil
}
