package builder

import (
	"database/sql/driver"
	"strings"

	"github.com/pkg/errors"
)

// Value WHERE / SET 右侧的值
// 只有本包内的类型实现了它: Literal, Bool, List, Subquery, Method, Operator, Column, Null
type Value interface {
	value()
}

// Literal 普通标量, 使用单引号包裹
type Literal struct {
	V any
}

// Bool 布尔值, 不加引号: `active` = true
type Bool bool

// List WHERE 中生成 IN (...)
type List []any

// Subquery 把另一个语句作为子查询: `id` IN (SELECT ...)
// 外层只读取子语句, 不会修改它
type Subquery struct {
	Stmt *Statement
}

// Method 函数调用: MD5('password'), IFNULL(`nick`, '')
// 每个参数按 ValueOf 处理, 也可以是 Criterion: IF(`score` > '0', 1, 0)
type Method struct {
	Name string
	Args []any
}

// Operator 指定比较运算符: `first_name` LIKE 'John'
type Operator struct {
	Op    string
	Value any
}

// Column 列名, 按标识符输出: `a` = `b`
type Column string

// Null WHERE 中为 IS NULL, SET 中为 NULL
type Null struct{}

func (Literal) value()  {}
func (Bool) value()     {}
func (List) value()     {}
func (Subquery) value() {}
func (Method) value()   {}
func (Operator) value() {}
func (Column) value()   {}
func (Null) value()     {}

// ValueOf 将普通的 go 值转为 Value
//   - bool -> Bool
//   - *Statement -> Subquery
//   - 切片/数组 -> List
//   - nil -> Null
//   - map{"method", "param"} -> Method, map{"operator", "value"} -> Operator
//   - driver.Valuer 取其 driver 值后再转换
//   - 其他 -> Literal
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null{}
	case Value:
		return v
	case *Statement:
		if v == nil {
			return Null{}
		}
		return Subquery{Stmt: v}
	case bool:
		return Bool(v)
	case map[string]any:
		if name, ok := v["method"].(string); ok {
			if param, ok := v["param"]; ok && param != nil {
				return Method{Name: name, Args: []any{param}}
			}
			return Method{Name: name}
		}
		if op, ok := v["operator"].(string); ok {
			return Operator{Op: op, Value: v["value"]}
		}
		return Literal{V: v}
	case driver.Valuer:
		dv, err := v.Value()
		if err != nil {
			return Literal{V: x}
		}
		return ValueOf(dv)
	}
	if items, ok := sequence(x); ok {
		return List(items)
	}
	return Literal{V: x}
}

// renderOperand 值本身的文本, 用于 SET、函数参数、运算符右侧
func renderOperand(v Value) (string, error) {
	switch val := v.(type) {
	case nil, Null:
		return "NULL", nil
	case Literal:
		return renderLiteral(val.V)
	case Bool:
		return EscapeValue(bool(val)), nil
	case List:
		return renderList(val)
	case Subquery:
		sql, err := val.Stmt.Sql()
		if err != nil {
			return "", errors.Wrap(err, "subquery")
		}
		return "(" + sql + ")", nil
	case Method:
		args := make([]string, 0, len(val.Args))
		for i, arg := range val.Args {
			text, err := renderArg(arg)
			if err != nil {
				return "", errors.Wrapf(err, "%s argument %d", val.Name, i)
			}
			args = append(args, text)
		}
		return val.Name + "(" + strings.Join(args, ", ") + ")", nil
	case Operator:
		return renderOperand(ValueOf(val.Value))
	case Column:
		return EscapeIdentifier(string(val)), nil
	default:
		return "", errors.Errorf("unsupported value %T", v)
	}
}

// renderLiteral Literal 中放入了语句/切片/Json 时按对应规则处理, 其余加单引号
func renderLiteral(x any) (string, error) {
	switch v := x.(type) {
	case *Statement:
		return renderOperand(ValueOf(v))
	case Json:
		text, err := v.Encode()
		if err != nil {
			return "", err
		}
		return "'" + text + "'", nil
	}
	if items, ok := sequence(x); ok {
		return renderList(items)
	}
	return EscapeValue(x), nil
}

// renderList 逐个处理列表元素, 用 ", " 连接
// 元素可以是子查询、函数等任意值, 任意一个出错则整体失败
func renderList(items []any) (string, error) {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		text, err := renderOperand(ValueOf(item))
		if err != nil {
			return "", errors.Wrapf(err, "list item %d", i)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", "), nil
}

func renderArg(arg any) (string, error) {
	if c, ok := arg.(Criterion); ok {
		return compileWhereGroup([]Criterion{c}, OpAnd)
	}
	return renderOperand(ValueOf(arg))
}

// renderComparison WHERE 条件中 列名 右侧的部分, 包括运算符
func renderComparison(v Value) (string, error) {
	switch val := v.(type) {
	case nil, Null:
		return "IS NULL", nil
	case Bool:
		if val {
			return "= true", nil
		}
		return "= false", nil
	case List:
		list, err := renderList(val)
		if err != nil {
			return "", err
		}
		return "IN (" + list + ")", nil
	case Subquery:
		sql, err := renderOperand(val)
		if err != nil {
			return "", err
		}
		return "IN " + sql, nil
	case Operator:
		right := ValueOf(val.Value)
		operand, err := renderOperand(right)
		if err != nil {
			return "", err
		}
		if _, ok := right.(List); ok {
			operand = "(" + operand + ")"
		}
		op := strings.ToUpper(strings.TrimSpace(val.Op))
		if op == "" {
			op = "="
		}
		return op + " " + operand, nil
	default:
		operand, err := renderOperand(v)
		if err != nil {
			return "", err
		}
		return "= " + operand, nil
	}
}
