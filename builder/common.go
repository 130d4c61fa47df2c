package builder

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/slice"
)

const wildcard = "*"

// EscapeIdentifier 为表名/列名添加反引号
// 序列会逐个处理后用 ", " 连接; 通配符 * 保持原样;
// 带 "." 的名字按段分别处理: account.id -> `account`.`id`
// 注意: 不会转义名字内部的反引号
func EscapeIdentifier(x any) string {
	if items, ok := sequence(x); ok {
		return strings.Join(slice.Map(items, func(_ int, item any) string {
			return EscapeIdentifier(item)
		}), ", ")
	}
	name := scalarText(x)
	if name == wildcard {
		return name
	}
	if strings.Contains(name, ".") {
		fields := strings.Split(name, ".")
		for i, f := range fields {
			fields[i] = EscapeIdentifier(f)
		}
		return strings.Join(fields, ".")
	}
	return "`" + name + "`"
}

// EscapeValue 将值转为 SQL 字面量
// 序列用 ", " 连接 (用于 IN 列表), 其他值使用单引号包裹, nil 输出 NULL
// *Statement 输出为不加引号的 (子查询), 它生成失败时得到 (), 需要错误时使用 Statement.Sql
// 注意: 不会转义内部的单引号, 调用方需要自己保证数据安全
func EscapeValue(x any) string {
	if items, ok := sequence(x); ok {
		return strings.Join(slice.Map(items, func(_ int, item any) string {
			return EscapeValue(item)
		}), ", ")
	}
	switch v := x.(type) {
	case nil:
		return "NULL"
	case *Statement:
		return "(" + v.String() + ")"
	}
	return "'" + scalarText(x) + "'"
}

// sequence 判断 x 是否为切片/数组, 是的话展开为 []any
// []byte 按字符串处理
func sequence(x any) ([]any, bool) {
	switch v := x.(type) {
	case nil, string, []byte:
		return nil, false
	case []any:
		return v, true
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, true
	}
	value := reflect.ValueOf(x)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, value.Len())
	for i := 0; i < value.Len(); i++ {
		items[i] = value.Index(i).Interface()
	}
	return items, true
}

// scalarText 单个值的文本形式
func scalarText(x any) string {
	switch v := x.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.DateTime)
	case *Statement:
		// 语句不是字面量, 由 EscapeValue / renderOperand 单独处理
		return ""
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// identifiers 把 Select/From 等方法的参数展开为名字列表
// f("a", "b"), f([]string{"a", "b"}), f([]any{"a"}, "b") 的结果相同
func identifiers(args []any) []string {
	names := make([]string, 0, len(args))
	for _, arg := range args {
		if items, ok := sequence(arg); ok {
			names = append(names, identifiers(items)...)
			continue
		}
		switch arg.(type) {
		case nil, *Statement:
			continue
		}
		names = append(names, scalarText(arg))
	}
	return names
}
