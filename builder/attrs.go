package builder

import (
	"sort"

	"github.com/duke-git/lancet/v2/maputil"
)

// Attr 一个 属性 -> 值 的条目, 对应 SET 的一个赋值或 WHERE 的一个条件
type Attr struct {
	Key   string
	Value any
}

// Attrs 有序的属性列表
// go 的 map 没有顺序, 需要保证输出顺序时使用 Attrs
//
//	Attrs{{"email", "test@test.com"}, {"age", 3}}
type Attrs []Attr

// attrsOf 把 map 转为 Attrs, 按键名排序保证输出稳定
func attrsOf(m map[string]any) Attrs {
	keys := maputil.Keys(m)
	sort.Strings(keys)
	attrs := make(Attrs, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, Attr{Key: k, Value: m[k]})
	}
	return attrs
}

// pairsOf 展开 Set 的参数, 每个键值对一个条目, 保持参数及键的顺序
func pairsOf(args ...any) Attrs {
	var attrs Attrs
	for _, row := range rowsOf(args...) {
		attrs = append(attrs, row...)
	}
	return attrs
}

// rowsOf 展开 Insert 的参数, 每个 map/Attrs 为一行
func rowsOf(args ...any) []Attrs {
	var rows []Attrs
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attr:
			rows = append(rows, Attrs{v})
		case Attrs:
			rows = append(rows, v)
		case []Attr:
			rows = append(rows, Attrs(v))
		case map[string]any:
			rows = append(rows, attrsOf(v))
		case Json:
			rows = append(rows, attrsOf(v))
		default:
			if items, ok := sequence(arg); ok {
				rows = append(rows, rowsOf(items...)...)
			}
		}
	}
	return rows
}
