package builder

// Func 任意函数调用, 参数的处理见 ValueOf
//
//	Func("CONCAT", Column("first_name"), " ", Column("last_name"))
//	-> CONCAT(`first_name`, ' ', `last_name`)
func Func(name string, args ...any) Method {
	return Method{Name: name, Args: args}
}

// Count field 为列名, "*" 不加引号
func Count(field string) Method {
	return Func("COUNT", Column(field))
}

func Sum(field string) Method {
	return Func("SUM", Column(field))
}

func Min(field string) Method {
	return Func("MIN", Column(field))
}

func Max(field string) Method {
	return Func("MAX", Column(field))
}

// If 判断
// cond 一般为 Cond/Op 等构造的条件: If(Gt("score", 60), "pass", "fail")
func If(cond any, v1, v2 any) Method {
	return Func("IF", cond, v1, v2)
}

// IfNull expr 为 NULL 时取 v1
func IfNull(expr any, v1 any) Method {
	return Func("IFNULL", expr, v1)
}

// Now 当前时间
func Now() Method {
	return Func("NOW")
}
