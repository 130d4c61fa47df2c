// Package sqlstring 链式构造 SELECT / INSERT / UPDATE / DELETE 语句, 输出普通的 SQL 文本
//
//	sql, err := sqlstring.New().Select("id").From("account").
//		Where(sqlstring.Attrs{{"age", 3}}).Sql()
//	// SELECT `id` FROM `account` WHERE `age` = '3'
//
// 实现在 builder 包中, 这里只是常用入口.
package sqlstring

import "github.com/preceeder/go.sqlstring/builder"

type (
	Statement = builder.Statement
	Type      = builder.Type
	Attr      = builder.Attr
	Attrs     = builder.Attrs
)

const (
	SELECT = builder.TypeSelect
	INSERT = builder.TypeInsert
	UPDATE = builder.TypeUpdate
	DELETE = builder.TypeDelete
)

// QueryTypes 所有语句类型
var QueryTypes = builder.Types

// New 创建语句, 传入已有语句时原样返回
func New(src ...*Statement) *Statement {
	return builder.New(src...)
}
