package builder

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	Asc  = "ASC"
	Desc = "DESC"
)

// Ordering ORDER BY 的一项
type Ordering struct {
	Field     string
	Direction string
}

// Statement 语句构造器
// 各片段按调用顺序累积, 调用 Sql 时按语句类型校验并拼接
// 所有修改方法都返回同一个 *Statement, 可以链式调用
type Statement struct {
	typ Type

	SelectParam []string
	UpdateParam []string
	FromParam   []string
	IntoParam   []string
	SetParam    Attrs       // 每个条目只有一个键值对
	WhereParam  []Criterion // 顶层用 AND 连接
	OrderParam  []Ordering
	RowsParam   []Attrs // 多行插入

	LimitParam  *int
	OffsetParam *int
}

// Type 语句类型, 由最后调用的 Select/Insert/Update/Delete 决定
func (s *Statement) Type() Type {
	return s.typ
}

// Select 设置查询的字段
// Select("id", "name"), Select([]string{"id", "name"}), Select([]string{"id"}, "name") 效果相同
func (s *Statement) Select(fields ...any) *Statement {
	s.typ = TypeSelect
	s.SelectParam = append(s.SelectParam, identifiers(fields)...)
	return s
}

// Insert 设置插入的数据
// 一行数据时等同于 Set; 多行时生成 INSERT INTO t (...) VALUES (...), (...)
// 多行时列以第一行为准: 其他行缺少的列为 NULL, 只在后面的行中出现的列会被忽略
func (s *Statement) Insert(rows ...any) *Statement {
	s.typ = TypeInsert
	data := make([]Attrs, 0, len(rows))
	for _, row := range rowsOf(rows...) {
		if len(row) > 0 {
			data = append(data, row)
		}
	}
	switch len(data) {
	case 0:
	case 1:
		s.SetParam = append(s.SetParam, data[0]...)
	default:
		s.RowsParam = append(s.RowsParam, data...)
	}
	return s
}

// Update 设置更新的表
func (s *Statement) Update(tables ...any) *Statement {
	s.typ = TypeUpdate
	s.UpdateParam = append(s.UpdateParam, identifiers(tables)...)
	return s
}

// Delete 只设置语句类型, 表通过 From 指定
func (s *Statement) Delete() *Statement {
	s.typ = TypeDelete
	return s
}

func (s *Statement) From(tables ...any) *Statement {
	s.FromParam = append(s.FromParam, identifiers(tables)...)
	return s
}

func (s *Statement) Into(tables ...any) *Statement {
	s.IntoParam = append(s.IntoParam, identifiers(tables)...)
	return s
}

// Set 添加赋值, 每个键值对单独保存, 保持参数和键的顺序
// 支持 Attr, Attrs, map[string]any (按键名排序) 以及它们的切片
func (s *Statement) Set(attrs ...any) *Statement {
	s.SetParam = append(s.SetParam, pairsOf(attrs...)...)
	return s
}

// Where 添加条件, 顶层条件之间使用 AND
//
//	Where(Attrs{{"age", 3}, {"or", []Attrs{{{"id", 1}}, {{"name", "test"}}}}})
//	-> WHERE `age` = '3' AND (`id` = '1' OR `name` = 'test')
//
// 值的处理见 ValueOf, 也可以直接传入 Cond/Op/Or/And 构造的条件
func (s *Statement) Where(criteria ...any) *Statement {
	s.WhereParam = append(s.WhereParam, criteriaOf(criteria...)...)
	return s
}

// Limit 设置条数, 可以同时设置偏移量
// 负数会被忽略
func (s *Statement) Limit(limit int, offset ...int) *Statement {
	if limit >= 0 {
		s.LimitParam = &limit
	}
	if len(offset) > 0 {
		s.Offset(offset[0])
	}
	return s
}

// Offset 设置偏移量, 只有设置了 Limit 才会输出
func (s *Statement) Offset(offset int) *Statement {
	if offset >= 0 {
		s.OffsetParam = &offset
	}
	return s
}

// OrderBy 添加排序, 默认 ASC
func (s *Statement) OrderBy(field string, direction ...string) *Statement {
	dir := Asc
	if len(direction) > 0 && strings.EqualFold(strings.TrimSpace(direction[0]), Desc) {
		dir = Desc
	}
	s.OrderParam = append(s.OrderParam, Ordering{Field: field, Direction: dir})
	return s
}

// Validate 检查语句类型需要的片段是否都已设置
// 只检查是否存在, 不检查名字是否合法
func (s *Statement) Validate() bool {
	switch s.typ {
	case TypeSelect:
		return len(s.SelectParam) > 0 && len(s.FromParam) > 0
	case TypeInsert:
		return len(s.IntoParam) > 0 && (len(s.SetParam) > 0 || len(s.RowsParam) > 0)
	case TypeUpdate:
		return len(s.UpdateParam) > 0 && len(s.SetParam) > 0
	case TypeDelete:
		return len(s.FromParam) > 0 && len(s.WhereParam) > 0
	default:
		return false
	}
}

// Sql 生成 SQL, 片段不完整时返回 ErrInsufficientParameters
// 不修改语句, 多次调用结果相同
func (s *Statement) Sql() (string, error) {
	if !s.Validate() {
		return "", errors.Wrapf(ErrInsufficientParameters, "%s statement", s.typ)
	}
	var (
		parts []string
		err   error
	)
	switch s.typ {
	case TypeSelect:
		parts, err = s.getSelect()
	case TypeInsert:
		parts, err = s.getInsert()
	case TypeUpdate:
		parts, err = s.getUpdate()
	case TypeDelete:
		parts, err = s.getDelete()
	}
	if err != nil {
		return "", err
	}
	return strings.Join(parts, " "), nil
}

// MustSql 同 Sql, 出错时 panic
func (s *Statement) MustSql() string {
	sql, err := s.Sql()
	if err != nil {
		panic(err)
	}
	return sql
}

// String 生成的 SQL, 出错时返回空字符串
func (s *Statement) String() string {
	sql, _ := s.Sql()
	return sql
}

func (s *Statement) getSelect() ([]string, error) {
	parts := []string{"SELECT", EscapeIdentifier(s.SelectParam), "FROM", EscapeIdentifier(s.FromParam)}
	where, err := s.getWhere()
	if err != nil {
		return nil, err
	}
	parts = append(parts, where...)
	parts = append(parts, s.getOrderBy()...)
	return append(parts, s.getLimit()...), nil
}

func (s *Statement) getInsert() ([]string, error) {
	parts := []string{"INSERT", "INTO", EscapeIdentifier(s.IntoParam)}
	if len(s.RowsParam) > 0 {
		values, err := s.getValues()
		if err != nil {
			return nil, err
		}
		return append(parts, values...), nil
	}
	set, err := compileSetList(s.SetParam)
	if err != nil {
		return nil, err
	}
	return append(parts, "SET", set), nil
}

// getValues 多行插入, 列以第一行为准, 其他行缺少的列为 NULL, 多出的列忽略
func (s *Statement) getValues() ([]string, error) {
	first := s.RowsParam[0]
	cols := make([]string, 0, len(first))
	for _, a := range first {
		cols = append(cols, a.Key)
	}

	tuples := make([]string, 0, len(s.RowsParam))
	for i, row := range s.RowsParam {
		cells := make(map[string]any, len(row))
		for _, a := range row {
			cells[a.Key] = a.Value
		}
		values := make([]string, 0, len(cols))
		for _, c := range cols {
			v, err := renderOperand(ValueOf(cells[c]))
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %s", i, c)
			}
			values = append(values, v)
		}
		tuples = append(tuples, "("+strings.Join(values, ", ")+")")
	}
	return []string{"(" + EscapeIdentifier(cols) + ")", "VALUES", strings.Join(tuples, ", ")}, nil
}

func (s *Statement) getUpdate() ([]string, error) {
	set, err := compileSetList(s.SetParam)
	if err != nil {
		return nil, err
	}
	where, err := s.getWhere()
	if err != nil {
		return nil, err
	}
	parts := []string{"UPDATE", EscapeIdentifier(s.UpdateParam), "SET", set}
	return append(parts, where...), nil
}

func (s *Statement) getDelete() ([]string, error) {
	where, err := s.getWhere()
	if err != nil {
		return nil, err
	}
	parts := []string{"DELETE", "FROM", EscapeIdentifier(s.FromParam)}
	return append(parts, where...), nil
}

func (s *Statement) getWhere() ([]string, error) {
	if len(s.WhereParam) == 0 {
		return nil, nil
	}
	where, err := compileWhereGroup(s.WhereParam, OpAnd)
	if err != nil {
		return nil, err
	}
	return []string{"WHERE", where}, nil
}

func (s *Statement) getOrderBy() []string {
	if len(s.OrderParam) == 0 {
		return nil
	}
	parts := make([]string, 0, len(s.OrderParam))
	for _, o := range s.OrderParam {
		parts = append(parts, EscapeIdentifier(o.Field)+" "+o.Direction)
	}
	return []string{"ORDER BY", strings.Join(parts, ", ")}
}

func (s *Statement) getLimit() []string {
	if s.LimitParam == nil {
		return nil
	}
	parts := []string{"LIMIT", strconv.Itoa(*s.LimitParam)}
	if s.OffsetParam != nil {
		parts = append(parts, "OFFSET", strconv.Itoa(*s.OffsetParam))
	}
	return parts
}
