package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteriaOf(t *testing.T) {
	t.Run("map 按键名排序", func(t *testing.T) {
		got := criteriaOf(map[string]any{"name": "test", "age": 3})
		want := []Criterion{Cond("age", 3), Cond("name", "test")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("criteria mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("or 转为 Group", func(t *testing.T) {
		got := criteriaOf(Attrs{{"or", []Attrs{{{"id", 1}}, {{"name", "test"}}}}})
		require.Len(t, got, 1)
		group, ok := got[0].(Group)
		require.True(t, ok)
		assert.Equal(t, OpOr, group.Op)
		assert.Len(t, group.Criteria, 2)
	})

	t.Run("or 不是数组", func(t *testing.T) {
		got := criteriaOf(Attrs{{"or", map[string]any{"id": 1}}})
		require.Len(t, got, 1)
		_, ok := got[0].(invalidGroup)
		assert.True(t, ok)
	})

	t.Run("未知类型忽略", func(t *testing.T) {
		assert.Empty(t, criteriaOf(nil, 3, "x"))
	})
}

func TestCompileWhereGroup(t *testing.T) {
	tests := []struct {
		name     string
		criteria []Criterion
		want     string
	}{
		{
			name:     "AND",
			criteria: criteriaOf(Attrs{{"age", 3}, {"name", "test"}}),
			want:     "`age` = '3' AND `name` = 'test'",
		},
		{
			name:     "布尔不加引号",
			criteria: criteriaOf(Attrs{{"active", false}}),
			want:     "`active` = false",
		},
		{
			name:     "IN",
			criteria: criteriaOf(Attrs{{"age", []int{1, 2, 3}}}),
			want:     "`age` IN ('1', '2', '3')",
		},
		{
			name:     "AND 与 OR",
			criteria: criteriaOf(Attrs{{"age", 3}, {"or", []any{Attrs{{"id", 1}}, Attrs{{"name", "test"}}}}}),
			want:     "`age` = '3' AND (`id` = '1' OR `name` = 'test')",
		},
		{
			name: "or 嵌套 or",
			criteria: criteriaOf(Attrs{{"or", []any{
				Attrs{{"a", 1}},
				Attrs{{"or", []any{Attrs{{"b", 2}}, Attrs{{"c", 3}}}}},
			}}}),
			want: "(`a` = '1' OR (`b` = '2' OR `c` = '3'))",
		},
		{
			name:     "显式 And",
			criteria: criteriaOf(Or(Cond("a", 1), And(Cond("b", 2), Cond("c", 3)))),
			want:     "(`a` = '1' OR (`b` = '2' AND `c` = '3'))",
		},
		{
			name:     "运算符",
			criteria: criteriaOf(Op("age", ">=", 18), Like("first_name", "John%")),
			want:     "`age` >= '18' AND `first_name` LIKE 'John%'",
		},
		{
			name:     "NOT IN",
			criteria: criteriaOf(Op("id", "not in", []int{1, 2})),
			want:     "`id` NOT IN ('1', '2')",
		},
		{
			name:     "函数",
			criteria: criteriaOf(Attrs{{"password", Method{Name: "MD5", Args: []any{"x"}}}}),
			want:     "`password` = MD5('x')",
		},
		{
			name:     "IS NULL",
			criteria: criteriaOf(Cond("deleted_at", nil)),
			want:     "`deleted_at` IS NULL",
		},
		{
			name:     "带表名的列",
			criteria: criteriaOf(Attrs{{"account.id", 1}}),
			want:     "`account`.`id` = '1'",
		},
		{
			name:     "大于小于",
			criteria: criteriaOf(Gt("a", 1), Gte("b", 2), Lt("c", 3), Lte("d", 4), NotEq("e", "x")),
			want:     "`a` > '1' AND `b` >= '2' AND `c` < '3' AND `d` <= '4' AND `e` != 'x'",
		},
		{
			name:     "In 单个值",
			criteria: criteriaOf(In("id", 7), In("city", []string{"beijing", "shanghai"})),
			want:     "`id` IN ('7') AND `city` IN ('beijing', 'shanghai')",
		},
		{
			name:     "NotIn 子查询",
			criteria: criteriaOf(NotIn("id", New().Select("user_id").From("t_ban")), NotIn("age", []int{1, 2})),
			want:     "`id` NOT IN (SELECT `user_id` FROM `t_ban`) AND `age` NOT IN ('1', '2')",
		},
		{
			name:     "IsNull IsNotNull",
			criteria: criteriaOf(IsNull("deleted_at"), IsNotNull("u.email")),
			want:     "`deleted_at` IS NULL AND `u`.`email` IS NOT NULL",
		},
		{
			name:     "列与列比较",
			criteria: criteriaOf(Cond("u.id", Column("i.user_id"))),
			want:     "`u`.`id` = `i`.`user_id`",
		},
		{
			name:     "Json 作为条件 map",
			criteria: criteriaOf(Json{"name": "test", "age": 3}),
			want:     "`age` = '3' AND `name` = 'test'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compileWhereGroup(tt.criteria, OpAnd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileWhereGroup_InvalidOr(t *testing.T) {
	_, err := compileWhereGroup(criteriaOf(map[string]any{"or": map[string]any{"age": 3}}), OpAnd)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrRequiresArray)
}

func TestCompileSetList(t *testing.T) {
	got, err := compileSetList(Attrs{
		{"email", "test@test.com"},
		{"active", true},
		{"password", map[string]any{"method": "MD5", "param": "password"}},
		{"updated_at", Method{Name: "NOW"}},
		{"deleted_at", nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "`email` = 'test@test.com', `active` = 'true', `password` = MD5('password'), `updated_at` = NOW(), `deleted_at` = NULL", got)
}

func TestSubqueryInList(t *testing.T) {
	sub := New().Select("id").From("account")
	bad := New().Select("id")

	t.Run("where", func(t *testing.T) {
		tests := []struct {
			name    string
			value   any
			want    string
			wantErr error
		}{
			{name: "子查询元素", value: []any{1, sub}, want: "`id` IN ('1', (SELECT `id` FROM `account`))"},
			{name: "函数元素", value: []any{"a", Func("LOWER", "B")}, want: "`id` IN ('a', LOWER('B'))"},
			{name: "不完整的子查询", value: []any{1, bad}, wantErr: ErrInsufficientParameters},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := compileWhereGroup(criteriaOf(Attrs{{"id", tt.value}}), OpAnd)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					assert.Empty(t, got)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("set", func(t *testing.T) {
		tests := []struct {
			name    string
			value   any
			want    string
			wantErr error
		}{
			{name: "子查询元素", value: []any{sub}, want: "`x` = (SELECT `id` FROM `account`)"},
			{name: "不完整的子查询", value: []any{bad}, wantErr: ErrInsufficientParameters},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := compileSetList(Attrs{{"x", tt.value}})
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					assert.Empty(t, got)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("语句不按字面量处理", func(t *testing.T) {
		assert.Equal(t, "(SELECT `id` FROM `account`)", EscapeValue(sub))
		sql, err := New().Update("account").Set(Attrs{{"x", []any{bad}}}).Sql()
		assert.ErrorIs(t, err, ErrInsufficientParameters)
		assert.Empty(t, sql)
	})
}

func TestFuncs(t *testing.T) {
	tests := []struct {
		name  string
		value Method
		want  string
	}{
		{"Count", Count("*"), "COUNT(*)"},
		{"Count 列", Count("u.id"), "COUNT(`u`.`id`)"},
		{"Sum", Sum("amount"), "SUM(`amount`)"},
		{"Min", Min("age"), "MIN(`age`)"},
		{"Max", Max("age"), "MAX(`age`)"},
		{"IfNull", IfNull(Column("nick"), ""), "IFNULL(`nick`, '')"},
		{"If", If(Gt("score", 60), "pass", "fail"), "IF(`score` > '60', 'pass', 'fail')"},
		{"Now", Now(), "NOW()"},
		{"嵌套", Func("MD5", Func("CONCAT", Column("salt"), "pw")), "MD5(CONCAT(`salt`, 'pw'))"},
		{"map 形式", ValueOf(map[string]any{"method": "MD5", "param": "x"}).(Method), "MD5('x')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderOperand(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("参数中的错误", func(t *testing.T) {
		_, err := renderOperand(IfNull(New().Select("id"), 0))
		assert.ErrorIs(t, err, ErrInsufficientParameters)
	})

	t.Run("用于 set 和 where", func(t *testing.T) {
		sql, err := New().Update("t_user").Set(Attrs{{"updated_at", Now()}, {"nick", IfNull(Column("nick"), "")}}).
			Where(Cond("id", 1)).Sql()
		require.NoError(t, err)
		assert.Equal(t, "UPDATE `t_user` SET `updated_at` = NOW(), `nick` = IFNULL(`nick`, '') WHERE `id` = '1'", sql)
	})
}
