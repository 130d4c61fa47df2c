package builder

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Date 日期字面量, 输出 '2006-01-02'
type Date time.Time

func ParseDate(s string) (Date, error) {
	v, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, errors.Wrapf(err, "parse date %q", s)
	}
	return Date(v), nil
}

func (d Date) Date() time.Time {
	return time.Time(d)
}

func (d Date) String() string {
	return time.Time(d).Format(time.DateOnly)
}

// DateTime 时间字面量, 输出 '2006-01-02 15:04:05'
type DateTime time.Time

func ParseDateTime(s string) (DateTime, error) {
	v, err := time.Parse(time.DateTime, s)
	if err != nil {
		return DateTime{}, errors.Wrapf(err, "parse datetime %q", s)
	}
	return DateTime(v), nil
}

func (t DateTime) Datetime() time.Time {
	return time.Time(t)
}

func (t DateTime) String() string {
	return time.Time(t).Format(time.DateTime)
}

// Json 以 json 文本写入的字段: `extra` = '{"a":1}'
// 生成语句时编码失败会返回错误; 作为 Where 参数时按普通的属性 map 处理
type Json map[string]any

// Encode 编码为 json 文本
func (j Json) Encode() (string, error) {
	data, err := json.Marshal(map[string]any(j))
	if err != nil {
		return "", errors.Wrap(err, "encode json value")
	}
	return string(data), nil
}

// String 用于打印, 编码失败时返回空字符串
func (j Json) String() string {
	text, _ := j.Encode()
	return text
}
