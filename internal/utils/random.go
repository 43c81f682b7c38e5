package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

// ShiftTemplates 是生成随机班次时使用的时间段
var ShiftTemplates = []struct {
	StartTime string
	EndTime   string
}{
	{"09:00", "10:00"},
	{"10:00", "12:00"},
	{"13:30", "16:10"},
	{"16:10", "18:00"},
	{"19:00", "21:00"},
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

// RomanizeChineseName 把 "王伟强" 转成 "Wang Weiqiang"，第一个字视为姓
func RomanizeChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	if len(pinyinArray) == 0 {
		return ""
	}

	surname := capitalize(pinyinArray[0])
	givenName := capitalize(strings.Join(pinyinArray[1:], ""))
	if givenName == "" {
		return surname
	}
	return surname + " " + givenName
}

func GenerateRandomEmployeeName() string {
	return RomanizeChineseName(GenerateRandomChineseName())
}

var digits = "0123456789"

func GenerateRandomPhone() string {
	phone := "1" + string(digits[rand.Intn(9)+1])
	for i := 0; i < 9; i++ {
		phone += string(digits[rand.Intn(len(digits))])
	}
	return phone
}

// GenerateRandomShift 在 [from, from+days) 中随机选一天和一个时间段
func GenerateRandomShift(shiftID string, from time.Time, days int) *domain.Shift {
	if days <= 0 {
		days = 1
	}
	date := from.AddDate(0, 0, rand.Intn(days))
	tmpl := ShiftTemplates[rand.Intn(len(ShiftTemplates))]

	return &domain.Shift{
		ShiftID:   shiftID,
		Date:      date.Format(time.DateOnly),
		StartTime: tmpl.StartTime,
		EndTime:   tmpl.EndTime,
	}
}

func FormatShiftID(number int) string {
	return fmt.Sprintf("S%03d", number)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
