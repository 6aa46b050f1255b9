package utils

import (
	"fmt"
	"time"

	"github.com/speps/go-hashids/v2"
)

// FormatOrderNo 生成当日序号订单号，格式: PFX-20240301-003
func FormatOrderNo(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, day.Format("20060102"), seq)
}

// SeqDayKey 当日序号的 redis key 片段
func SeqDayKey(day time.Time) string {
	return day.Format("20060102")
}

// GenHashID 对外暴露的短码，避免直接暴露自增ID
func GenHashID(salt string, id int) string {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	h, _ := hashids.NewWithData(hd)
	e, _ := h.Encode([]int{id})
	return e
}
