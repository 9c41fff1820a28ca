package util

import "time"

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

// PtrTime 用于将 time.Time 转换为 *time.Time
func PtrTime(t time.Time) *time.Time {
	return &t
}
