package types

// StringPtr 返回字符串指针，便于构造用户配置
func StringPtr(v string) *string { return &v }

// IntPtr 返回整数指针
func IntPtr(v int) *int { return &v }

// BoolPtr 返回布尔指针
func BoolPtr(v bool) *bool { return &v }
