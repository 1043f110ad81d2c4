//go:build !mobile

// 桌面构建时 mobile 包只剩这个文件，gomobile bind 之外的构建都能正常引用该包
package mobile

// Dummy 空导出函数，gomobile 要求包至少导出一个符号
func Dummy() {}
