//go:build !mobile

// 桌面端构建时 mobile 包只保留占位函数，入口在 mobile.go（-tags mobile）。
package mobile

// Dummy 占位，保证非 mobile 构建下包仍可被引用
func Dummy() {}
