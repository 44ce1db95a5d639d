//go:build windows

package filter

import "syscall"

func hasHiddenAttribute(absolutePath string) bool {
	if absolutePath == "" {
		return false
	}
	pathPointer, err := syscall.UTF16PtrFromString(absolutePath)
	if err != nil {
		return false
	}
	attributes, err := syscall.GetFileAttributes(pathPointer)
	if err != nil {
		return false
	}
	return attributes&syscall.FILE_ATTRIBUTE_HIDDEN != 0
}
