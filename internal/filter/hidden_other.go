//go:build !windows

package filter

func hasHiddenAttribute(string) bool {
	return false
}
