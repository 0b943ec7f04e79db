package style

import (
	"fmt"
)

const (
	kb = 1024
	mb = 1024 * kb
	gb = 1024 * mb
)

// FormatSize renders a byte count for humans: "512 B", "1.50 KB", ...
func FormatSize(bytes int64) string {
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
