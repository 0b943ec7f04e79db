package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/objlink/pkg/types"
)

// RenderGroups renders the duplicate-group plan, one block per content
// hash: the canonical source first, then every copy that would become a
// hardlink to it.
func RenderGroups(groups []types.DuplicateGroup) string {
	if len(groups) == 0 {
		return MutedStyle.Render("No duplicate objects found")
	}

	var b strings.Builder
	for i, group := range groups {
		if i > 0 {
			b.WriteString("\n")
		}

		header := fmt.Sprintf("%s  %d copies, %s reclaimable",
			group.Source.Hash,
			len(group.Duplicates)+1,
			FormatSize(group.Savings()))
		b.WriteString(TitleStyle.Render(header) + "\n")

		b.WriteString(fmt.Sprintf("  %s %s (%s)\n",
			SourceStyle.Render("source"),
			PathStyle.Render(group.Source.Path),
			FormatSize(group.Source.Size)))

		for _, dup := range group.Duplicates {
			b.WriteString(fmt.Sprintf("  %s    %s\n",
				DuplicateStyle.Render("dup"),
				PathStyle.Render(dup.Path)))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
