package formatter

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/destiny/pkg/catalog"
)

// FormatAsTree renders records as an ASCII tree: one branch per record
// titled like the card heading, with the spec grid and media as leaves.
func FormatAsTree(records []catalog.Record) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%d diamonds", len(records)))
	for i, r := range records {
		branch := tree.AddBranch(fmt.Sprintf("%d. %s", i+1, r.Title()))
		for _, s := range r.Specs() {
			branch.AddNode(s.Label + ": " + s.Value)
		}
		for _, line := range MediaLines(r) {
			branch.AddNode(line)
		}
	}
	return tree.String()
}
