package validator

import (
	"fmt"
	"slices"
	"strings"
)

// warnings collects documentation smells that do not invalidate the operation.
func (c *checker) warnings() []ValidationWarning {
	op := c.op
	var out []ValidationWarning

	if strings.TrimSpace(op.Summary) == "" {
		out = append(out, c.warning("summary", "operation has no summary"))
	}
	for i, p := range op.Path.Params {
		if !slices.Contains(op.Path.Placeholders, p.Name) {
			out = append(out, c.warning(
				fmt.Sprintf("path.params[%d](%s)", i, p.Name),
				fmt.Sprintf("path parameter %q does not appear in %s", p.Name, op.Path.Raw),
			))
		}
	}
	if len(op.Path.Raw) > 1 && strings.HasSuffix(op.Path.Raw, "/") {
		out = append(out, c.warning("path", "path has a trailing slash"))
	}
	return out
}
