package decode

import "strings"

// RenderContext carries per-instruction defaults down into sub-parts as
// they render — currently just the operand size code letter, the way
// spec.md §6 describes ("propagate per-instruction defaults ... into
// sub-parts that render relative to it").
type RenderContext struct {
	Size string
}

// NewRenderContext returns a RenderContext with no size set yet.
func NewRenderContext() *RenderContext { return &RenderContext{} }

// WithSize returns a copy of the context with Size overridden, leaving
// the receiver untouched so sibling sub-parts don't see each other's
// overrides.
func (c *RenderContext) WithSize(size string) *RenderContext {
	cp := *c
	cp.Size = size
	return &cp
}

// applyTemplate substitutes "{name}" placeholders in format with the
// corresponding entry of vals, mirroring the original decoder's use of
// Python str.format()-style templates (single braces, not Go's
// text/template double braces).
func applyTemplate(format string, vals map[string]string) string {
	var sb strings.Builder
	i := 0
	for i < len(format) {
		c := format[i]
		if c == '{' {
			end := strings.IndexByte(format[i:], '}')
			if end == -1 {
				sb.WriteByte(c)
				i++
				continue
			}
			name := format[i+1 : i+end]
			if v, ok := vals[name]; ok {
				sb.WriteString(v)
			}
			i += end + 1
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return sb.String()
}
