package workerpool

// Span is the half-open index range [Lo, Hi).
type Span struct {
	Lo int
	Hi int
}

// Len returns the number of indexes covered by the span.
func (s Span) Len() int {
	return s.Hi - s.Lo
}

// Partition splits [0, total) into at most parts contiguous, disjoint,
// non-empty spans that cover every index exactly once. Spans are never
// shorter than minSpan unless total itself is, which caps the number of
// spans for small inputs. Span lengths differ by at most one.
func Partition(total, parts, minSpan int) []Span {
	if total <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if minSpan < 1 {
		minSpan = 1
	}
	if limit := total / minSpan; parts > limit {
		parts = max(limit, 1)
	}

	spans := make([]Span, 0, parts)
	base, extra := total/parts, total%parts
	lo := 0
	for i := range parts {
		size := base
		if i < extra {
			size++
		}
		spans = append(spans, Span{Lo: lo, Hi: lo + size})
		lo += size
	}

	return spans
}
