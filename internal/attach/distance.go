package attach

// entry is one sibling reduced to its kind and its first and last line.
type entry struct {
	annotation bool
	start, end int
}

type target struct {
	container bool
	index     int
}

type candidate struct {
	distance int
	target   target
}

type decision struct {
	prev, next       candidate
	hasPrev, hasNext bool
	toEnd            int
	blankAfter       int
	document         bool
	containerAllowed bool
}

// decide picks where an annotation goes.
//
//  1. first thing in the document, followed by a blank line: the document
//  2. otherwise the closer of the previous and next content siblings
//  3. on a tie, the next sibling
//  4. with no next sibling, the container stands in for it
func decide(d decision) (target, bool) {
	if d.document && !d.hasPrev && d.blankAfter > 0 {
		return target{container: true}, true
	}

	next, hasNext := d.next, d.hasNext
	if !hasNext && d.containerAllowed {
		next, hasNext = candidate{distance: d.toEnd, target: target{container: true}}, true
	}

	switch {
	case d.hasPrev && hasNext:
		if d.prev.distance < next.distance {
			return d.prev.target, true
		}
		return next.target, true
	case d.hasPrev:
		return d.prev.target, true
	case hasNext:
		return next.target, true
	default:
		return target{}, false
	}
}

// previousContent walks back over annotations to the nearest content
// sibling, summing the blank lines crossed.
func previousContent(entries []entry, i int) (candidate, bool) {
	distance := 0
	for cursor := i; cursor > 0; cursor-- {
		distance += blankLinesBetween(entries[cursor-1], entries[cursor])
		if !entries[cursor-1].annotation {
			return candidate{distance: distance, target: target{index: cursor - 1}}, true
		}
	}
	return candidate{}, false
}

func nextContent(entries []entry, i int) (candidate, bool) {
	distance := 0
	for cursor := i; cursor+1 < len(entries); cursor++ {
		distance += blankLinesBetween(entries[cursor], entries[cursor+1])
		if !entries[cursor+1].annotation {
			return candidate{distance: distance, target: target{index: cursor + 1}}, true
		}
	}
	return candidate{}, false
}

// linesToEnd counts the blank lines between the last sibling and the end
// of the container. It only matters when nothing but annotations follow i.
func linesToEnd(entries []entry, endLine int) int {
	last := entries[len(entries)-1]
	if endLine > last.end+1 {
		return endLine - last.end - 1
	}
	return 0
}

// gapAfter counts the blank lines right after entry i.
func gapAfter(entries []entry, i, endLine int) int {
	if i+1 < len(entries) {
		return blankLinesBetween(entries[i], entries[i+1])
	}
	if endLine > entries[i].end+1 {
		return endLine - entries[i].end - 1
	}
	return 0
}

// blankLinesBetween counts the lines strictly between left and right. When
// right starts on or before the last line of left, its end line is used
// instead of its start.
func blankLinesBetween(left, right entry) int {
	start := right.start
	if start <= left.end {
		start = right.end
	}
	if start > left.end+1 {
		return start - left.end - 1
	}
	return 0
}
