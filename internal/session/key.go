package session

import (
	"sort"
	"strconv"
	"strings"
)

// LineKey returns the canonical identity of a cart line: the item id plus an
// index-ordered encoding of the selected customizations. Two additions merge
// into one line iff their keys are equal. Categories and options are sorted
// by index so the key does not depend on selection order.
func LineKey(id string, customizations []SelectedCustomization) string {
	if len(customizations) == 0 {
		return id
	}

	cs := cloneCustomizations(customizations)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Index < cs[j].Index })

	var b strings.Builder
	b.WriteString(id)
	for _, c := range cs {
		opts := c.SelectedOptions
		sort.SliceStable(opts, func(i, j int) bool { return opts[i].Index < opts[j].Index })

		b.WriteString("|c")
		b.WriteString(strconv.Itoa(c.Index))
		b.WriteByte(':')
		for i, o := range opts {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(o.Index))
			b.WriteByte('@')
			b.WriteString(strconv.FormatFloat(o.Price, 'f', -1, 64))
		}
	}
	return b.String()
}

func (l CartLine) key() string {
	return LineKey(l.ID, l.SelectedCustomizations)
}
