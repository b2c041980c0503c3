package transparent

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// QueryString serializes p into its canonical form: keys sorted at every
// level, nested keys flattened as parent[child], values escaped with
// url.QueryEscape (space becomes "+"), entries joined with "&".
func QueryString(p Params) string {
	var buf strings.Builder
	writeParams(&buf, "", p)
	return buf.String()
}

func writeParams(buf *strings.Builder, prefix string, p Params) {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := nestedKey(prefix, url.QueryEscape(k))
		switch v := p[k].(type) {
		case Params:
			writeParams(buf, key, v)
		case String:
			writeEntry(buf, key, string(v))
		case Int:
			writeEntry(buf, key, strconv.FormatInt(int64(v), 10))
		case nil:
			// a nil entry carries nothing to sign
		default:
			// Value is sealed; an unknown implementation is a programming error.
			panic(fmt.Sprintf("transparent: unexpected value type %T", v))
		}
	}
}

func writeEntry(buf *strings.Builder, key, value string) {
	if buf.Len() > 0 {
		buf.WriteByte('&')
	}
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(url.QueryEscape(value))
}

func nestedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}
